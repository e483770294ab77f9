package template

// UnitTemplate is the systemd service unit template for a Hadoop daemon.
// It references exactly the five ServiceDescriptor placeholders.
const UnitTemplate = `[Unit]
Description=Apache Hadoop {{service}}
After=network.target

[Service]
Type=forking
User={{user}}
Group=hadoop
Environment=HADOOP_HOME={{hadoop_path}}
Environment=HADOOP_CONF_DIR={{hadoop_conf}}
ExecStart={{hadoop_path}}/sbin/{{daemon}}-daemon.sh --config {{hadoop_conf}} start {{service}}
ExecStop={{hadoop_path}}/sbin/{{daemon}}-daemon.sh --config {{hadoop_conf}} stop {{service}}
Restart=on-failure
RestartSec=10

[Install]
WantedBy=multi-user.target
`

// RenderUnit renders the systemd unit definition for a service. The caller
// is responsible for writing the result to disk and for service lifecycle.
func RenderUnit(d ServiceDescriptor) (string, error) {
	if err := d.Validate(); err != nil {
		return "", err
	}
	return Parse(UnitTemplate).Render(d.Vars())
}
