package template

import (
	"fmt"
	"sort"
	"strings"
)

// ServiceDescriptor carries the deployment-time parameters needed to render
// a Hadoop service unit definition. All fields are required.
type ServiceDescriptor struct {
	Service    string // daemon identifier, e.g. "namenode"
	User       string // process owner, e.g. "hdfs"
	Daemon     string // daemon script prefix, e.g. "hadoop-hdfs"
	HadoopPath string // Hadoop installation root, e.g. "/usr/lib/hadoop"
	HadoopConf string // Hadoop configuration directory, e.g. "/etc/hadoop/conf"
}

// Vars returns the placeholder bindings for the descriptor.
func (d ServiceDescriptor) Vars() map[string]string {
	return map[string]string{
		"service":     d.Service,
		"user":        d.User,
		"daemon":      d.Daemon,
		"hadoop_path": d.HadoopPath,
		"hadoop_conf": d.HadoopConf,
	}
}

// Validate checks that every field is set.
func (d ServiceDescriptor) Validate() error {
	var missing []string
	for name, value := range map[string]string{
		"service":     d.Service,
		"user":        d.User,
		"daemon":      d.Daemon,
		"hadoop_path": d.HadoopPath,
		"hadoop_conf": d.HadoopConf,
	} {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("service descriptor is missing required field(s): %s",
			strings.Join(missing, ", "))
	}
	return nil
}
