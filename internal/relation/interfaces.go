package relation

import "strconv"

// The concrete relation interfaces spoken by the Hadoop charms. Spec-matching
// interfaces (NameNode, ResourceManager) additionally require the spec key so
// that mismatched stacks fail loudly instead of half-working.

// NameNode communicates HDFS connection and readiness info to clients.
var NameNode = Interface{
	Name:         "namenode",
	RequiredKeys: []string{"private-address", "port", "ready", SpecKey},
}

// ResourceManager communicates YARN connection and readiness info to
// clients, including the job history server endpoints.
var ResourceManager = Interface{
	Name: "resourcemanager",
	RequiredKeys: []string{
		"private-address", "port", "ready",
		"historyserver-http", "historyserver-ipc", SpecKey,
	},
}

// DataNode reports HDFS slave identity back to the NameNode.
var DataNode = Interface{
	Name:         "datanode",
	RequiredKeys: []string{"private-address", "hostname", "hostfqdn"},
}

// NodeManager reports YARN slave identity back to the ResourceManager.
var NodeManager = Interface{
	Name:         "nodemanager",
	RequiredKeys: []string{"private-address", "hostname", "hostfqdn"},
}

// HadoopPlugin is the "hadoop-plugin" interface: the plugin charm installs
// the Hadoop client environment into the principal charm's machine
// (/etc/hadoop/conf plus /etc/environment) and signals HDFS readiness.
var HadoopPlugin = Interface{
	Name:         "hadoop-plugin",
	RequiredKeys: []string{"private-address", "hdfs-ready"},
}

// HadoopREST is the "hadoop-rest" interface: instead of a local client
// environment, the endpoint charm publishes the cluster's REST entry points.
var HadoopREST = Interface{
	Name: "hadoop-rest",
	RequiredKeys: []string{
		"private-address", "namenode-host",
		"hdfs-port", "webhdfs-port", "hdfs-ready",
	},
}

// Hive communicates the Hive server connection info.
var Hive = Interface{
	Name:         "hive",
	RequiredKeys: []string{"private-address", "port", "ready"},
}

// MySQL is the standard database relation consumed by the Hive metastore.
var MySQL = Interface{
	Name:         "db",
	RequiredKeys: []string{"host", "database", "user", "password"},
}

// FlumeAgent communicates a Flume agent endpoint and its protocol.
var FlumeAgent = Interface{
	Name:         "flume-agent",
	RequiredKeys: []string{"private-address", "port"},
}

// ProvideNameNode builds the provider-side settings for the namenode
// interface once the cluster is serving.
func ProvideNameNode(address string, port int, spec map[string]string) (Settings, error) {
	return provideEndpoint(address, port, spec)
}

// ProvideResourceManager builds the provider-side settings for the
// resourcemanager interface.
func ProvideResourceManager(address string, port, historyHTTP, historyIPC int, spec map[string]string) (Settings, error) {
	data, err := provideEndpoint(address, port, spec)
	if err != nil {
		return nil, err
	}
	data["historyserver-http"] = strconv.Itoa(historyHTTP)
	data["historyserver-ipc"] = strconv.Itoa(historyIPC)
	return data, nil
}

// ProvideSlave builds the settings a datanode or nodemanager unit reports to
// its master.
func ProvideSlave(address, hostname, fqdn string) Settings {
	return Settings{
		"private-address": address,
		"hostname":        hostname,
		"hostfqdn":        fqdn,
	}
}

// ProvideHadoopPlugin builds the provider-side settings for the
// hadoop-plugin interface. Booleans travel as "true"/"false".
func ProvideHadoopPlugin(address string, hdfsReady bool) Settings {
	return Settings{
		"private-address": address,
		"hdfs-ready":      strconv.FormatBool(hdfsReady),
	}
}

// ProvideHadoopREST builds the provider-side settings for the hadoop-rest
// interface.
func ProvideHadoopREST(address, namenodeHost string, hdfsPort, webhdfsPort int, hdfsReady bool) Settings {
	return Settings{
		"private-address": address,
		"namenode-host":   namenodeHost,
		"hdfs-port":       strconv.Itoa(hdfsPort),
		"webhdfs-port":    strconv.Itoa(webhdfsPort),
		"hdfs-ready":      strconv.FormatBool(hdfsReady),
	}
}

func provideEndpoint(address string, port int, spec map[string]string) (Settings, error) {
	encoded, err := EncodeSpec(spec)
	if err != nil {
		return nil, err
	}
	data := Settings{
		"private-address": address,
		"port":            strconv.Itoa(port),
		"ready":           "true",
	}
	if encoded != "" {
		data[SpecKey] = encoded
	}
	return data, nil
}
