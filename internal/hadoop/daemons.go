package hadoop

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/juju-solutions/bigdata-go/internal/envfile"
	"github.com/juju-solutions/bigdata-go/internal/util"
)

// Runner executes Hadoop commands as a given system user. The production
// runner shells out through su; tests substitute a recorder.
type Runner interface {
	Run(user, command string, args ...string) error
	// IsRunning reports whether a Java process with the given main class
	// (e.g. "NameNode") is visible on the machine.
	IsRunning(javaProc string) bool
}

// SuRunner runs commands via `su <user> -c ...` with the environment from
// /etc/environment, the way daemon scripts expect to be launched on a unit.
type SuRunner struct {
	EnvFile string // path to /etc/environment; empty uses the default
	Environ []string
}

// Run implements Runner.
func (r SuRunner) Run(user, command string, args ...string) error {
	quoted := util.QuoteCommand(append([]string{command}, args...))
	cmd := exec.Command("su", user, "-c", quoted)

	envPath := r.EnvFile
	if envPath == "" {
		envPath = "/etc/environment"
	}
	env := envfile.ReadEnviron(envPath, r.Environ)
	for key, value := range env {
		cmd.Env = append(cmd.Env, key+"="+value)
	}

	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("command %s failed as %s: %w (output: %s)",
			command, user, err, strings.TrimSpace(string(out)))
	}
	return nil
}

// IsRunning implements Runner with a pgrep pattern that matches the Java
// main class for any user, without matching the pgrep process itself.
func (r SuRunner) IsRunning(javaProc string) bool {
	if javaProc == "" {
		return false
	}
	pattern := fmt.Sprintf("^[^ ]*java .*[%s]%s", javaProc[:1], javaProc[1:])
	return exec.Command("pgrep", "-f", pattern).Run() == nil
}

// HDFS controls the HDFS daemons on a unit through the distribution's
// hadoop-daemon.sh.
type HDFS struct {
	Base   *Base
	Runner Runner
}

// hdfsProcs maps service names to their Java main class for liveness
// checks.
var hdfsProcs = map[string]string{
	"namenode":          "NameNode",
	"secondarynamenode": "SecondaryNameNode",
	"datanode":          "DataNode",
	"journalnode":       "JournalNode",
}

// Start starts an HDFS daemon unless it is already running.
func (h *HDFS) Start(service string) error {
	proc, ok := hdfsProcs[service]
	if !ok {
		return fmt.Errorf("unknown hdfs service %q", service)
	}
	if h.Runner.IsRunning(proc) {
		return nil
	}
	return h.daemon("start", service)
}

// Stop stops an HDFS daemon.
func (h *HDFS) Stop(service string) error {
	if _, ok := hdfsProcs[service]; !ok {
		return fmt.Errorf("unknown hdfs service %q", service)
	}
	return h.daemon("stop", service)
}

// Format formats the namenode storage. Never forced: reformatting existing
// data would destroy the filesystem, so the underlying command runs
// noninteractively and fails when storage is already formatted.
func (h *HDFS) Format() error {
	hadoopHome, err := h.Base.Path("hadoop")
	if err != nil {
		return err
	}
	return h.Runner.Run("hdfs", hadoopHome+"/bin/hdfs",
		"namenode", "-format", "-noninteractive")
}

// RefreshNodes asks a running namenode to re-read the slaves file.
func (h *HDFS) RefreshNodes() error {
	if !h.Runner.IsRunning("NameNode") {
		return nil
	}
	hadoopHome, err := h.Base.Path("hadoop")
	if err != nil {
		return err
	}
	return h.Runner.Run("hdfs", hadoopHome+"/bin/hdfs", "dfsadmin", "-refreshNodes")
}

func (h *HDFS) daemon(action, service string) error {
	hadoopHome, err := h.Base.Path("hadoop")
	if err != nil {
		return err
	}
	hadoopConf, err := h.Base.Path("hadoop_conf")
	if err != nil {
		return err
	}
	return h.Runner.Run("hdfs", hadoopHome+"/sbin/hadoop-daemon.sh",
		"--config", hadoopConf, action, service)
}

// YARN controls the YARN and job history daemons on a unit.
type YARN struct {
	Base   *Base
	Runner Runner
}

var yarnProcs = map[string]string{
	"resourcemanager": "ResourceManager",
	"nodemanager":     "NodeManager",
}

// Start starts a YARN daemon unless it is already running.
func (y *YARN) Start(service string) error {
	proc, ok := yarnProcs[service]
	if !ok {
		return fmt.Errorf("unknown yarn service %q", service)
	}
	if y.Runner.IsRunning(proc) {
		return nil
	}
	return y.daemon("start", service)
}

// Stop stops a YARN daemon.
func (y *YARN) Stop(service string) error {
	if _, ok := yarnProcs[service]; !ok {
		return fmt.Errorf("unknown yarn service %q", service)
	}
	return y.daemon("stop", service)
}

// StartJobHistory starts the MapReduce job history server unless running.
func (y *YARN) StartJobHistory() error {
	if y.Runner.IsRunning("JobHistoryServer") {
		return nil
	}
	return y.historyDaemon("start")
}

// StopJobHistory stops the MapReduce job history server.
func (y *YARN) StopJobHistory() error {
	return y.historyDaemon("stop")
}

// RefreshNodes asks a running resourcemanager to re-read the slaves file.
func (y *YARN) RefreshNodes() error {
	if !y.Runner.IsRunning("ResourceManager") {
		return nil
	}
	hadoopHome, err := y.Base.Path("hadoop")
	if err != nil {
		return err
	}
	return y.Runner.Run("mapred", hadoopHome+"/bin/yarn", "rmadmin", "-refreshNodes")
}

func (y *YARN) daemon(action, service string) error {
	hadoopHome, err := y.Base.Path("hadoop")
	if err != nil {
		return err
	}
	hadoopConf, err := y.Base.Path("hadoop_conf")
	if err != nil {
		return err
	}
	return y.Runner.Run("yarn", hadoopHome+"/sbin/yarn-daemon.sh",
		"--config", hadoopConf, action, service)
}

func (y *YARN) historyDaemon(action string) error {
	hadoopHome, err := y.Base.Path("hadoop")
	if err != nil {
		return err
	}
	hadoopConf, err := y.Base.Path("hadoop_conf")
	if err != nil {
		return err
	}
	return y.Runner.Run("mapred", hadoopHome+"/sbin/mr-jobhistory-daemon.sh",
		"--config", hadoopConf, action, "historyserver")
}
