package hadoop

import (
	"reflect"
	"strings"
	"testing"

	"github.com/juju-solutions/bigdata-go/internal/dist"
	"github.com/juju-solutions/bigdata-go/internal/envfile"
	"github.com/juju-solutions/bigdata-go/internal/resources"
)

const testDistYAML = `
vendor: apache
hadoop_version: "2.7.1"
dirs:
  hadoop:
    path: /usr/lib/hadoop
  hadoop_conf:
    path: /etc/hadoop/conf
  hdfs_log_dir:
    path: /var/log/hadoop-hdfs
  mapred_log_dir:
    path: /var/log/hadoop-mapred
  yarn_log_dir:
    path: /var/log/hadoop-yarn
ports:
  namenode:
    port: 8020
`

const testResourcesYAML = `
resources:
  java-installer:
    url: https://example.com/java-installer.sh
  hadoop-x86_64:
    url: https://example.com/hadoop-x86_64.tar.gz
  hadoop-2.7.1-x86_64:
    url: https://example.com/hadoop-2.7.1-x86_64.tar.gz
optional_resources:
  hadoop-lzo-x86_64:
    url: https://example.com/hadoop-lzo-x86_64.tar.gz
`

func newTestBase(t *testing.T) *Base {
	t.Helper()
	d, err := dist.Parse([]byte(testDistYAML))
	if err != nil {
		t.Fatalf("dist.Parse() error = %v", err)
	}
	r, err := resources.Parse([]byte(testResourcesYAML))
	if err != nil {
		t.Fatalf("resources.Parse() error = %v", err)
	}
	b, err := NewBase(d, r, "x86_64", nil)
	if err != nil {
		t.Fatalf("NewBase() error = %v", err)
	}
	return b
}

func TestNewBaseResourceSelection(t *testing.T) {
	b := newTestBase(t)

	if got := b.HadoopResource(); got != "hadoop-2.7.1-x86_64" {
		t.Errorf("HadoopResource() = %q", got)
	}
	if name, ok := b.LZOResource(); !ok || name != "hadoop-lzo-x86_64" {
		t.Errorf("LZOResource() = %q, %v", name, ok)
	}
}

func TestNewBaseValidation(t *testing.T) {
	r, err := resources.Parse([]byte(testResourcesYAML))
	if err != nil {
		t.Fatalf("resources.Parse() error = %v", err)
	}

	// dist.yaml without the log dirs.
	d, err := dist.Parse([]byte(`
vendor: apache
hadoop_version: "2.7.1"
dirs:
  hadoop:
    path: /usr/lib/hadoop
`))
	if err != nil {
		t.Fatalf("dist.Parse() error = %v", err)
	}
	if _, err := NewBase(d, r, "x86_64", nil); err == nil {
		t.Fatalf("NewBase() expected missing-dirs error")
	} else if !strings.Contains(err.Error(), "hdfs_log_dir") {
		t.Errorf("error = %v", err)
	}

	// resources.yaml without java-installer.
	d, err = dist.Parse([]byte(testDistYAML))
	if err != nil {
		t.Fatalf("dist.Parse() error = %v", err)
	}
	r2, err := resources.Parse([]byte(`
resources:
  hadoop-x86_64:
    url: https://example.com/hadoop.tar.gz
`))
	if err != nil {
		t.Fatalf("resources.Parse() error = %v", err)
	}
	if _, err := NewBase(d, r2, "x86_64", nil); err == nil {
		t.Fatalf("NewBase() expected java-installer error")
	}
}

func TestSpec(t *testing.T) {
	b := newTestBase(t)

	if got := b.Spec(""); got != nil {
		t.Errorf("Spec(\"\") = %v, want nil until Java is installed", got)
	}

	want := map[string]string{
		"vendor": "apache",
		"hadoop": "2.7.1",
		"java":   "1.8",
		"arch":   "x86_64",
	}
	if got := b.Spec("1.8"); !reflect.DeepEqual(got, want) {
		t.Errorf("Spec(1.8) = %v, want %v", got, want)
	}
}

func TestApplyEnvironment(t *testing.T) {
	b := newTestBase(t)

	f := envfile.New()
	f.Set("PATH", "/usr/bin:/bin")
	if err := b.ApplyEnvironment(f, "/usr/lib/jvm/java-8"); err != nil {
		t.Fatalf("ApplyEnvironment() error = %v", err)
	}

	checks := map[string]string{
		"JAVA_HOME":             "/usr/lib/jvm/java-8",
		"HADOOP_HOME":           "/usr/lib/hadoop",
		"HADOOP_CONF_DIR":       "/etc/hadoop/conf",
		"HADOOP_LIBEXEC_DIR":    "/usr/lib/hadoop/libexec",
		"HADOOP_LOG_DIR":        "/var/log/hadoop-hdfs",
		"HADOOP_MAPRED_LOG_DIR": "/var/log/hadoop-mapred",
		"YARN_LOG_DIR":          "/var/log/hadoop-yarn",
		"PATH":                  "/usr/lib/jvm/java-8/bin:/usr/bin:/bin:/usr/lib/hadoop/bin:/usr/lib/hadoop/sbin",
	}
	for key, want := range checks {
		if got, _ := f.Get(key); got != want {
			t.Errorf("%s = %q, want %q", key, got, want)
		}
	}

	// Applying twice leaves PATH unchanged.
	if err := b.ApplyEnvironment(f, "/usr/lib/jvm/java-8"); err != nil {
		t.Fatalf("second ApplyEnvironment() error = %v", err)
	}
	if got, _ := f.Get("PATH"); got != checks["PATH"] {
		t.Errorf("PATH after reapply = %q", got)
	}
}

func TestSlavesFileContent(t *testing.T) {
	got := SlavesFileContent([]string{"datanode-0", "datanode-1"})
	want := "# DO NOT EDIT\n# This file is automatically managed by Juju\ndatanode-0\ndatanode-1\n"
	if got != want {
		t.Errorf("SlavesFileContent() = %q, want %q", got, want)
	}

	if got := SlavesFileContent(nil); !strings.HasSuffix(got, "managed by Juju\n") {
		t.Errorf("empty slaves content = %q", got)
	}
}
