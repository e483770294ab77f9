package xmlprops

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

const sampleXML = `<?xml version="1.0"?>
<configuration>
    <property>
        <name>fs.defaultFS</name>
        <value>hdfs://namenode:8020</value>
    </property>
    <property>
        <name>dfs.replication</name>
        <value>3</value>
        <description>Default block replication.</description>
    </property>
</configuration>
`

func TestParseAndGet(t *testing.T) {
	c, err := Parse([]byte(sampleXML))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if got := c.Get("fs.defaultFS"); got != "hdfs://namenode:8020" {
		t.Errorf("Get(fs.defaultFS) = %q", got)
	}
	if got := c.Get("dfs.replication"); got != "3" {
		t.Errorf("Get(dfs.replication) = %q", got)
	}
	if got := c.Get("missing"); got != "" {
		t.Errorf("Get(missing) = %q", got)
	}
	if !c.Has("dfs.replication") || c.Has("missing") {
		t.Errorf("Has() wrong")
	}
}

func TestSetAndDelete(t *testing.T) {
	c, err := Parse([]byte(sampleXML))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	c.Set("dfs.replication", "2")
	c.Set("dfs.blocksize", "134217728")
	if got := c.Get("dfs.replication"); got != "2" {
		t.Errorf("Get(dfs.replication) = %q after Set", got)
	}
	if got := c.Get("dfs.blocksize"); got != "134217728" {
		t.Errorf("Get(dfs.blocksize) = %q after Set", got)
	}

	if !c.Delete("fs.defaultFS") {
		t.Errorf("Delete(fs.defaultFS) = false")
	}
	if c.Delete("fs.defaultFS") {
		t.Errorf("second Delete should report absence")
	}

	want := []string{"dfs.blocksize", "dfs.replication"}
	if got := c.Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
}

func TestRenderRoundTrip(t *testing.T) {
	c, err := Parse([]byte(sampleXML))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	c.Set("io.compression.codecs", "org.apache.hadoop.io.compress.SnappyCodec")

	data, err := c.Render()
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.HasPrefix(string(data), xmlHeaderPrefix) {
		t.Errorf("Render() missing XML header:\n%s", data)
	}

	again, err := Parse(data)
	if err != nil {
		t.Fatalf("re-Parse() error = %v", err)
	}
	if got := again.Get("io.compression.codecs"); got != "org.apache.hadoop.io.compress.SnappyCodec" {
		t.Errorf("round-trip lost property: %q", got)
	}
	if got := again.Get("dfs.replication"); got != "3" {
		t.Errorf("round-trip lost existing property: %q", got)
	}
	// Descriptions survive the round trip.
	found := false
	for _, p := range again.Properties {
		if p.Name == "dfs.replication" && p.Description == "Default block replication." {
			found = true
		}
	}
	if !found {
		t.Errorf("description dropped in round trip")
	}
}

const xmlHeaderPrefix = `<?xml version="1.0" encoding="UTF-8"?>`

func TestEdit(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "hdfs-site.xml")
	if err := os.WriteFile(path, []byte(sampleXML), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	err := Edit(path, func(c *Configuration) {
		c.Set("dfs.permissions", "false")
		c.Delete("fs.defaultFS")
	})
	if err != nil {
		t.Fatalf("Edit() error = %v", err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := c.Get("dfs.permissions"); got != "false" {
		t.Errorf("Get(dfs.permissions) = %q", got)
	}
	if c.Has("fs.defaultFS") {
		t.Errorf("fs.defaultFS should be deleted")
	}

	if err := Edit(filepath.Join(tmpDir, "missing.xml"), func(*Configuration) {}); err == nil {
		t.Fatalf("Edit() expected error for missing file")
	}
}
