// Package hadoop ties the distribution manifest, resource manifest and
// environment conventions together into the base a Hadoop charm builds on.
package hadoop

import (
	"fmt"
	"strings"

	"github.com/juju-solutions/bigdata-go/internal/dist"
	"github.com/juju-solutions/bigdata-go/internal/envfile"
	"github.com/juju-solutions/bigdata-go/internal/resources"
)

// RequiredDirs are the dist.yaml dir entries every Hadoop charm needs.
var RequiredDirs = []string{
	"hadoop",
	"hadoop_conf",
	"hdfs_log_dir",
	"mapred_log_dir",
	"yarn_log_dir",
}

// Base carries the resolved per-deployment Hadoop context.
type Base struct {
	Dist        *dist.Config
	Resources   *resources.Manifest
	Arch        string
	CharmConfig map[string]string

	hadoopRes string
	lzoRes    string
	hasLZO    bool
}

// NewBase validates the manifests and resolves which resources this
// deployment installs. The dist manifest must define every RequiredDirs
// entry; the resource manifest must define a java-installer and a Hadoop
// tarball for the architecture.
func NewBase(d *dist.Config, r *resources.Manifest, arch string, charmConfig map[string]string) (*Base, error) {
	if err := d.ValidateDirs(RequiredDirs...); err != nil {
		return nil, err
	}
	if !r.Defined("java-installer") {
		return nil, fmt.Errorf("resource manifest does not define java-installer")
	}
	hadoopRes, err := r.SelectHadoop(d.HadoopVersion, arch)
	if err != nil {
		return nil, err
	}
	lzoRes, hasLZO := r.SelectLZO(arch)

	return &Base{
		Dist:        d,
		Resources:   r,
		Arch:        arch,
		CharmConfig: charmConfig,
		hadoopRes:   hadoopRes,
		lzoRes:      lzoRes,
		hasLZO:      hasLZO,
	}, nil
}

// HadoopResource returns the resolved Hadoop resource name.
func (b *Base) HadoopResource() string {
	return b.hadoopRes
}

// LZOResource returns the optional LZO codec resource name; ok is false when
// the distribution does not ship one.
func (b *Base) LZOResource() (string, bool) {
	return b.lzoRes, b.hasLZO
}

// Spec returns the environment spec used to keep related charms in sync.
// It is nil until the Java version is known, since a spec that omitted Java
// would falsely match across incompatible runtimes.
func (b *Base) Spec(javaVersion string) map[string]string {
	if javaVersion == "" {
		return nil
	}
	return map[string]string{
		"vendor": b.Dist.Vendor,
		"hadoop": b.Dist.HadoopVersion,
		"java":   javaVersion,
		"arch":   b.Arch,
	}
}

// Path resolves a dist.yaml dir entry against the charm config.
func (b *Base) Path(key string) (string, error) {
	return b.Dist.Path(key, b.CharmConfig)
}

// ApplyEnvironment applies the Hadoop environment conventions to an
// /etc/environment style file: Java first on PATH, the Hadoop bin dirs
// after, and the HADOOP_* homes pointing into the installation. The caller
// persists the file.
func (b *Base) ApplyEnvironment(f *envfile.File, javaHome string) error {
	hadoopHome, err := b.Path("hadoop")
	if err != nil {
		return err
	}
	hadoopConf, err := b.Path("hadoop_conf")
	if err != nil {
		return err
	}
	hdfsLogDir, err := b.Path("hdfs_log_dir")
	if err != nil {
		return err
	}
	mapredLogDir, err := b.Path("mapred_log_dir")
	if err != nil {
		return err
	}
	yarnLogDir, err := b.Path("yarn_log_dir")
	if err != nil {
		return err
	}

	f.Set("JAVA_HOME", javaHome)
	f.PrependPath("PATH", javaHome+"/bin")
	f.AppendPath("PATH", hadoopHome+"/bin")
	f.AppendPath("PATH", hadoopHome+"/sbin")
	f.Set("HADOOP_LIBEXEC_DIR", hadoopHome+"/libexec")
	f.Set("HADOOP_INSTALL", hadoopHome)
	f.Set("HADOOP_HOME", hadoopHome)
	f.Set("HADOOP_COMMON_HOME", hadoopHome)
	f.Set("HADOOP_HDFS_HOME", hadoopHome)
	f.Set("HADOOP_MAPRED_HOME", hadoopHome)
	f.Set("HADOOP_YARN_HOME", hadoopHome)
	f.Set("HADOOP_CONF_DIR", hadoopConf)
	f.Set("HADOOP_LOG_DIR", hdfsLogDir)
	f.Set("HADOOP_MAPRED_LOG_DIR", mapredLogDir)
	f.Set("YARN_LOG_DIR", yarnLogDir)
	return nil
}

// SlavesFileContent renders the conf/slaves file for the given worker
// hostnames. The header marks the file as managed so operators leave it
// alone.
func SlavesFileContent(slaves []string) string {
	lines := append([]string{
		"# DO NOT EDIT",
		"# This file is automatically managed by Juju",
	}, slaves...)
	return strings.Join(lines, "\n") + "\n"
}
