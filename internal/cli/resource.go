package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/juju-solutions/bigdata-go/internal/dist"
	"github.com/juju-solutions/bigdata-go/internal/resources"
	"github.com/juju-solutions/bigdata-go/internal/util"
)

func newResourceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resource",
		Short: "Resolve install resources from the resource manifest",
		Long: `Resolve install resources from the resource manifest
(resources.yaml).

Examples:
  bigdata resource select
  bigdata resource url java-installer`,
	}

	cmd.AddCommand(newResourceSelectCmd())
	cmd.AddCommand(newResourceURLCmd())

	return cmd
}

func newResourceSelectCmd() *cobra.Command {
	var (
		version string
		arch    string
	)

	cmd := &cobra.Command{
		Use:   "select",
		Short: "Resolve the Hadoop resources for this machine",
		Long: `Resolve which Hadoop resources this machine should install.

A version-specific tarball (hadoop-<version>-<arch>) wins over the
generic hadoop-<arch>; the LZO codec is reported when the distribution
ships one. The version defaults to hadoop_version from the
distribution manifest and the architecture to the local machine.

Examples:
  bigdata resource select
  bigdata resource select --version 2.7.1 --arch x86_64`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if version == "" {
				cfg, err := dist.Load(distPath)
				if err != nil {
					return err
				}
				version = cfg.HadoopVersion
			}
			if arch == "" {
				arch = hostArch()
			}

			m, err := resources.Load(resourcesPath)
			if err != nil {
				return err
			}
			name, err := m.SelectHadoop(version, arch)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), name)
			if lzo, ok := m.SelectLZO(arch); ok {
				fmt.Fprintln(cmd.OutOrStdout(), lzo)
			} else {
				util.Log("No LZO codec resource for %s", arch)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&version, "version", "", "Hadoop version (default: from the dist manifest)")
	cmd.Flags().StringVar(&arch, "arch", "", "CPU architecture (default: local machine)")

	return cmd
}

func newResourceURLCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "url <name>",
		Short: "Print the URL of a named resource",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := resources.Load(resourcesPath)
			if err != nil {
				return err
			}
			r, ok := m.Get(args[0])
			if !ok {
				return fmt.Errorf("resource %q is not defined in %s", args[0], resourcesPath)
			}
			fmt.Fprintln(cmd.OutOrStdout(), r.URL)
			return nil
		},
	}
}

// hostArch maps the Go architecture to the uname -p style names used in
// resource manifests.
func hostArch() string {
	switch runtime.GOARCH {
	case "amd64":
		return "x86_64"
	case "arm64":
		return "aarch64"
	case "386":
		return "i686"
	default:
		return runtime.GOARCH
	}
}
