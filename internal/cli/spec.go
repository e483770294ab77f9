package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/juju-solutions/bigdata-go/internal/dist"
	"github.com/juju-solutions/bigdata-go/internal/hadoop"
	"github.com/juju-solutions/bigdata-go/internal/relation"
	"github.com/juju-solutions/bigdata-go/internal/resources"
	"github.com/juju-solutions/bigdata-go/internal/util"
)

func newSpecCmd() *cobra.Command {
	var (
		javaVersion string
		arch        string
	)

	cmd := &cobra.Command{
		Use:   "spec",
		Short: "Print this unit's environment spec",
		Long: `Print this unit's environment spec as JSON.

The spec identifies the deployed environment (vendor, Hadoop version,
Java version, architecture) and is published on relations so that
related charms can refuse to interoperate across incompatible
deployments.

Examples:
  bigdata spec --java-version 1.8
  bigdata spec match '{"vendor":"apache","hadoop":"2.7.1","java":"1.8","arch":"x86_64"}' --java-version 1.8`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := loadBase(arch)
			if err != nil {
				return err
			}
			spec := base.Spec(javaVersion)
			if spec == nil {
				return fmt.Errorf("java version is not known yet; pass --java-version")
			}
			encoded, err := relation.EncodeSpec(spec)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), encoded)
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&javaVersion, "java-version", "", "installed Java major version")
	cmd.PersistentFlags().StringVar(&arch, "arch", "", "CPU architecture (default: local machine)")

	cmd.AddCommand(newSpecMatchCmd(&javaVersion, &arch))

	return cmd
}

func newSpecMatchCmd(javaVersion, arch *string) *cobra.Command {
	return &cobra.Command{
		Use:   "match <remote-spec>",
		Short: "Check a remote spec against this unit's spec",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := loadBase(*arch)
			if err != nil {
				return err
			}
			local := base.Spec(*javaVersion)
			if local == nil {
				return fmt.Errorf("java version is not known yet; pass --java-version")
			}
			remote, err := relation.DecodeSpec(args[0])
			if err != nil {
				return err
			}
			if err := relation.MatchSpec(local, remote); err != nil {
				return err
			}
			util.Success("Specs match")
			return nil
		},
	}
}

// loadBase builds the Hadoop base context from the manifests named by the
// global flags.
func loadBase(arch string) (*hadoop.Base, error) {
	cfg, err := dist.Load(distPath)
	if err != nil {
		return nil, err
	}
	m, err := resources.Load(resourcesPath)
	if err != nil {
		return nil, err
	}
	if arch == "" {
		arch = hostArch()
	}
	return hadoop.NewBase(cfg, m, arch, nil)
}
