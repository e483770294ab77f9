package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/juju-solutions/bigdata-go/internal/dist"
	"github.com/juju-solutions/bigdata-go/internal/hadoop"
	"github.com/juju-solutions/bigdata-go/internal/util"
)

// requiredDistKeys are the top-level options every dist.yaml must carry.
var requiredDistKeys = []string{
	"vendor", "hadoop_version", "packages", "groups", "users", "dirs", "ports",
}

func newDistCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dist",
		Short: "Inspect and apply the distribution manifest",
		Long: `Inspect and apply the distribution manifest (dist.yaml).

Examples:
  bigdata dist check
  bigdata dist path hdfs_log_dir
  bigdata dist port namenode
  bigdata dist mkdirs --root /`,
	}

	cmd.AddCommand(newDistCheckCmd())
	cmd.AddCommand(newDistPathCmd())
	cmd.AddCommand(newDistPortCmd())
	cmd.AddCommand(newDistPortsCmd())
	cmd.AddCommand(newDistMkdirsCmd())

	return cmd
}

func newDistCheckCmd() *cobra.Command {
	var requireHadoop bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate the distribution manifest",
		Long: `Validate the distribution manifest.

Checks that every required top-level option is present and, with
--hadoop, that the dirs section defines the entries the Hadoop base
layer depends on.

Examples:
  bigdata dist check
  bigdata dist check --hadoop`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			util.Section("Checking %s", distPath)
			cfg, err := dist.Load(distPath, requiredDistKeys...)
			if err != nil {
				return err
			}
			if requireHadoop {
				if err := cfg.ValidateDirs(hadoop.RequiredDirs...); err != nil {
					return err
				}
			}
			util.Success("%s is valid (%s hadoop %s)", distPath, cfg.Vendor, cfg.HadoopVersion)
			return nil
		},
	}

	cmd.Flags().BoolVar(&requireHadoop, "hadoop", false,
		"also require the dirs the Hadoop base layer needs")

	return cmd
}

func newDistPathCmd() *cobra.Command {
	var configPairs []string

	cmd := &cobra.Command{
		Use:   "path <dir>",
		Short: "Resolve a dir entry to its path",
		Long: `Resolve a dir entry from the manifest to its filesystem path,
expanding nested {dirs[...]} and {config[...]} references.

Examples:
  bigdata dist path hdfs_log_dir
  bigdata dist path hdfs_dir_base --config namenode_dir=/srv/nn`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := dist.Load(distPath)
			if err != nil {
				return err
			}
			charmConfig, err := parseKeyValues(configPairs)
			if err != nil {
				return err
			}
			path, err := cfg.Path(args[0], charmConfig)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&configPairs, "config", nil,
		"charm config option as key=value (repeatable)")

	return cmd
}

func newDistPortCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "port <name>",
		Short: "Print a named port from the manifest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := dist.Load(distPath)
			if err != nil {
				return err
			}
			port, ok := cfg.Port(args[0])
			if !ok {
				return fmt.Errorf("unknown port %q in manifest", args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), port)
			return nil
		},
	}
}

func newDistPortsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ports <service>",
		Short: "Print the ports exposed on a service",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := dist.Load(distPath)
			if err != nil {
				return err
			}
			for _, port := range cfg.ExposedPorts(args[0]) {
				fmt.Fprintln(cmd.OutOrStdout(), port)
			}
			return nil
		},
	}
}

func newDistMkdirsCmd() *cobra.Command {
	var (
		root        string
		configPairs []string
	)

	cmd := &cobra.Command{
		Use:   "mkdirs",
		Short: "Create every dir entry from the manifest",
		Long: `Create every dir entry from the manifest with its declared
permissions. Ownership is left to the calling hook.

Examples:
  bigdata dist mkdirs --root /`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := dist.Load(distPath)
			if err != nil {
				return err
			}
			charmConfig, err := parseKeyValues(configPairs)
			if err != nil {
				return err
			}
			if err := cfg.CreateDirs(root, charmConfig); err != nil {
				return err
			}
			util.Success("Created %d dir(s) under %s", len(cfg.DirNames()), root)
			return nil
		},
	}

	cmd.Flags().StringVar(&root, "root", "/", "root to create the dirs beneath")
	cmd.Flags().StringArrayVar(&configPairs, "config", nil,
		"charm config option as key=value (repeatable)")

	return cmd
}

// parseKeyValues parses repeated key=value flags into a map.
func parseKeyValues(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	out := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid key=value pair %q", pair)
		}
		out[key] = value
	}
	return out, nil
}
