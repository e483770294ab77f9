package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/juju-solutions/bigdata-go/internal/envfile"
	"github.com/juju-solutions/bigdata-go/internal/util"
)

func newEnvCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "env",
		Short: "Edit the system environment file",
		Long: `Edit an /etc/environment style file. Values are always written
double-quoted; path edits deduplicate entries so hooks can re-run
safely.

Examples:
  bigdata env get JAVA_HOME
  bigdata env set HADOOP_HEAPSIZE 1024
  bigdata env path PATH /usr/lib/hadoop/bin --append
  bigdata env hadoop --java-home /usr/lib/jvm/java-8-openjdk-amd64`,
	}

	cmd.PersistentFlags().StringVar(&file, "file", "/etc/environment",
		"environment file to edit")

	cmd.AddCommand(newEnvGetCmd(&file))
	cmd.AddCommand(newEnvSetCmd(&file))
	cmd.AddCommand(newEnvUnsetCmd(&file))
	cmd.AddCommand(newEnvPathCmd(&file))
	cmd.AddCommand(newEnvHadoopCmd(&file))

	return cmd
}

func newEnvGetCmd(file *string) *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Print a variable from the environment file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := envfile.Load(*file)
			if err != nil {
				return err
			}
			value, ok := f.Get(args[0])
			if !ok {
				return fmt.Errorf("%s is not set in %s", args[0], *file)
			}
			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	}
}

func newEnvSetCmd(file *string) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a variable in the environment file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := envfile.Edit(*file, func(f *envfile.File) {
				f.Set(args[0], args[1])
			})
			if err != nil {
				return err
			}
			util.Success("Set %s in %s", args[0], *file)
			return nil
		},
	}
}

func newEnvUnsetCmd(file *string) *cobra.Command {
	return &cobra.Command{
		Use:   "unset <key>",
		Short: "Remove a variable from the environment file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := envfile.Edit(*file, func(f *envfile.File) {
				f.Unset(args[0])
			})
			if err != nil {
				return err
			}
			util.Success("Unset %s in %s", args[0], *file)
			return nil
		},
	}
}

func newEnvPathCmd(file *string) *cobra.Command {
	var appendDir bool

	cmd := &cobra.Command{
		Use:   "path <key> <dir>",
		Short: "Add a dir to a PATH-style variable",
		Long: `Add a directory to a PATH-style variable, prepending by default.
Duplicate entries are dropped, so the edit is idempotent.

Examples:
  bigdata env path PATH /usr/lib/jvm/java-8/bin
  bigdata env path PATH /usr/lib/hadoop/sbin --append`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := envfile.Edit(*file, func(f *envfile.File) {
				if appendDir {
					f.AppendPath(args[0], args[1])
				} else {
					f.PrependPath(args[0], args[1])
				}
			})
			if err != nil {
				return err
			}
			util.Success("Updated %s in %s", args[0], *file)
			return nil
		},
	}

	cmd.Flags().BoolVar(&appendDir, "append", false, "append instead of prepend")

	return cmd
}

func newEnvHadoopCmd(file *string) *cobra.Command {
	var (
		javaHome string
		arch     string
	)

	cmd := &cobra.Command{
		Use:   "hadoop",
		Short: "Apply the Hadoop environment conventions",
		Long: `Apply the Hadoop environment conventions to the environment
file: JAVA_HOME, the HADOOP_* homes and log dirs from the distribution
manifest, Java first on PATH and the Hadoop bin dirs after.

Examples:
  bigdata env hadoop --java-home /usr/lib/jvm/java-8-openjdk-amd64`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if javaHome == "" {
				return fmt.Errorf("--java-home is required")
			}
			base, err := loadBase(arch)
			if err != nil {
				return err
			}
			f, err := envfile.Load(*file)
			if err != nil {
				if !errors.Is(err, os.ErrNotExist) {
					return err
				}
				f = envfile.New()
			}
			if err := base.ApplyEnvironment(f, javaHome); err != nil {
				return err
			}
			if err := f.WriteTo(*file); err != nil {
				return err
			}
			util.Success("Applied Hadoop environment to %s", *file)
			return nil
		},
	}

	cmd.Flags().StringVar(&javaHome, "java-home", "", "Java installation root")
	cmd.Flags().StringVar(&arch, "arch", "", "CPU architecture (default: local machine)")

	return cmd
}
