package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/juju-solutions/bigdata-go/internal/hosts"
	"github.com/juju-solutions/bigdata-go/internal/util"
)

func newHostsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hosts",
		Short: "Maintain the managed host registry and /etc/hosts",
		Long: `Maintain the ip/hostname registry shared across the deployment
and rewrite the managed section of /etc/hosts from it. Lines not
carrying the managed marker are never touched.

Examples:
  bigdata hosts register 10.0.3.17 namenode-0
  bigdata hosts register ip-10-0-3-18.internal datanode-0
  bigdata hosts list
  bigdata hosts remove datanode-0
  bigdata hosts render`,
	}

	cmd.AddCommand(newHostsRegisterCmd())
	cmd.AddCommand(newHostsListCmd())
	cmd.AddCommand(newHostsRemoveCmd())
	cmd.AddCommand(newHostsRenderCmd())

	return cmd
}

func newHostsRegisterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "register <address> <hostname>",
		Short: "Register a unit's address under a hostname",
		Long: `Register a unit's address under a hostname. The address may be
an IP or a resolvable name; an IP embedded in the name (for example
ip-10-0-3-17.internal) is used as a last resort. Registering a
hostname under a new address drops its old entry.

Examples:
  bigdata hosts register 10.0.3.17 namenode-0`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ip, err := hosts.ResolvePrivateAddress(args[0], nil)
			if err != nil {
				return err
			}
			reg, err := hosts.OpenRegistry(registryPath())
			if err != nil {
				return err
			}
			reg.Register(ip, args[1])
			if err := reg.Flush(); err != nil {
				return err
			}
			util.Success("Registered %s as %s", ip, args[1])
			return nil
		},
	}
}

func newHostsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the registered hosts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := hosts.OpenRegistry(registryPath())
			if err != nil {
				return err
			}
			entries := reg.Entries()
			for _, ip := range reg.IPs() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ip, entries[ip])
			}
			return nil
		},
	}
}

func newHostsRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <hostname>...",
		Short: "Remove hostnames from the registry",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := hosts.OpenRegistry(registryPath())
			if err != nil {
				return err
			}
			reg.Remove(args...)
			if err := reg.Flush(); err != nil {
				return err
			}
			util.Success("Removed %d hostname(s)", len(args))
			return nil
		},
	}
}

func newHostsRenderCmd() *cobra.Command {
	var (
		file   string
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Rewrite the managed section of /etc/hosts",
		Long: `Rewrite the managed section of the hosts file from the
registry. Unmanaged lines pass through unchanged; the command is
idempotent.

Examples:
  bigdata hosts render
  bigdata hosts render --file /tmp/hosts --dry-run`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := hosts.OpenRegistry(registryPath())
			if err != nil {
				return err
			}

			data, err := os.ReadFile(file)
			if err != nil && !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("failed to read %s: %w", file, err)
			}

			rendered := hosts.RenderHosts(string(data), reg.Entries())
			if dryRun {
				fmt.Fprint(cmd.OutOrStdout(), rendered)
				return nil
			}
			if err := util.WriteFileAtomic(file, []byte(rendered), 0644); err != nil {
				return err
			}
			util.Success("Updated %s with %d managed entr(y/ies)", file, len(reg.Entries()))
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "/etc/hosts", "hosts file to rewrite")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the result instead of writing it")

	return cmd
}
