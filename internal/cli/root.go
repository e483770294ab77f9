// Package cli implements the bigdata command tree used by Hadoop charm
// hooks.
package cli

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var (
	distPath      string
	resourcesPath string
	stateDir      string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "bigdata",
	Short: "Support tools for Juju charms deploying Apache Hadoop",
	Long: `bigdata: support tools for Juju charms deploying Apache Hadoop.

Hook tooling for the big data charms: render service definitions from
the distribution manifest, resolve install resources, edit Hadoop XML
configuration and /etc/environment, and maintain the managed section
of /etc/hosts across units.`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&distPath, "dist", "dist.yaml",
		"path to the distribution manifest")
	rootCmd.PersistentFlags().StringVar(&resourcesPath, "resources", "resources.yaml",
		"path to the resource manifest")
	rootCmd.PersistentFlags().StringVar(&stateDir, "state-dir", defaultStateDir(),
		"directory for unit-local state such as the host registry")

	rootCmd.AddCommand(newRenderCmd())
	rootCmd.AddCommand(newDistCmd())
	rootCmd.AddCommand(newResourceCmd())
	rootCmd.AddCommand(newSpecCmd())
	rootCmd.AddCommand(newConfCmd())
	rootCmd.AddCommand(newEnvCmd())
	rootCmd.AddCommand(newHostsCmd())
}

// defaultStateDir honors BIGDATA_STATE_DIR so tests and non-root runs can
// relocate unit state.
func defaultStateDir() string {
	if dir := os.Getenv("BIGDATA_STATE_DIR"); dir != "" {
		return dir
	}
	return "/var/lib/bigdata"
}

// registryPath returns the host registry location inside the state dir.
func registryPath() string {
	return filepath.Join(stateDir, "hosts.json")
}
