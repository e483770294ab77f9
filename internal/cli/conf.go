package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/juju-solutions/bigdata-go/internal/util"
	"github.com/juju-solutions/bigdata-go/internal/xmlprops"
)

func newConfCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "conf",
		Short: "Edit Hadoop XML configuration files",
		Long: `Edit Hadoop XML property-map configuration files such as
core-site.xml, hdfs-site.xml and yarn-site.xml.

Examples:
  bigdata conf get /etc/hadoop/conf/core-site.xml fs.defaultFS
  bigdata conf set /etc/hadoop/conf/hdfs-site.xml dfs.replication 3
  bigdata conf del /etc/hadoop/conf/core-site.xml io.compression.codecs
  bigdata conf list /etc/hadoop/conf/yarn-site.xml`,
	}

	cmd.AddCommand(newConfGetCmd())
	cmd.AddCommand(newConfSetCmd())
	cmd.AddCommand(newConfDelCmd())
	cmd.AddCommand(newConfListCmd())

	return cmd
}

func newConfGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <file> <name>",
		Short: "Print a property value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := xmlprops.Load(args[0])
			if err != nil {
				return err
			}
			if !c.Has(args[1]) {
				return fmt.Errorf("property %q is not set in %s", args[1], args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), c.Get(args[1]))
			return nil
		},
	}
}

func newConfSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <file> <name> <value>",
		Short: "Set a property value",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			// A missing site file starts as an empty document.
			if !util.FileExists(args[0]) {
				c := &xmlprops.Configuration{}
				c.Set(args[1], args[2])
				if err := c.WriteTo(args[0]); err != nil {
					return err
				}
				util.Success("Set %s in %s", args[1], args[0])
				return nil
			}
			err := xmlprops.Edit(args[0], func(c *xmlprops.Configuration) {
				c.Set(args[1], args[2])
			})
			if err != nil {
				return err
			}
			util.Success("Set %s in %s", args[1], args[0])
			return nil
		},
	}
}

func newConfDelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "del <file> <name>",
		Short: "Delete a property",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			found := false
			err := xmlprops.Edit(args[0], func(c *xmlprops.Configuration) {
				found = c.Delete(args[1])
			})
			if err != nil {
				return err
			}
			if !found {
				util.Warn("Property %q was not set in %s", args[1], args[0])
				return nil
			}
			util.Success("Deleted %s from %s", args[1], args[0])
			return nil
		},
	}
}

func newConfListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <file>",
		Short: "List all property names",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := xmlprops.Load(args[0])
			if err != nil {
				return err
			}
			for _, name := range c.Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}
