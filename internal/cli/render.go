package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/juju-solutions/bigdata-go/internal/template"
	"github.com/juju-solutions/bigdata-go/internal/util"
)

func newRenderCmd() *cobra.Command {
	var (
		desc         template.ServiceDescriptor
		templatePath string
		output       string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a service definition for a Hadoop daemon",
		Long: `Render a service definition for a Hadoop daemon.

Substitutes the service descriptor fields into the built-in systemd
unit template, or into a custom template given with --template. Every
{{placeholder}} in the template must be bound to a non-empty field;
fields the template does not use are reported as warnings.

Examples:
  bigdata render --service namenode --user hdfs --daemon hadoop-hdfs \
    --hadoop-path /usr/lib/hadoop --hadoop-conf /etc/hadoop/conf
  bigdata render --service nodemanager --user yarn --daemon yarn \
    --hadoop-path /usr/lib/hadoop --hadoop-conf /etc/hadoop/conf \
    -o /etc/systemd/system/nodemanager.service`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := desc.Validate(); err != nil {
				return err
			}

			text := template.UnitTemplate
			if templatePath != "" {
				data, err := os.ReadFile(templatePath)
				if err != nil {
					return fmt.Errorf("failed to read template: %w", err)
				}
				text = string(data)
			}

			tmpl := template.Parse(text)
			if unused := tmpl.Unused(desc.Vars()); len(unused) > 0 {
				util.Warn("template does not use field(s): %s", strings.Join(unused, ", "))
			}

			rendered, err := tmpl.Render(desc.Vars())
			if err != nil {
				return err
			}

			if output == "" {
				fmt.Fprint(cmd.OutOrStdout(), rendered)
				return nil
			}
			if err := util.WriteFileAtomic(output, []byte(rendered), 0644); err != nil {
				return err
			}
			util.Success("Wrote %s", output)
			return nil
		},
	}

	cmd.Flags().StringVar(&desc.Service, "service", "", "daemon identifier (e.g. namenode)")
	cmd.Flags().StringVar(&desc.User, "user", "", "system user the daemon runs as")
	cmd.Flags().StringVar(&desc.Daemon, "daemon", "", "daemon script prefix (e.g. hadoop-hdfs)")
	cmd.Flags().StringVar(&desc.HadoopPath, "hadoop-path", "", "Hadoop installation root")
	cmd.Flags().StringVar(&desc.HadoopConf, "hadoop-conf", "", "Hadoop configuration directory")
	cmd.Flags().StringVar(&templatePath, "template", "", "custom template file (default: built-in unit)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the result to a file instead of stdout")

	return cmd
}
