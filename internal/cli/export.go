package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/debemdeboas/site-admin/internal/schema"
	"github.com/debemdeboas/site-admin/internal/util/compression"
)

type exportRow struct {
	ID       string            `yaml:"id"`
	Active   bool              `yaml:"active"`
	Fields   map[string]string `yaml:"fields"`
	RichText string            `yaml:"rich_text,omitempty"`
	Image    string            `yaml:"image,omitempty"`
}

type exportDoc struct {
	Resource   string      `yaml:"resource"`
	ExportedAt time.Time   `yaml:"exported_at"`
	Items      []exportRow `yaml:"items"`
}

func newExportCmd(app *App) *cobra.Command {
	var (
		output   string
		compress bool
	)

	cmd := &cobra.Command{
		Use:   "export [resource]",
		Short: "Export one collection, or all of them, as YAML",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			schemas := schema.Registry()
			if len(args) == 1 {
				s, err := lookupSchema(args[0])
				if err != nil {
					return err
				}
				schemas = []*schema.Schema{s}
			}

			var docs []exportDoc
			total := 0
			for _, s := range schemas {
				ctrl := app.newController(s)
				if err := ctrl.Refresh(cmd.Context()); err != nil {
					return err
				}

				doc := exportDoc{
					Resource:   s.Name,
					ExportedAt: time.Now().UTC(),
				}
				for _, r := range ctrl.Committed() {
					row := exportRow{
						ID:       string(r.ID),
						Active:   r.IsActive,
						Fields:   make(map[string]string, len(s.Fields)),
						RichText: r.RichText,
						Image:    r.Image,
					}
					for _, f := range s.Fields {
						if f.Kind == schema.KindRich {
							continue
						}
						if v := r.Field(f.Name); v != "" {
							row.Fields[f.Name] = v
						}
					}
					doc.Items = append(doc.Items, row)
				}
				total += len(doc.Items)
				docs = append(docs, doc)
			}

			data, err := yaml.Marshal(docs)
			if err != nil {
				return fmt.Errorf("marshal export: %w", err)
			}
			if compress {
				data, err = compression.ZstdCompressor{}.Compress(data)
				if err != nil {
					return fmt.Errorf("compress export: %w", err)
				}
			}

			if output == "" || output == "-" {
				cmd.OutOrStdout().Write(data)
				return nil
			}
			if err := os.WriteFile(output, data, 0644); err != nil {
				return err
			}
			cmd.Printf("exported %d items to %s\n", total, output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file, - for stdout")
	cmd.Flags().BoolVar(&compress, "compress", false, "Compress the export with zstd")
	return cmd
}
