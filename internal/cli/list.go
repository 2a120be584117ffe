package cli

import (
	"github.com/spf13/cobra"
)

func newListCmd(app *App) *cobra.Command {
	var (
		search   string
		facetArg string
		showURLs bool
	)

	cmd := &cobra.Command{
		Use:   "list <resource>",
		Short: "List a resource collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := lookupSchema(args[0])
			if err != nil {
				return err
			}
			facet, err := parseFacet(facetArg)
			if err != nil {
				return err
			}

			ctrl := app.newController(s)
			if err := ctrl.Refresh(cmd.Context()); err != nil {
				return err
			}

			view := ctrl.View(search, facet)
			cmd.Print(renderList(s, view, ctrl.Counters()))

			if showURLs {
				for _, r := range view {
					if r.Image == "" {
						continue
					}
					url, err := app.resolver.Resolve(cmd.Context(), r.Image)
					if err != nil {
						app.log.Warn().Err(err).Str("ref", r.Image).Msg("URL resolution failed")
						continue
					}
					cmd.Printf("%s  %s\n", idStyle.Render(string(r.ID)), url)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "Filter rows by substring match on searchable fields")
	cmd.Flags().StringVar(&facetArg, "facet", "all", "Status facet: all, active or inactive")
	cmd.Flags().BoolVar(&showURLs, "urls", false, "Also print resolved attachment URLs")
	return cmd
}
