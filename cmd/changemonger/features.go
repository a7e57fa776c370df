package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func featuresCmd() *cobra.Command {
	var categories bool
	cmd := &cobra.Command{
		Use:   "features",
		Short: "List the features of the catalog",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := engine.Catalog()
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "PRECISION\tNAME\tPLURAL\tTYPES\tRULE")
			features := c.Features()
			if categories {
				features = c.Categories()
			}
			for _, f := range append(features, c.Magic()...) {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", f.Precision(), f.Name, f.Plural, f.Types, describeRule(f))
			}
			return w.Flush()
		},
	}
	cmd.Flags().BoolVar(&categories, "categories", false, "list categories instead of features")
	return cmd
}
