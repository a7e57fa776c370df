package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/omniscale/changemonger/element"
	"github.com/omniscale/changemonger/feature"
)

func classifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classify <node|way|relation> <id> [version]",
		Short: "Show all features of a single element",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := element.ParseType(args[0])
			if err != nil {
				return err
			}
			id, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return errors.Errorf("invalid id '%s'", args[1])
			}
			var version int64
			if len(args) == 3 {
				version, err = strconv.ParseInt(args[2], 10, 32)
				if err != nil {
					return errors.Errorf("invalid version '%s'", args[2])
				}
			}

			e, err := client.Element(cmd.Context(), t, id, int32(version))
			if err != nil {
				return err
			}
			matches, err := engine.ClassifyAll(e)
			if err != nil {
				return err
			}

			fmt.Println(e)
			if best := engine.Classify(e); best != nil {
				fmt.Println("best:", best.Name)
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			for _, f := range matches {
				fmt.Fprintf(w, "%d\t%s\t%s\n", f.Precision(), f.Name, describeRule(f))
			}
			return w.Flush()
		},
	}
}

func describeRule(f *feature.Feature) string {
	switch f.Kind {
	case feature.Category:
		names := make([]string, len(f.Members))
		for i, m := range f.Members {
			names[i] = m.Name
		}
		return "category of " + strings.Join(names, ", ")
	case feature.Magic:
		return "magic: " + f.Magic.String()
	}
	rules := make([]string, len(f.Tags))
	for i, r := range f.Tags {
		rules[i] = r.String()
	}
	return strings.Join(rules, " ")
}
