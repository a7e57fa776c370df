package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/omniscale/changemonger"
	"github.com/omniscale/changemonger/element"
	"github.com/omniscale/changemonger/log"
	"github.com/omniscale/changemonger/osmapi"
)

func summarizeCmd() *cobra.Command {
	var (
		files   []string
		user    string
		verbose bool
	)
	cmd := &cobra.Command{
		Use:   "summarize [changeset-id ...]",
		Short: "Describe changesets",
		Example: `  changemonger summarize 12345678
  changemonger summarize --file changes.osc --user alice`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && len(files) == 0 {
				return errors.New("missing changeset ids or --file")
			}
			ctx := cmd.Context()
			failed := 0
			for _, arg := range args {
				id, err := strconv.ParseInt(arg, 10, 64)
				if err != nil {
					return errors.Errorf("invalid changeset id '%s'", arg)
				}
				s, err := engine.DescribeChangeset(ctx, id)
				if err != nil {
					if ctx.Err() != nil {
						return ctx.Err()
					}
					log.Printf("[error] changeset %d: %s", id, err)
					failed++
					continue
				}
				printSummary(s, verbose)
			}
			for _, fname := range files {
				s, err := summarizeFile(cmd, fname, user)
				if err != nil {
					log.Printf("[error] %s: %s", fname, err)
					failed++
					continue
				}
				printSummary(s, verbose)
			}
			if failed > 0 {
				return errors.Errorf("%d of %d changesets failed", failed, len(args)+len(files))
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&files, "file", nil, "describe osmChange file instead of fetching a changeset")
	cmd.Flags().StringVar(&user, "user", "someone", "user name for --file")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "list groups and elements")
	return cmd
}

func summarizeFile(cmd *cobra.Command, fname, user string) (*changemonger.Summary, error) {
	f, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cs := &element.Changeset{}
	cs.UserName = user
	if err := osmapi.ParseChange(cmd.Context(), f, cs); err != nil {
		return nil, err
	}
	return engine.Describe(cmd.Context(), cs)
}

func printSummary(s *changemonger.Summary, verbose bool) {
	fmt.Println(s.Sentence)
	if !verbose {
		return
	}
	for _, g := range s.Groups {
		fmt.Printf("  %s (%s, precision %d)\n", g.Clause(), g.Feature.Name, g.Feature.Precision())
		for _, e := range g.Elements {
			fmt.Printf("    %s v%d %s\n", e.Key(), e.Version(), e.Action)
		}
	}
}
