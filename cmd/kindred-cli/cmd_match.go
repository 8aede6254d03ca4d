package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kindredgraph/kindred/client"
)

type matchFlags struct {
	depth          int
	gender         int
	bornFrom       int
	bornTo         int
	religions      []int
	categories     []int
	subCategories  []int
	excludeSubCats []int
}

func newMatchCmd() *cobra.Command {
	var f matchFlags
	cmd := &cobra.Command{
		Use:   "match <root-id>",
		Short: "Search partner candidates around a person",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := buildSearchRequest(cmd, args[0], f)
			if err != nil {
				return err
			}
			result, err := apiClient.Search(context.Background(), req)
			if err != nil {
				fatal("match", err)
			}
			output(result, matchHeaders, matchRows(result))
			return nil
		},
	}
	bindMatchFlags(cmd, &f)
	return cmd
}

func bindMatchFlags(cmd *cobra.Command, f *matchFlags) {
	cmd.Flags().IntVar(&f.depth, "depth", 0, "Max relationship steps (default: server setting)")
	cmd.Flags().IntVar(&f.gender, "gender", 0, "Gender id of candidates")
	cmd.Flags().IntVar(&f.bornFrom, "born-from", 0, "Earliest birth year")
	cmd.Flags().IntVar(&f.bornTo, "born-to", 0, "Latest birth year")
	cmd.Flags().IntSliceVar(&f.religions, "religion", nil, "Religion ids to include")
	cmd.Flags().IntSliceVar(&f.categories, "category", nil, "Category ids to include")
	cmd.Flags().IntSliceVar(&f.subCategories, "sub-category", nil, "Sub-category ids to include")
	cmd.Flags().IntSliceVar(&f.excludeSubCats, "exclude-sub-category", nil, "Sub-category ids to exclude")
}

// buildSearchRequest maps flags to a request. Only flags the user set become
// filters, so --gender=0 is distinct from no gender filter.
func buildSearchRequest(cmd *cobra.Command, rootID string, f matchFlags) (client.SearchRequest, error) {
	req := client.SearchRequest{
		RootID:   rootID,
		MaxDepth: f.depth,
		Filters: client.Filter{
			IncludeReligions:     f.religions,
			IncludeCategories:    f.categories,
			IncludeSubCategories: f.subCategories,
			ExcludeSubCategories: f.excludeSubCats,
		},
	}

	if f.depth < 0 || f.depth > 50 {
		return req, fmt.Errorf("--depth must be between 1 and 50")
	}

	flags := cmd.Flags()
	if flags.Changed("gender") {
		req.Filters.GenderID = &f.gender
	}
	if flags.Changed("born-from") {
		req.Filters.BirthYearFrom = &f.bornFrom
	}
	if flags.Changed("born-to") {
		req.Filters.BirthYearTo = &f.bornTo
	}
	if req.Filters.BirthYearFrom != nil && req.Filters.BirthYearTo != nil && f.bornFrom > f.bornTo {
		return req, fmt.Errorf("--born-from must not exceed --born-to")
	}
	return req, nil
}
