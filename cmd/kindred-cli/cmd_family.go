package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newFamilyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "family <person-id>",
		Short: "Show parents, spouses, children and siblings of a person",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			view, err := apiClient.Family(context.Background(), args[0])
			if err != nil {
				fatal("family", err)
			}
			output(view, personHeaders, familyRows(view))
			if flagFmt == "table" && view.LayoutError != "" {
				fmt.Fprintf(os.Stderr, "Warning: no layout: %s\n", view.LayoutError)
			}
		},
	}
}
