package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newPathCmd() *cobra.Command {
	var depth int
	cmd := &cobra.Command{
		Use:   "path <from-id> <to-id>",
		Short: "Find how two people are related",
		Args:  cobra.ExactArgs(2),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if args[0] == args[1] {
				return fmt.Errorf("from and to must differ")
			}
			if depth < 0 || depth > 50 {
				return fmt.Errorf("--depth must be between 1 and 50")
			}
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			result, err := apiClient.Path(context.Background(), args[0], args[1], depth)
			if err != nil {
				fatal("path", err)
			}
			if flagFmt == "table" && !result.Connected {
				fmt.Printf("%s and %s are not related within %d steps\n", result.From, result.To, result.Depth)
				return
			}
			output(result, pathHeaders, pathRows(result))
		},
	}
	cmd.Flags().IntVar(&depth, "depth", 0, "Max relationship steps (default: server setting)")
	return cmd
}
