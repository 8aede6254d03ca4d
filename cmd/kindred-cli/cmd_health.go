package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newHealthCmd() *cobra.Command {
	var ready bool
	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check server liveness, or readiness with --ready",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()
			if ready {
				resp, err := apiClient.Ready(ctx)
				if err != nil {
					fatal("ready", err)
				}
				rows := make([][]string, 0, len(resp.Checks))
				for _, name := range []string{"database", "schema"} {
					rows = append(rows, []string{name, resp.Checks[name]})
				}
				output(resp, []string{"CHECK", "STATUS"}, rows)
				return
			}
			resp, err := apiClient.Health(ctx)
			if err != nil {
				fatal("health", err)
			}
			output(resp, []string{"STATUS", "VERSION", "DATABASE", "WS_CLIENTS"}, [][]string{{
				resp.Status, resp.Version, resp.Database, fmt.Sprint(resp.WSClients),
			}})
		},
	}
	cmd.Flags().BoolVar(&ready, "ready", false, "Query the readiness probe instead")
	return cmd
}
