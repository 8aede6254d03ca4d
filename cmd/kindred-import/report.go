package main

import (
	"fmt"
	"io"
)

func printReport(w io.Writer, r *report) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "=== kindred import report ===")
	if r.DryRun {
		fmt.Fprintln(w, "MODE: DRY RUN (no changes made)")
	}
	fmt.Fprintf(w, "Source: %s\n", r.Source)
	if r.Target != "" {
		fmt.Fprintf(w, "Target: %s\n", r.Target)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Lookups: %d upserted\n", r.LookupsInserted)
	fmt.Fprintf(w, "Persons: %d read, %d verified\n", r.PersonsRead, r.PersonsVerified)
	fmt.Fprintf(w, "Relationships: %d read, %d inserted, %d skipped\n",
		r.RelationshipsRead, r.RelationshipsInserted, len(r.Skipped))
	if r.Dangling > 0 {
		fmt.Fprintf(w, "Relationships referencing persons outside the seed: %d\n", r.Dangling)
	}

	if len(r.Skipped) > 0 {
		fmt.Fprintln(w, "\nSkipped relationships:")
		for _, s := range r.Skipped {
			fmt.Fprintf(w, "  - %s -> %s (reason: %s)\n", s.From, s.To, s.Reason)
		}
	}

	fmt.Fprintf(w, "\nDuration: %.1fs\n", r.Duration.Seconds())
	if r.Err != nil {
		fmt.Fprintf(w, "Status: FAILED: %v\n", r.Err)
	} else {
		fmt.Fprintln(w, "Status: OK")
	}
}
