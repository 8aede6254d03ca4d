package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/kindredgraph/kindred/client"
)

func validateFormat(f string) error {
	switch f {
	case "json", "table":
		return nil
	default:
		return fmt.Errorf("unknown format %q (want json or table)", f)
	}
}

func formatJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "Error: encode json: %v\n", err)
		os.Exit(1)
	}
}

func formatTable(headers []string, rows [][]string) {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	printRow := func(cells []string) {
		parts := make([]string, len(cells))
		for i, cell := range cells {
			w := 0
			if i < len(widths) {
				w = widths[i]
			}
			parts[i] = fmt.Sprintf("%-*s", w, cell)
		}
		fmt.Println(strings.TrimRight(strings.Join(parts, "  "), " "))
	}

	printRow(headers)
	seps := make([]string, len(headers))
	for i, w := range widths {
		seps[i] = strings.Repeat("-", w)
	}
	printRow(seps)
	for _, row := range rows {
		printRow(row)
	}
}

// output prints v as JSON, or as a table when --format=table.
func output(v any, headers []string, rows [][]string) {
	if flagFmt == "table" {
		formatTable(headers, rows)
		return
	}
	formatJSON(v)
}

func optInt(v *int) string {
	if v == nil {
		return "-"
	}
	return strconv.Itoa(*v)
}

var personHeaders = []string{"RELATION", "ID", "NAME", "BORN"}

func personRow(relation string, p client.Person) []string {
	return []string{relation, p.ID, p.FullName(), optInt(p.BirthYear)}
}

func familyRows(v *client.FamilyView) [][]string {
	rows := [][]string{personRow("self", v.Person)}
	groups := []struct {
		label   string
		persons []client.Person
	}{
		{"parent", v.Parents},
		{"spouse", v.Spouses},
		{"child", v.Children},
		{"sibling", v.Siblings},
	}
	for _, g := range groups {
		for _, p := range g.persons {
			rows = append(rows, personRow(g.label, p))
		}
	}
	return rows
}

var pathHeaders = []string{"STEP", "RELATION", "ID", "NAME"}

func pathRows(r *client.PathResult) [][]string {
	rows := make([][]string, 0, len(r.Path))
	for i, s := range r.Path {
		rel := "-"
		if s.Relation != nil {
			rel = *s.Relation
		}
		rows = append(rows, []string{strconv.Itoa(i), rel, s.Person.ID, s.Person.FullName()})
	}
	return rows
}

var matchHeaders = []string{"ID", "NAME", "DEPTH", "BORN", "SUB_CATEGORY"}

func matchRows(r *client.SearchResult) [][]string {
	rows := make([][]string, 0, len(r.CandidateMatches))
	for _, c := range r.CandidateMatches {
		rows = append(rows, []string{
			c.PersonID, c.Person.FullName(), strconv.Itoa(c.Depth),
			optInt(c.Person.BirthYear), optInt(c.Person.SubCategoryID),
		})
	}
	return rows
}
