package main

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/episim/internal/config"
	"github.com/san-kum/episim/internal/integrators"
	"github.com/san-kum/episim/internal/models"
)

func listPresets(cmd *cobra.Command, args []string) error {
	kinds := models.All()
	if len(args) > 0 {
		k, err := models.Lookup(args[0])
		if err != nil {
			return err
		}
		kinds = []models.Kind{k}
	}

	for _, k := range kinds {
		presets := config.ListPresets(k.String())
		if len(presets) == 0 {
			fmt.Printf("no presets for model: %s\n", k)
			continue
		}
		fmt.Printf("presets for %s:\n", k)
		for _, p := range presets {
			sc := config.GetPreset(k.String(), p)
			fmt.Printf("  %-10s %s\n", p, formatParams(sc.Params))
		}
	}
	return nil
}

func listModels(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "MODEL\tCOMPARTMENTS\tPARAMS\tDESCRIPTION")
	for _, k := range models.All() {
		var groups []string
		for _, g := range config.ParamsFor(k) {
			groups = append(groups, g.Name+": "+strings.Join(g.Keys, ","))
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", k, strings.Join(k.Dims(), ","), strings.Join(groups, "; "), k.Description())
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println("\nintegrators:")
	for _, m := range integrators.All() {
		fmt.Printf("  %-6s order %d\n", m, m.Order())
	}
	fmt.Println("  (unknown names fall back to rk4)")
	return nil
}

func formatParams(p map[string]float64) string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	// Fixed order: same grouping as ParamsFor, then anything else.
	order := []string{"D", "measures", "R0", "beta", "gamma", "sigma", "mu", "nu", "N", "I0", "T", "dt"}
	var parts []string
	seen := map[string]bool{}
	for _, k := range order {
		if v, ok := p[k]; ok {
			parts = append(parts, fmt.Sprintf("%s=%g", k, v))
			seen[k] = true
		}
	}
	for _, k := range keys {
		if !seen[k] {
			parts = append(parts, fmt.Sprintf("%s=%g", k, p[k]))
		}
	}
	return strings.Join(parts, " ")
}
