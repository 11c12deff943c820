package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dshills/tradecalc/internal/calc"
)

var functionsCmd = &cobra.Command{
	Use:   "functions",
	Short: "List the calculation functions",
	RunE: func(cmd *cobra.Command, _ []string) error {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "FUNCTION\tSTATUS\tPARAMS\tDESCRIPTION")
		for _, f := range calc.Catalog() {
			status := "ready"
			if !f.Implemented {
				status = "planned"
			}
			params := strings.Join(f.Required, ", ")
			if len(f.Optional) > 0 {
				params += " [" + strings.Join(f.Optional, ", ") + "]"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", f.Name, status, params, f.Description)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(functionsCmd)
}
