package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/tradecalc/internal/calc"
)

// errCalcFailed marks a calculation that returned ok:false
var errCalcFailed = errors.New("calculation failed")

var calcCmd = &cobra.Command{
	Use:   "calc <function>",
	Short: "Run a single calculation and print the JSON response",
	Long: `Run one calculation through the same dispatcher the HTTP API uses.

Parameters are passed as --param name=value and may be plain numbers or
fractions such as "3 1/2". The command exits with status 1 when the
response is not ok.

Examples:
  tradecalc calc convert --param value=1 --in ft --out in
  tradecalc calc diagonal --param rise=3 --param run=4 --in ft
  tradecalc calc stairs --param totalRise=10 --in ft --out in`,
	Args: cobra.ExactArgs(1),
	RunE: runCalc,
}

func init() {
	calcCmd.Flags().StringArrayP("param", "p", nil, "Function parameter as name=value (repeatable)")
	calcCmd.Flags().String("in", "", "Input unit (defaults to the configured unit)")
	calcCmd.Flags().String("out", "", "Output unit (defaults to --in)")
	calcCmd.Flags().Int("precision", 0, "Fraction denominator for display (0 = configured default)")
	rootCmd.AddCommand(calcCmd)
}

func runCalc(cmd *cobra.Command, args []string) error {
	req, err := buildRequest(cmd, args[0])
	if err != nil {
		return err
	}

	d, err := newDispatcher()
	if err != nil {
		return err
	}

	resp := d.Dispatch(cmd.Context(), req)

	out, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode response: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))

	if !resp.OK {
		return errCalcFailed
	}
	return nil
}

func buildRequest(cmd *cobra.Command, function string) (calc.Request, error) {
	flags := cmd.Flags()

	rawParams, err := flags.GetStringArray("param")
	if err != nil {
		return calc.Request{}, err
	}
	params, err := parseParams(rawParams)
	if err != nil {
		return calc.Request{}, err
	}

	inUnit, err := flags.GetString("in")
	if err != nil {
		return calc.Request{}, err
	}
	outUnit, err := flags.GetString("out")
	if err != nil {
		return calc.Request{}, err
	}

	req := calc.Request{
		Function: calc.Function(function),
		Params:   params,
		InUnit:   inUnit,
		OutUnit:  outUnit,
	}

	precision, err := flags.GetInt("precision")
	if err != nil {
		return calc.Request{}, err
	}
	if precision != 0 {
		req.Precision = &precision
	}
	return req, nil
}

// parseParams turns name=value pairs into a parameter bag. Values stay
// strings; the function's binder parses them.
func parseParams(pairs []string) (calc.Params, error) {
	params := make(calc.Params, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid --param %q, expected name=value", pair)
		}
		params[name] = strings.TrimSpace(value)
	}
	return params, nil
}
