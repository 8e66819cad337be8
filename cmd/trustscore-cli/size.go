package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/idlab-discover/TrustScore-cli/internal/apperr"
	"github.com/idlab-discover/TrustScore-cli/internal/scoring"
	"github.com/idlab-discover/TrustScore-cli/internal/ui"
)

var sizeOutput string

var sizeCmd = &cobra.Command{
	Use:   "size SIZE_MB",
	Short: "Show hardware fitness for an artifact size",
	Long:  "Map an artifact size in megabytes to a 0-1 fitness for Raspberry Pi, Jetson Nano, desktop PC and AWS server deployments.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mb, err := strconv.ParseFloat(strings.TrimSpace(args[0]), 64)
		if err != nil {
			return apperr.Userf("invalid size %q: expected a number of megabytes", args[0])
		}
		return writeSizeFitness(cmd.OutOrStdout(), mb, sizeOutput)
	},
}

func writeSizeFitness(w io.Writer, mb float64, format string) error {
	fit := scoring.ComputeSizeFitness(mb)

	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "table":
		fmt.Fprintln(w, ui.FormatKeyValue("size", fmt.Sprintf("%.2f MB", mb)))
		for _, m := range fitnessMetrics(fit) {
			fmt.Fprintln(w, ui.FormatKeyValue(m.Label, m.Value))
		}
		return nil
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(fit)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(fit); err != nil {
			return err
		}
		return enc.Close()
	default:
		return apperr.Userf("invalid --output %q (expected table|json|yaml)", format)
	}
}

func init() {
	sizeCmd.Flags().StringVarP(&sizeOutput, "output", "o", "table", "Output format: table|json|yaml")
}
