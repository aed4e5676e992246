// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pi-test-apps/refchecker-app/internal/extract"
	"github.com/pi-test-apps/refchecker-app/internal/ingest"
	"github.com/pi-test-apps/refchecker-app/pkg/types"
)

var parseCmd = &cobra.Command{
	Use:   "parse [manuscript]",
	Short: "Extract structured references from a manuscript",
	Long: `Parse locates the bibliography in a manuscript (text, Markdown, LaTeX,
or PDF), classifies its format, and parses it into structured references
with normalized authors, titles, venues, and identifiers. The result is
written as YAML.

With --batch, every manuscript in the input directory is processed and
one result file written per manuscript.`,
	RunE: runParse,
}

func runParse(cmd *cobra.Command, args []string) error {
	cfg := parseConfigFromFlags(cmd)

	if batch, _ := cmd.Flags().GetBool("batch"); batch {
		inDir, _ := cmd.Flags().GetString("in-dir")
		outDir, _ := cmd.Flags().GetString("data-dir")
		summary, err := extract.ParseAll(inDir, outDir, cfg, os.Stdout)
		if err != nil {
			return err
		}
		if summary.HasFailures() {
			return fmt.Errorf("%d manuscript(s) failed parsing", summary.Failed)
		}
		return nil
	}

	if len(args) != 1 {
		return fmt.Errorf("exactly one manuscript path required (or use --batch)")
	}

	text, err := ingest.Load(args[0])
	if err != nil {
		return err
	}

	result := extract.Parse(text, cfg)

	data, err := yaml.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshaling result: %w", err)
	}

	if out, _ := cmd.Flags().GetString("output"); out != "" {
		return os.WriteFile(out, data, 0o644)
	}
	_, err = os.Stdout.Write(data)
	return err
}

// parseConfigFromFlags merges flag values over config-file values.
func parseConfigFromFlags(cmd *cobra.Command) types.ParseConfig {
	cfg := pipelineConfig().Parse
	if cmd.Flags().Changed("min-quality") {
		cfg.MinQualityScore, _ = cmd.Flags().GetFloat64("min-quality")
	}
	return cfg
}

func init() {
	parseCmd.Flags().String("output", "", "write the YAML result to a file instead of stdout")
	parseCmd.Flags().Bool("batch", false, "process every manuscript in --in-dir")
	parseCmd.Flags().String("in-dir", "manuscripts", "input directory for batch parsing")
	parseCmd.Flags().String("data-dir", "data", "base directory for batch results (contains parsed/)")
	parseCmd.Flags().Float64("min-quality", 0.70, "quality gate for a parsed batch (strictly greater-than)")

	rootCmd.AddCommand(parseCmd)
}
