// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pi-test-apps/refchecker-app/internal/extract"
	"github.com/pi-test-apps/refchecker-app/internal/ingest"
	"github.com/pi-test-apps/refchecker-app/internal/match"
	"github.com/pi-test-apps/refchecker-app/internal/store"
	"github.com/pi-test-apps/refchecker-app/pkg/types"
)

var checkCmd = &cobra.Command{
	Use:   "check [manuscript]",
	Short: "Check cited references against verified records",
	Long: `Check parses the manuscript's bibliography and compares every cited
reference against a file of verified records (YAML, one record per
work). Each disagreeing field produces a diagnostic: errors for author,
title, DOI, arXiv id, and URL discrepancies, warnings for year and
venue. References with no matching record are reported unverified.`,
	RunE: runCheck,
}

// checkedEntry is one reference with its comparison outcome.
type checkedEntry struct {
	Reference   types.Reference    `json:"reference" yaml:"reference"`
	Verified    bool               `json:"verified" yaml:"verified"`
	Diagnostics []types.Diagnostic `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
}

// checkReport is the full output of one check run.
type checkReport struct {
	Manuscript string                 `json:"manuscript" yaml:"manuscript"`
	Format     types.SourceFormat     `json:"format,omitempty" yaml:"format,omitempty"`
	Quality    types.QualityReport    `json:"quality" yaml:"quality"`
	CrossCheck types.CrossCheckReport `json:"cross_check" yaml:"cross_check"`
	Entries    []checkedEntry         `json:"entries" yaml:"entries"`
	Errors     int                    `json:"errors" yaml:"errors"`
	Warnings   int                    `json:"warnings" yaml:"warnings"`
}

func runCheck(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("exactly one manuscript path required")
	}

	recordsPath, _ := cmd.Flags().GetString("records")
	if recordsPath == "" {
		return fmt.Errorf("--records file with verified metadata required")
	}

	records, err := loadRecords(recordsPath)
	if err != nil {
		return err
	}

	text, err := ingest.Load(args[0])
	if err != nil {
		return err
	}

	cfg := checkConfigFromFlags(cmd)
	result := extract.Parse(text, cfg.ParseConfig)

	report := buildReport(args[0], result, records)

	if cfg.Save {
		if err := saveRun(cmd, args[0], result); err != nil {
			return err
		}
	}

	if err := writeReport(cmd, cfg.OutputPath, report); err != nil {
		return err
	}

	if report.Errors > 0 {
		return fmt.Errorf("%d reference error(s) found", report.Errors)
	}
	return nil
}

func buildReport(manuscript string, result *types.ParseResult, records []types.Reference) checkReport {
	report := checkReport{
		Manuscript: manuscript,
		Format:     result.Format,
		Quality:    result.Quality,
		CrossCheck: result.CrossCheck,
	}

	for i := range result.References {
		cited := &result.References[i]
		entry := checkedEntry{Reference: *cited}

		if actual := findRecord(cited, records); actual != nil {
			entry.Verified = true
			entry.Diagnostics = match.Compare(cited, actual)
		} else {
			entry.Diagnostics = []types.Diagnostic{
				match.NewUnverified(fmt.Sprintf("no verified record for %q", cited.Title)),
			}
		}

		for _, d := range entry.Diagnostics {
			if d.IsError() {
				report.Errors++
			} else {
				report.Warnings++
			}
		}
		report.Entries = append(report.Entries, entry)
	}
	return report
}

func findRecord(cited *types.Reference, records []types.Reference) *types.Reference {
	for i := range records {
		if match.Same(cited, &records[i]) {
			return &records[i]
		}
	}
	return nil
}

// loadRecords reads the verified metadata file: a YAML list of references.
func loadRecords(path string) ([]types.Reference, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading records %s: %w", path, err)
	}
	var records []types.Reference
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing records %s: %w", path, err)
	}
	return records, nil
}

// checkConfigFromFlags assembles the check settings from the pipeline
// configuration and the command's own flags.
func checkConfigFromFlags(cmd *cobra.Command) types.CheckConfig {
	var cfg types.CheckConfig
	cfg.ParseConfig = parseConfigFromFlags(cmd)
	cfg.OutputPath, _ = cmd.Flags().GetString("output")
	cfg.Save, _ = cmd.Flags().GetBool("save")
	return cfg
}

func writeReport(cmd *cobra.Command, outPath string, report checkReport) error {
	if asYAML, _ := cmd.Flags().GetBool("yaml"); asYAML {
		data, err := yaml.Marshal(report)
		if err != nil {
			return fmt.Errorf("marshaling report: %w", err)
		}
		if outPath != "" {
			return os.WriteFile(outPath, data, 0o644)
		}
		_, err = os.Stdout.Write(data)
		return err
	}
	printReport(report)
	return nil
}

func printReport(report checkReport) {
	fmt.Printf("%s: %d references (%s), quality %.2f\n\n",
		report.Manuscript, len(report.Entries), report.Format, report.Quality.Score)

	for _, entry := range report.Entries {
		label := entry.Reference.Title
		if label == "" {
			label = entry.Reference.RawText
		}
		if len(entry.Diagnostics) == 0 {
			fmt.Printf("ok      %s\n", label)
			continue
		}
		for _, d := range entry.Diagnostics {
			fmt.Printf("%-7s %s\n", d.Severity, label)
			for _, line := range strings.Split(d.Details, "\n") {
				fmt.Printf("        %s\n", line)
			}
		}
	}

	fmt.Printf("\n%d errors, %d warnings\n", report.Errors, report.Warnings)
}

func saveRun(cmd *cobra.Command, manuscript string, result *types.ParseResult) error {
	dataDir, _ := cmd.Flags().GetString("data-dir")
	s, err := store.NewStore(types.StoreConfig{DataDir: dataDir})
	if err != nil {
		return err
	}
	defer s.Close()

	id := strings.TrimSuffix(filepath.Base(manuscript), filepath.Ext(manuscript))
	modTime := time.Now().UTC().Format(time.RFC3339Nano)
	return s.SaveResult(context.Background(), id, result, modTime, true)
}

func init() {
	checkCmd.Flags().String("records", "", "YAML file of verified reference records")
	checkCmd.Flags().String("output", "", "write the report to a file instead of stdout")
	checkCmd.Flags().Bool("yaml", false, "emit the report as YAML instead of text")
	checkCmd.Flags().Bool("save", false, "persist the parse run to the store")
	checkCmd.Flags().String("data-dir", "data", "base directory for the store")
	checkCmd.Flags().Float64("min-quality", 0.70, "quality gate for a parsed batch (strictly greater-than)")

	rootCmd.AddCommand(checkCmd)
}
