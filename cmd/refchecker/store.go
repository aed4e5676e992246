// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pi-test-apps/refchecker-app/internal/store"
	"github.com/pi-test-apps/refchecker-app/pkg/types"
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage the parse-run store (index, retrieve, export)",
	Long: `Store manages a local SQLite database of parse runs. Use subcommands
to index parse results, query stored references, or export them.`,
}

// --- index subcommand ---

var storeIndexCmd = &cobra.Command{
	Use:   "index",
	Short: "Ingest parse result files into the store",
	Long: `Index reads parse result YAML files from data/parsed/, ingests them
into a SQLite database with FTS5 indexing over titles, authors, and
venues, and writes an export file. Unchanged manuscripts are skipped on
subsequent runs.`,
	RunE: runStoreIndex,
}

func runStoreIndex(cmd *cobra.Command, args []string) error {
	s, err := store.NewStore(storeConfig(cmd))
	if err != nil {
		return err
	}
	defer s.Close()

	summary, err := s.Ingest(context.Background(), os.Stdout)
	if err != nil {
		return err
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%d manuscript(s) failed indexing", summary.Failed)
	}
	return nil
}

// --- retrieve subcommand ---

var storeRetrieveCmd = &cobra.Command{
	Use:   "retrieve [query]",
	Short: "Query stored references with full-text search and filters",
	Long: `Retrieve searches stored references using FTS5 full-text search over
titles, authors, and venues, structured filters (manuscript, format,
type), or a combination of both.`,
	RunE: runStoreRetrieve,
}

func runStoreRetrieve(cmd *cobra.Command, args []string) error {
	s, err := store.NewStore(storeConfig(cmd))
	if err != nil {
		return err
	}
	defer s.Close()

	if doi, _ := cmd.Flags().GetString("doi"); doi != "" {
		results, err := s.LookupByDOI(context.Background(), doi)
		if err != nil {
			return err
		}
		jsonOutput, _ := cmd.Flags().GetBool("json")
		return formatRetrieveOutput(results, jsonOutput)
	}

	opts := queryOptsFromFlags(cmd, args)
	if opts.IsEmpty() {
		return fmt.Errorf("query or filter required: provide a search query, --manuscript, --format, or --type")
	}

	results, err := s.Retrieve(context.Background(), opts)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatRetrieveOutput(results, jsonOutput)
}

func formatRetrieveOutput(results []store.QueryResult, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-4s  %-20s  %-50s  %-6s  %s\n",
		"Rank", "Manuscript", "Title", "Year", "Venue")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 100))

	for i, r := range results {
		title := r.Title
		if len(title) > 50 {
			title = title[:47] + "..."
		}
		manuscript := r.ManuscriptID
		if len(manuscript) > 20 {
			manuscript = manuscript[:17] + "..."
		}
		year := ""
		if r.Year != nil {
			year = fmt.Sprintf("%d", *r.Year)
		}
		fmt.Fprintf(os.Stdout, "%-4d  %-20s  %-50s  %-6s  %s\n",
			i+1, manuscript, title, year, r.Venue)
	}

	fmt.Fprintf(os.Stdout, "\n%d results\n", len(results))
	return nil
}

// --- export subcommand ---

var storeExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export stored references to YAML or JSON",
	Long: `Export writes the stored references (or a filtered subset) to
data/index/export.yaml or export.json. Supports the same filter flags
as retrieve for partial exports.`,
	RunE: runStoreExport,
}

func runStoreExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	s, err := store.NewStore(storeConfig(cmd))
	if err != nil {
		return err
	}
	defer s.Close()

	opts := queryOptsFromFlags(cmd, args)

	switch format {
	case "yaml", "":
		if err := s.ExportYAML(context.Background(), opts); err != nil {
			return err
		}
		fmt.Println("Exported to data/index/export.yaml")
	case "json":
		if err := s.ExportJSON(context.Background(), opts); err != nil {
			return err
		}
		fmt.Println("Exported to data/index/export.json")
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}

	return nil
}

// --- shared helpers ---

func storeConfig(cmd *cobra.Command) types.StoreConfig {
	cfg := pipelineConfig().Store
	if cmd.Flags().Changed("data-dir") {
		cfg.DataDir, _ = cmd.Flags().GetString("data-dir")
	}
	if cmd.Flags().Changed("max-results") {
		cfg.MaxResults, _ = cmd.Flags().GetInt("max-results")
	}
	return cfg
}

func queryOptsFromFlags(cmd *cobra.Command, args []string) store.QueryOptions {
	queryText, _ := cmd.Flags().GetString("query")
	if queryText == "" && len(args) > 0 {
		queryText = strings.Join(args, " ")
	}

	manuscript, _ := cmd.Flags().GetString("manuscript")
	format, _ := cmd.Flags().GetString("source-format")
	refType, _ := cmd.Flags().GetString("type")
	limit, _ := cmd.Flags().GetInt("limit")

	return store.QueryOptions{
		Query:        queryText,
		ManuscriptID: manuscript,
		Format:       types.SourceFormat(format),
		Type:         types.ReferenceType(refType),
		MaxResults:   limit,
	}
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	storeCmd.PersistentFlags().String("data-dir", "data", "base directory for the store (contains parsed/, index/)")
	storeCmd.PersistentFlags().Int("max-results", 20, "maximum number of query results")

	// Retrieve flags.
	storeRetrieveCmd.Flags().String("query", "", "full-text search query")
	storeRetrieveCmd.Flags().String("manuscript", "", "filter by manuscript ID")
	storeRetrieveCmd.Flags().String("source-format", "", "filter by bibliography format: keyed_fields, numbered_list, author_year_list")
	storeRetrieveCmd.Flags().String("type", "", "filter by reference type: arxiv, identifier, other")
	storeRetrieveCmd.Flags().String("doi", "", "look up references by DOI")
	storeRetrieveCmd.Flags().Int("limit", 0, "maximum results (0 = use default)")
	storeRetrieveCmd.Flags().Bool("json", false, "output results as JSON")

	// Export flags.
	storeExportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	storeExportCmd.Flags().String("query", "", "full-text search filter for partial export")
	storeExportCmd.Flags().String("manuscript", "", "filter by manuscript ID for partial export")
	storeExportCmd.Flags().String("source-format", "", "filter by bibliography format for partial export")
	storeExportCmd.Flags().String("type", "", "filter by reference type for partial export")
	storeExportCmd.Flags().Int("limit", 0, "maximum references to export (0 = all)")

	// Wire subcommands.
	storeCmd.AddCommand(storeIndexCmd)
	storeCmd.AddCommand(storeRetrieveCmd)
	storeCmd.AddCommand(storeExportCmd)

	rootCmd.AddCommand(storeCmd)
}
