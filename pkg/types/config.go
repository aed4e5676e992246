// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ParseConfig holds settings for the bibliography parsing stage.
type ParseConfig struct {
	// MinQualityScore is the acceptance threshold for a parsed batch.
	// The check is strictly greater-than (default 0.70).
	MinQualityScore float64 `json:"min_quality_score" yaml:"min_quality_score"`

	// KeepHyphens biases the line-break hyphen heuristic toward preserving
	// hyphens in ambiguous cases (default true).
	KeepHyphens bool `json:"keep_hyphens" yaml:"keep_hyphens"`
}

// StoreConfig holds settings for the parse-run store.
type StoreConfig struct {
	// DataDir is the base directory for the store (contains runs.db and exports/).
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// MaxResults is the default maximum number of listed runs (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// CheckConfig holds settings for the check command.
type CheckConfig struct {
	ParseConfig `yaml:",inline"`

	// OutputPath is an optional file to write the YAML report to; empty
	// means stdout.
	OutputPath string `json:"output_path,omitempty" yaml:"output_path,omitempty"`

	// Save persists the parse run to the store when true.
	Save bool `json:"save" yaml:"save"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Parse ParseConfig `json:"parse" yaml:"parse"`
	Store StoreConfig `json:"store" yaml:"store"`
}

// DefaultParseConfig returns the parse settings used when none are configured.
func DefaultParseConfig() ParseConfig {
	return ParseConfig{MinQualityScore: 0.70, KeepHyphens: true}
}
