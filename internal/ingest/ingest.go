// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ingest reads manuscript files into plain text with pluggable
// readers per input format.
package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Reader turns one manuscript file into plain text. Different backends
// (plain text, PDF) implement this interface.
type Reader interface {
	// Read loads the manuscript at path and returns its text content.
	Read(path string) (string, error)
}

// ForPath selects a reader by file extension.
func ForPath(path string) (Reader, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return PDFReader{}, nil
	case ".md", ".txt", ".tex", "":
		return TextReader{}, nil
	default:
		return nil, fmt.Errorf("unsupported manuscript format %q", filepath.Ext(path))
	}
}

// Load reads the manuscript at path with the reader its extension selects.
func Load(path string) (string, error) {
	r, err := ForPath(path)
	if err != nil {
		return "", err
	}
	return r.Read(path)
}

// TextReader reads plain text and markup files verbatim.
type TextReader struct{}

// Read implements Reader.
func (TextReader) Read(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading manuscript %s: %w", path, err)
	}
	return string(data), nil
}
