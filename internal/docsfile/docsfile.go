// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package docsfile reads candidate document lists from disk and writes
// analysis results. A documents file is YAML or JSON; JSON is read through
// the YAML decoder since it is a subset.
package docsfile

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/Shashikant999/AstraNode/pkg/types"
)

// Format selects the result encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// File is the object form of a documents file. A bare list of entries is
// also accepted and yields a File with an empty Query.
type File struct {
	Query     string              `yaml:"query,omitempty"`
	Documents []types.DocumentRef `yaml:"documents"`
}

// entry accepts either link or url for the document address, matching the
// row shapes returned by common paper search tools.
type entry struct {
	Title string `yaml:"title"`
	Link  string `yaml:"link"`
	URL   string `yaml:"url"`
}

func (e entry) ref() types.DocumentRef {
	link := e.Link
	if link == "" {
		link = e.URL
	}
	return types.DocumentRef{Title: e.Title, Link: link}
}

// ReadDocuments loads a documents file. The path "-" reads standard input.
func ReadDocuments(path string) (*File, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading documents file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a documents file from memory.
func Parse(data []byte) (*File, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parsing documents file: %w", err)
	}
	if len(root.Content) == 0 {
		return &File{Documents: []types.DocumentRef{}}, nil
	}

	var (
		query   string
		entries []entry
	)
	switch node := root.Content[0]; node.Kind {
	case yaml.SequenceNode:
		if err := node.Decode(&entries); err != nil {
			return nil, fmt.Errorf("parsing documents list: %w", err)
		}
	case yaml.MappingNode:
		var raw struct {
			Query     string  `yaml:"query"`
			Documents []entry `yaml:"documents"`
		}
		if err := node.Decode(&raw); err != nil {
			return nil, fmt.Errorf("parsing documents file: %w", err)
		}
		query, entries = raw.Query, raw.Documents
	default:
		return nil, fmt.Errorf("parsing documents file: expected a list or an object with documents")
	}

	f := &File{Query: strings.TrimSpace(query), Documents: make([]types.DocumentRef, 0, len(entries))}
	for _, e := range entries {
		f.Documents = append(f.Documents, e.ref())
	}
	return f, nil
}

// ParseFormat validates a format name. The empty string selects JSON.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want json or yaml)", s)
	}
}

// Write encodes v to w in the given format.
func Write(w io.Writer, v any, format Format) error {
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	case FormatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encoding json: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// WriteResult encodes an analysis result.
func WriteResult(w io.Writer, result types.AnalysisResult, format Format) error {
	return Write(w, result, format)
}
