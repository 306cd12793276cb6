package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/screenforge/pkg/buildinfo"
	"github.com/matzehuels/screenforge/pkg/doc"
)

// Format and Version identify the envelope.
const (
	Format  = "screenforge/document"
	Version = 1
)

type envelope struct {
	Format    string        `json:"format"`
	Version   int           `json:"version"`
	Generator string        `json:"generator,omitempty"`
	Document  *doc.Document `json:"document"`
}

// WriteJSON encodes d as an indented JSON envelope and writes it to w.
func WriteJSON(d *doc.Document, w io.Writer) error {
	out := envelope{
		Format:    Format,
		Version:   Version,
		Generator: buildinfo.Generator(),
		Document:  d,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes d to a JSON file at path.
func ExportJSON(d *doc.Document, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteJSON(d, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
