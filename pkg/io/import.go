package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/screenforge/pkg/doc"
	"github.com/matzehuels/screenforge/pkg/errors"
)

// ReadJSON decodes a document envelope from r.
//
// ReadJSON returns an INVALID_FORMAT error if the JSON is malformed, the
// envelope names another format or a newer version, or any node carries
// invalid geometry. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*doc.Document, error) {
	var in envelope
	if err := json.NewDecoder(r).Decode(&in); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode document")
	}
	if in.Format != Format {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unexpected format %q", in.Format)
	}
	if in.Version < 1 || in.Version > Version {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported version %d", in.Version)
	}
	if in.Document == nil {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "missing document")
	}
	for _, p := range in.Document.Pages {
		if p == nil {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "null page")
		}
		for _, n := range p.Nodes {
			if n == nil {
				return nil, errors.New(errors.ErrCodeInvalidFormat, "page %q: null node", p.Name)
			}
			if err := doc.Validate(n); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "page %q", p.Name)
			}
		}
	}
	return in.Document, nil
}

// ImportJSON reads a JSON file at path and returns the decoded document.
func ImportJSON(path string) (*doc.Document, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
