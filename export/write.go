package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// WriteTo renders a document in the format implied by the output
// path's extension: .dot, .gexf, or GraphML for everything else.
func WriteTo(w io.Writer, doc *Document, path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".dot":
		return WriteDOT(w, doc)
	case ".gexf":
		return WriteGEXF(w, doc)
	default:
		return WriteGraphML(w, doc)
	}
}

// WriteFile writes a document to disk atomically: the output lands in
// a temp file first and replaces the target only on success, so a
// failed run never leaves a partial output file.
func WriteFile(path string, doc *Document) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp*")
	if err != nil {
		return fmt.Errorf("export: create temp output: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := WriteTo(tmp, doc, path); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("export: close temp output: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("export: replace %s: %w", path, err)
	}
	return nil
}
