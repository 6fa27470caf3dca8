package gen

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
	"golang.org/x/tools/imports"

	"github.com/syssam/autostruct/names"
)

// DefaultHeader is prepended to every generated file unless overridden.
const DefaultHeader = "// Code generated by autostruct. DO NOT EDIT."

// Writer persists finalized snippets, one file per entity, plus a manifest
// that re-exports every generated identifier for external indexing.
type Writer struct {
	// Dir is the output directory. Created if missing.
	Dir string
	// Package is the package name declared in every file.
	Package string
	// Header lines are prepended verbatim before the package clause.
	// When empty, DefaultHeader is used.
	Header string
	// Format runs goimports-style formatting on each file before
	// writing. Formatting is deterministic, so it preserves the
	// byte-identical output contract.
	Format bool
	// Workers bounds the number of files written in parallel.
	Workers int
}

// Write persists every snippet and the manifest. A write failure aborts the
// remaining writes; files already written are not rolled back.
func (w *Writer) Write(ctx context.Context, snippets []*Snippet) error {
	if w.Dir == "" || w.Package == "" {
		return &ConfigError{Option: "Writer", Message: "output directory and package are required"}
	}
	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return fmt.Errorf("autostruct: create output directory: %w", err)
	}
	workers := w.Workers
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	errg, _ := errgroup.WithContext(ctx)
	errg.SetLimit(workers)
	for _, s := range snippets {
		s := s
		errg.Go(func() error {
			return w.writeSnippet(s)
		})
	}
	errg.Go(func() error {
		return w.writeManifest(snippets)
	})
	return errg.Wait()
}

func (w *Writer) writeSnippet(s *Snippet) error {
	name := names.Snake(s.ID) + ".go"
	return w.writeFile(name, s.Text)
}

// writeManifest emits manifest.go listing the public identifier of every
// generated entity, sorted, so callers can re-export or index them.
func (w *Writer) writeManifest(snippets []*Snippet) error {
	idents := make([]string, 0, len(snippets))
	for _, s := range snippets {
		idents = append(idents, s.Ident)
	}
	sort.Strings(idents)
	var b strings.Builder
	b.WriteString("// Entities lists the public identifier of every generated entity.\n")
	b.WriteString("var Entities = []string{\n")
	for _, ident := range idents {
		fmt.Fprintf(&b, "\t%q,\n", ident)
	}
	b.WriteString("}")
	return w.writeFile("manifest.go", b.String())
}

func (w *Writer) writeFile(name, text string) error {
	header := w.Header
	if header == "" {
		header = DefaultHeader
	}
	src := fmt.Sprintf("%s\n\npackage %s\n\n%s\n", header, w.Package, text)
	path := filepath.Join(w.Dir, name)
	if w.Format {
		formatted, err := imports.Process(path, []byte(src), &imports.Options{
			Comments:  true,
			TabIndent: true,
			TabWidth:  8,
		})
		if err != nil {
			return fmt.Errorf("autostruct: format %s: %w", name, err)
		}
		src = string(formatted)
	}
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		return fmt.Errorf("autostruct: write %s: %w", name, err)
	}
	return nil
}
