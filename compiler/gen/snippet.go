package gen

import (
	"fmt"
	"sort"
	"strings"
)

// A Snippet is one self-contained unit of generated source text for a single
// entity. The generator populates the body and the import and dependency
// sets; Finalize renders them into the final text.
type Snippet struct {
	// ID identifies the snippet; callers derive output file names from it.
	ID string
	// Ident is the public identifier the body declares, exposed so an
	// external indexer can reference the entity exactly.
	Ident string
	// Body is the declaration text, without imports.
	Body string
	// Text is the finalized source text. Set by Finalize.
	Text string

	imports map[string]struct{}
	deps    map[string]struct{}
}

func newSnippet(ident string) *Snippet {
	return &Snippet{
		ID:      ident,
		Ident:   ident,
		imports: make(map[string]struct{}),
		deps:    make(map[string]struct{}),
	}
}

// AddImport records an import path required by the body. Duplicates collapse.
func (s *Snippet) AddImport(path string) {
	s.imports[path] = struct{}{}
}

// AddDependency records another generated entity the body references.
func (s *Snippet) AddDependency(ident string) {
	s.deps[ident] = struct{}{}
}

// Imports returns the recorded import paths, lexicographically sorted.
func (s *Snippet) Imports() []string {
	return sortedKeys(s.imports)
}

// Dependencies returns the recorded entity references, lexicographically
// sorted.
func (s *Snippet) Dependencies() []string {
	return sortedKeys(s.deps)
}

// Finalize renders the final text: the sorted import block, a blank
// separator when imports or dependencies exist, the sorted dependency
// references, and the body unmodified. The rendering depends only on the
// recorded sets, never on insertion order, so repeated passes produce
// byte-identical text.
func (s *Snippet) Finalize() {
	var (
		b       strings.Builder
		imports = s.Imports()
		deps    = s.Dependencies()
	)
	if len(imports) > 0 {
		b.WriteString("import (\n")
		for _, path := range imports {
			fmt.Fprintf(&b, "\t%q\n", path)
		}
		b.WriteString(")\n")
	}
	if len(imports) > 0 || len(deps) > 0 {
		b.WriteString("\n")
	}
	for _, dep := range deps {
		fmt.Fprintf(&b, "// Requires sibling declaration: %s\n", dep)
	}
	b.WriteString(s.Body)
	s.Text = b.String()
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
