package lexdfa

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"sigs.k8s.io/yaml"

	"github.com/coregx/lexdfa/dfa/flat"
	"github.com/coregx/lexdfa/table"
)

// Manifest is the YAML description of a lexer:
//
//	name: c-comments
//	variant: ranged-mask      # optional; detected when omitted
//	match: eager              # eager | longest
//	rules: [comment, slash]   # names indexed by accept id
//	skip: [whitespace]        # rule names dropped by the scanner
//	table: [-1, 0, 1, ...]    # or tableText: "<C-array text>"
type Manifest struct {
	Name      string         `json:"name,omitempty"`
	Variant   string         `json:"variant,omitempty"`
	Match     flat.MatchKind `json:"match,omitempty"`
	Rules     []string       `json:"rules,omitempty"`
	Skip      []string       `json:"skip,omitempty"`
	Table     []int32        `json:"table,omitempty"`
	TableText string         `json:"tableText,omitempty"`
}

// ParseManifest builds a lexer from a YAML manifest.
func ParseManifest(data []byte) (*Lexer, error) {
	var m Manifest
	if err := yaml.UnmarshalStrict(data, &m); err != nil {
		return nil, fmt.Errorf("lexdfa: manifest: %w", err)
	}
	return m.Lexer()
}

// LoadManifest reads a YAML manifest from r and builds a lexer from it.
func LoadManifest(r io.Reader) (*Lexer, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("lexdfa: manifest: %w", err)
	}
	return ParseManifest(data)
}

// Lexer builds the lexer the manifest describes.
func (m *Manifest) Lexer() (*Lexer, error) {
	cells := m.Table
	switch {
	case len(cells) > 0 && m.TableText != "":
		return nil, errors.New("lexdfa: manifest: both table and tableText set")
	case m.TableText != "":
		var err error
		if cells, err = table.ParseText(strings.NewReader(m.TableText)); err != nil {
			return nil, fmt.Errorf("lexdfa: manifest %q: %w", m.Name, err)
		}
	case len(cells) == 0:
		return nil, fmt.Errorf("lexdfa: manifest %q: no table", m.Name)
	}

	var (
		v   table.Variant
		err error
	)
	if m.Variant == "" {
		v, err = table.Detect(cells)
	} else {
		v, err = table.ParseVariant(m.Variant)
	}
	if err != nil {
		return nil, fmt.Errorf("lexdfa: manifest %q: %w", m.Name, err)
	}

	t, err := table.New(v, cells)
	if err != nil {
		return nil, fmt.Errorf("lexdfa: manifest %q: %w", m.Name, err)
	}
	l, err := New(t, Options{Name: m.Name, Rules: m.Rules, Skip: m.Skip, Match: m.Match})
	if err != nil {
		return nil, fmt.Errorf("lexdfa: manifest %q: %w", m.Name, err)
	}
	return l, nil
}

// Manifest describes l. The table is stored in cells form with its variant.
func (l *Lexer) Manifest() Manifest {
	m := Manifest{
		Name:    l.name,
		Variant: l.Table().Variant().String(),
		Match:   l.dfa.MatchKind(),
		Rules:   l.Rules(),
		Table:   l.Table().Cells(),
	}
	for _, id := range l.skip {
		m.Skip = append(m.Skip, l.RuleName(id))
	}
	return m
}

// MarshalManifest returns the YAML manifest of l.
func (l *Lexer) MarshalManifest() ([]byte, error) {
	m := l.Manifest()
	return yaml.Marshal(&m)
}
