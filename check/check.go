// Package check evaluates query documents: YAML files that declare a
// premise and a list of equality queries, each with an optional
// expected verdict.
package check

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gnoverse/teq"
	"github.com/gnoverse/teq/syntax"
	"gopkg.in/yaml.v3"
)

// FactSpec is one equality fact, both sides written in term syntax.
type FactSpec struct {
	Left  string `yaml:"left"`
	Right string `yaml:"right"`
}

// AliasSpec defines one normalization: the symbol expands to the
// equivalence term with the parameters replaced by the call arguments.
type AliasSpec struct {
	Symbol      string   `yaml:"symbol"`
	Params      []string `yaml:"params,omitempty"`
	Equivalence string   `yaml:"equivalence"`
}

// QuerySpec is one equality question. Want, when present, is the
// verdict the document expects.
type QuerySpec struct {
	Left  string `yaml:"left"`
	Right string `yaml:"right"`
	Want  *bool  `yaml:"want,omitempty"`
}

// PremiseSpec declares the facts and aliases shared by every query in
// a document.
type PremiseSpec struct {
	Facts   []FactSpec  `yaml:"facts,omitempty"`
	Aliases []AliasSpec `yaml:"aliases,omitempty"`
}

// Document is the file format understood by the checker.
type Document struct {
	Name    string      `yaml:"name"`
	Premise PremiseSpec `yaml:"premise,omitempty"`
	Queries []QuerySpec `yaml:"queries"`
}

// LoadDocument reads and decodes one document file. A document
// without a name is named after its file.
func LoadDocument(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening %s: %w", path, err)
	}
	defer f.Close()

	var doc Document
	if err := yaml.NewDecoder(f).Decode(&doc); err != nil {
		return nil, fmt.Errorf("error decoding %s: %w", path, err)
	}

	if doc.Name == "" {
		doc.Name = strings.TrimSuffix(filepath.Base(path), DocExtension)
	}
	return &doc, nil
}

// BuildPremise parses the fact and alias declarations into a premise.
// A symbol with two alias declarations is an error rather than a
// silent first-wins.
func BuildPremise(spec PremiseSpec) (*teq.Premise, error) {
	p := teq.NewPremise()

	for i, fact := range spec.Facts {
		left, err := syntax.Parse(fact.Left)
		if err != nil {
			return nil, fmt.Errorf("fact %d: left term: %w", i, err)
		}
		right, err := syntax.Parse(fact.Right)
		if err != nil {
			return nil, fmt.Errorf("fact %d: right term: %w", i, err)
		}
		p.Insert(left, right)
	}

	for _, alias := range spec.Aliases {
		equivalence, err := syntax.Parse(alias.Equivalence)
		if err != nil {
			return nil, fmt.Errorf("alias %s: equivalence term: %w", alias.Symbol, err)
		}
		params := make([]teq.Atom, len(alias.Params))
		for i, param := range alias.Params {
			params[i] = teq.Atom(param)
		}
		if !p.InsertNormalization(teq.Atom(alias.Symbol), params, equivalence) {
			return nil, fmt.Errorf("alias %s: defined twice", alias.Symbol)
		}
	}

	return p, nil
}

// Query is one parsed equality question.
type Query struct {
	Left  teq.Term
	Right teq.Term
	Want  *bool
}

// BuildQueries parses query declarations into term pairs.
func BuildQueries(specs []QuerySpec) ([]Query, error) {
	queries := make([]Query, len(specs))
	for i, spec := range specs {
		left, err := syntax.Parse(spec.Left)
		if err != nil {
			return nil, fmt.Errorf("query %d: left term: %w", i, err)
		}
		right, err := syntax.Parse(spec.Right)
		if err != nil {
			return nil, fmt.Errorf("query %d: right term: %w", i, err)
		}
		queries[i] = Query{Left: left, Right: right, Want: spec.Want}
	}
	return queries, nil
}
