// Package diagram converts decoded facts into documents the model viewer
// can display.
//
// A Translator is deterministic: the same fact list always produces the
// same document. Documents are opaque to the rest of the bridge; they are
// only embedded in outbound display requests.
package diagram

import (
	"context"
	"fmt"
	"strings"

	"github.com/fdurupinar/bioagents/pkg/domain"
)

// Document is a serialised diagram.
type Document string

// Format names a diagram dialect.
type Format string

const (
	FormatSBGN    Format = "sbgn"
	FormatMermaid Format = "mermaid"
)

// Translator renders a fact list as a Document.
// Facts it cannot render yield a *domain.TranslationError.
type Translator interface {
	Translate(ctx context.Context, facts []domain.Fact) (Document, error)
}

// TranslatorFunc adapts a function to the Translator interface.
type TranslatorFunc func(ctx context.Context, facts []domain.Fact) (Document, error)

// Translate implements Translator.
func (f TranslatorFunc) Translate(ctx context.Context, facts []domain.Fact) (Document, error) {
	return f(ctx, facts)
}

// ParseFormat validates a format name (case-insensitive).
func ParseFormat(name string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(name))) {
	case FormatSBGN, "":
		return FormatSBGN, nil
	case FormatMermaid:
		return FormatMermaid, nil
	}
	return "", fmt.Errorf("unknown diagram format %q", name)
}

// NewTranslator returns the translator for a format.
func NewTranslator(format Format) (Translator, error) {
	switch format {
	case FormatSBGN, "":
		return SBGN{}, nil
	case FormatMermaid:
		return Mermaid{}, nil
	}
	return nil, fmt.Errorf("unknown diagram format %q", format)
}

// validate rejects facts that no translator can render. An empty list
// is valid and renders an empty diagram.
func validate(facts []domain.Fact) error {
	for i, fact := range facts {
		agents := fact.Agents()
		if len(agents) == 0 {
			return &domain.TranslationError{Reason: fmt.Sprintf("fact %d (%s) has no participants", i, fact.Type)}
		}
		for _, agent := range agents {
			if strings.TrimSpace(agent.Name) == "" {
				return &domain.TranslationError{Reason: fmt.Sprintf("fact %d (%s) has an unnamed participant", i, fact.Type)}
			}
		}
	}
	return nil
}

// predicate groups statement types by how they are drawn.
type predicate int

const (
	predicateOther predicate = iota
	predicateModification
	predicateDemodification
	predicatePositive
	predicateNegative
	predicateComplex
	predicateTranslocation
)

// modifications maps a modification statement type to its state value.
var modifications = map[string]string{
	"phosphorylation":      "p",
	"autophosphorylation":  "p",
	"transphosphorylation": "p",
	"ubiquitination":       "ub",
	"acetylation":          "ac",
	"methylation":          "me",
	"hydroxylation":        "oh",
	"sumoylation":          "sumo",
	"glycosylation":        "g",
	"farnesylation":        "farn",
	"palmitoylation":       "palm",
	"myristoylation":       "myr",
	"ribosylation":         "rib",
	"geranylgeranylation":  "gg",
}

func classify(factType string) (predicate, string) {
	t := strings.ToLower(factType)
	if value, ok := modifications[t]; ok {
		return predicateModification, value
	}
	if strings.HasPrefix(t, "de") {
		if value, ok := modifications[strings.TrimPrefix(t, "de")]; ok {
			return predicateDemodification, value
		}
	}
	switch t {
	case "activation", "increaseamount", "gef":
		return predicatePositive, ""
	case "inhibition", "decreaseamount", "gap":
		return predicateNegative, ""
	case "complex":
		return predicateComplex, ""
	case "translocation":
		return predicateTranslocation, ""
	}
	return predicateOther, ""
}

// site renders the residue/position pair of a modification, e.g. T185.
func site(f domain.Fact) string {
	return f.Residue + f.Position
}
