package diagram

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/fdurupinar/bioagents/pkg/domain"
)

// Mermaid renders facts as a Mermaid flowchart (graph LR).
// It applies semantic styling:
// - Entity: [Rectangle]
// - Complex: {{Hexagon}}
// - Activation-like: -->, Inhibition-like: --x, Complex membership: -.-
type Mermaid struct{}

// Translate implements Translator.
func (Mermaid) Translate(ctx context.Context, facts []domain.Fact) (Document, error) {
	if err := validate(facts); err != nil {
		return "", err
	}

	var nodes, edges strings.Builder
	declared := make(map[string]bool)
	ids := newMermaidIDs()

	declare := func(id, label, opener, closer string) {
		if declared[id] {
			return
		}
		declared[id] = true
		safeLabel := strings.ReplaceAll(label, "\"", "'")
		nodes.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", id, opener, safeLabel, closer))
	}
	entity := func(a domain.Agent) string {
		id := ids.assign("entity\x00"+a.Name, a.Name)
		declare(id, a.Name, "[", "]")
		return id
	}

	for _, f := range facts {
		if err := ctx.Err(); err != nil {
			return "", &domain.TranslationError{Reason: "cancelled", Err: err}
		}

		kind, state := classify(f.Type)
		label := f.Type
		if kind == predicateModification || kind == predicateDemodification {
			if s := site(f); s != "" {
				label = fmt.Sprintf("%s %s", f.Type, s)
			} else if state != "" {
				label = fmt.Sprintf("%s (%s)", f.Type, state)
			}
		}
		if kind == predicateTranslocation {
			if f.FromLocation != "" {
				label += " from " + f.FromLocation
			}
			if f.ToLocation != "" {
				label += " to " + f.ToLocation
			}
		}
		safeLabel := strings.ReplaceAll(label, "\"", "'")

		arrow := fmt.Sprintf("-- \"%s\" -->", safeLabel)
		if kind == predicateNegative {
			arrow = fmt.Sprintf("-- \"%s\" --x", safeLabel)
		}

		switch {
		case kind == predicateComplex:
			names := make([]string, len(f.Members))
			for i, m := range f.Members {
				names[i] = m.Name
			}
			complexID := ids.assign("complex\x00"+strings.Join(names, "\x00"), "cplx_"+strings.Join(names, "_"))
			declare(complexID, strings.Join(names, ":"), "{{", "}}")
			for _, m := range f.Members {
				edges.WriteString(fmt.Sprintf("    %s -.- %s\n", entity(m), complexID))
			}
		case f.Subject != nil && f.Object != nil:
			edges.WriteString(fmt.Sprintf("    %s %s %s\n", entity(*f.Subject), arrow, entity(*f.Object)))
		default:
			// Single-participant facts are drawn as self loops.
			for _, a := range f.Agents() {
				id := entity(a)
				edges.WriteString(fmt.Sprintf("    %s %s %s\n", id, arrow, id))
			}
		}
	}

	var sb strings.Builder
	sb.WriteString("graph LR\n")
	sb.WriteString(nodes.String())
	sb.WriteString(edges.String())
	return Document(sb.String()), nil
}

// mermaidIDs hands out node ids that are unique within one diagram.
type mermaidIDs struct {
	byKey map[string]string
	taken map[string]bool
}

func newMermaidIDs() *mermaidIDs {
	return &mermaidIDs{byKey: make(map[string]string), taken: make(map[string]bool)}
}

// assign returns the id for key, deriving it from base on first use.
// A derived id already held by another key gets a short hash suffix.
func (m *mermaidIDs) assign(key, base string) string {
	if id, ok := m.byKey[key]; ok {
		return id
	}
	id := sanitizeMermaidID(base)
	if m.taken[id] {
		sum := sha256.Sum256([]byte(key))
		id += "_" + hex.EncodeToString(sum[:3])
	}
	m.byKey[key] = id
	m.taken[id] = true
	return id
}

// sanitizeMermaidID replaces every rune outside [A-Za-z0-9_] with '_'.
func sanitizeMermaidID(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			return r
		}
		return '_'
	}, name)
}
