package diagram

import (
	"context"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/fdurupinar/bioagents/pkg/domain"
)

const (
	sbgnNamespace = "http://sbgn.org/libsbgn/0.2"
	xmlHeader     = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`
)

// SBGN renders facts as an SBGN-ML process description map.
// Glyphs carry a fixed bounding box; layout is left to the viewer.
type SBGN struct{}

type sbgnDocument struct {
	XMLName xml.Name `xml:"sbgn"`
	Xmlns   string   `xml:"xmlns,attr"`
	Map     sbgnMap  `xml:"map"`
}

type sbgnMap struct {
	Language string      `xml:"language,attr"`
	Glyphs   []sbgnGlyph `xml:"glyph"`
	Arcs     []sbgnArc   `xml:"arc"`
}

type sbgnGlyph struct {
	Class  string      `xml:"class,attr"`
	ID     string      `xml:"id,attr"`
	Label  *sbgnLabel  `xml:"label,omitempty"`
	State  *sbgnState  `xml:"state,omitempty"`
	BBox   sbgnBBox    `xml:"bbox"`
	Glyphs []sbgnGlyph `xml:"glyph,omitempty"`
}

type sbgnLabel struct {
	Text string `xml:"text,attr"`
}

type sbgnState struct {
	Value    string `xml:"value,attr"`
	Variable string `xml:"variable,attr,omitempty"`
}

type sbgnBBox struct {
	X float64 `xml:"x,attr"`
	Y float64 `xml:"y,attr"`
	W float64 `xml:"w,attr"`
	H float64 `xml:"h,attr"`
}

type sbgnArc struct {
	Class  string    `xml:"class,attr"`
	ID     string    `xml:"id,attr"`
	Source string    `xml:"source,attr"`
	Target string    `xml:"target,attr"`
	Start  sbgnPoint `xml:"start"`
	End    sbgnPoint `xml:"end"`
}

type sbgnPoint struct {
	X float64 `xml:"x,attr"`
	Y float64 `xml:"y,attr"`
}

// sbgnBuilder accumulates glyphs and arcs with sequential ids.
type sbgnBuilder struct {
	doc     sbgnDocument
	byKey   map[string]string
	glyphs  int
	arcs    int
	process int
}

// Translate implements Translator.
func (SBGN) Translate(ctx context.Context, facts []domain.Fact) (Document, error) {
	if err := validate(facts); err != nil {
		return "", err
	}

	b := &sbgnBuilder{
		doc: sbgnDocument{
			Xmlns: sbgnNamespace,
			Map:   sbgnMap{Language: "process description"},
		},
		byKey: make(map[string]string),
	}
	for _, fact := range facts {
		if err := ctx.Err(); err != nil {
			return "", &domain.TranslationError{Reason: "cancelled", Err: err}
		}
		b.addFact(fact)
	}

	data, err := xml.Marshal(b.doc)
	if err != nil {
		return "", &domain.TranslationError{Reason: "marshal SBGN-ML", Err: err}
	}
	return Document(xmlHeader + string(data)), nil
}

func (b *sbgnBuilder) addFact(f domain.Fact) {
	kind, state := classify(f.Type)
	process := b.addProcess()

	switch kind {
	case predicateModification, predicateDemodification:
		substrate, enzyme := f.Object, f.Subject
		if substrate == nil {
			// Self-modification: the enzyme modifies itself.
			substrate = f.Subject
		}
		if substrate == nil {
			b.generic(f, process)
			return
		}
		plain := b.macromolecule(*substrate, nil)
		modified := b.macromolecule(*substrate, &sbgnState{Value: state, Variable: site(f)})
		in, out := plain, modified
		if kind == predicateDemodification {
			in, out = modified, plain
		}
		b.arc("consumption", in, process)
		b.arc("production", process, out)
		if enzyme != nil && f.Object != nil {
			b.arc("catalysis", b.macromolecule(*enzyme, nil), process)
		}

	case predicatePositive, predicateNegative:
		modulation := "stimulation"
		if kind == predicateNegative {
			modulation = "inhibition"
		}
		if f.Subject != nil {
			b.arc(modulation, b.macromolecule(*f.Subject, nil), process)
		}
		if f.Object != nil {
			b.arc("consumption", b.macromolecule(*f.Object, nil), process)
			b.arc("production", process, b.macromolecule(*f.Object, &sbgnState{Value: "active"}))
		}

	case predicateTranslocation:
		if f.Subject == nil {
			b.generic(f, process)
			return
		}
		var from *sbgnState
		if f.FromLocation != "" {
			from = &sbgnState{Value: f.FromLocation, Variable: "location"}
		}
		to := &sbgnState{Value: f.ToLocation, Variable: "location"}
		b.arc("consumption", b.macromolecule(*f.Subject, from), process)
		b.arc("production", process, b.macromolecule(*f.Subject, to))

	case predicateComplex:
		for _, member := range f.Members {
			b.arc("consumption", b.macromolecule(member, nil), process)
		}
		b.arc("production", process, b.complex(f.Members))

	default:
		b.generic(f, process)
	}
}

// generic draws subject and members as inputs and the object as output.
func (b *sbgnBuilder) generic(f domain.Fact, process string) {
	if f.Subject != nil {
		b.arc("consumption", b.macromolecule(*f.Subject, nil), process)
	}
	for _, member := range f.Members {
		b.arc("consumption", b.macromolecule(member, nil), process)
	}
	if f.Object != nil {
		b.arc("production", process, b.macromolecule(*f.Object, nil))
	}
}

func (b *sbgnBuilder) nextGlyphID() string {
	b.glyphs++
	return fmt.Sprintf("glyph%d", b.glyphs)
}

func (b *sbgnBuilder) addProcess() string {
	b.process++
	id := fmt.Sprintf("process%d", b.process)
	b.doc.Map.Glyphs = append(b.doc.Map.Glyphs, sbgnGlyph{
		Class: "process",
		ID:    id,
		BBox:  sbgnBBox{W: 20, H: 20},
	})
	return id
}

// macromolecule returns the glyph id for an agent in a given state,
// creating the glyph on first use.
func (b *sbgnBuilder) macromolecule(agent domain.Agent, state *sbgnState) string {
	key := "m|" + agent.Name
	if state != nil {
		key += "|" + state.Value + "@" + state.Variable
	}
	if id, ok := b.byKey[key]; ok {
		return id
	}
	id := b.nextGlyphID()
	glyph := sbgnGlyph{
		Class: "macromolecule",
		ID:    id,
		Label: &sbgnLabel{Text: agent.Name},
		BBox:  sbgnBBox{W: 60, H: 30},
	}
	if state != nil {
		glyph.Glyphs = []sbgnGlyph{{
			Class: "state variable",
			ID:    id + "_sv",
			State: state,
			BBox:  sbgnBBox{W: 15, H: 15},
		}}
	}
	b.doc.Map.Glyphs = append(b.doc.Map.Glyphs, glyph)
	b.byKey[key] = id
	return id
}

func (b *sbgnBuilder) complex(members []domain.Agent) string {
	names := make([]string, len(members))
	for i, m := range members {
		names[i] = m.Name
	}
	key := "c|" + strings.Join(names, ":")
	if id, ok := b.byKey[key]; ok {
		return id
	}
	id := b.nextGlyphID()
	glyph := sbgnGlyph{
		Class: "complex",
		ID:    id,
		BBox:  sbgnBBox{W: 80, H: float64(30 * (len(members) + 1))},
	}
	for i, m := range members {
		glyph.Glyphs = append(glyph.Glyphs, sbgnGlyph{
			Class: "macromolecule",
			ID:    fmt.Sprintf("%s_%d", id, i+1),
			Label: &sbgnLabel{Text: m.Name},
			BBox:  sbgnBBox{W: 60, H: 30},
		})
	}
	b.doc.Map.Glyphs = append(b.doc.Map.Glyphs, glyph)
	b.byKey[key] = id
	return id
}

func (b *sbgnBuilder) arc(class, source, target string) {
	b.arcs++
	b.doc.Map.Arcs = append(b.doc.Map.Arcs, sbgnArc{
		Class:  class,
		ID:     fmt.Sprintf("arc%d", b.arcs),
		Source: source,
		Target: target,
	})
}
