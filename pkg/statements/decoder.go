// Package statements decodes the JSON statement collections carried by
// display-model messages into domain facts.
//
// Decoding happens in two steps: the payload is unmarshalled into generic
// maps, then each map is decoded with mapstructure into a raw statement
// whose role fields (enz/sub, subj/obj, members, agent...) are normalised
// into a domain.Fact.
package statements

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fdurupinar/bioagents/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

// Decoder turns an encoded statement collection into facts.
type Decoder interface {
	Decode(encoded string) ([]domain.Fact, error)
}

// JSONDecoder decodes INDRA-style statement JSON.
type JSONDecoder struct{}

// Default is the decoder used when none is injected.
var Default Decoder = JSONDecoder{}

// Decode is a shorthand for Default.Decode.
func Decode(encoded string) ([]domain.Fact, error) {
	return Default.Decode(encoded)
}

type rawAgent struct {
	Name   string         `mapstructure:"name"`
	DBRefs map[string]any `mapstructure:"db_refs"`
}

type rawStatement struct {
	Type     string            `mapstructure:"type"`
	ID       string            `mapstructure:"id"`
	Enz      *rawAgent         `mapstructure:"enz"`
	Sub      *rawAgent         `mapstructure:"sub"`
	Subj     *rawAgent         `mapstructure:"subj"`
	Obj      *rawAgent         `mapstructure:"obj"`
	Agent    *rawAgent         `mapstructure:"agent"`
	Gef      *rawAgent         `mapstructure:"gef"`
	Gap      *rawAgent         `mapstructure:"gap"`
	Ras      *rawAgent         `mapstructure:"ras"`
	Members  []rawAgent        `mapstructure:"members"`
	Residue  string            `mapstructure:"residue"`
	Position string            `mapstructure:"position"`
	Evidence []domain.Evidence `mapstructure:"evidence"`
	FromLoc  string            `mapstructure:"from_location"`
	ToLoc    string            `mapstructure:"to_location"`
}

// Decode implements Decoder. It is pure: the same input always yields an
// equal fact list. Any malformed input yields a *domain.DecodeError.
func (JSONDecoder) Decode(encoded string) ([]domain.Fact, error) {
	if strings.TrimSpace(encoded) == "" {
		return nil, &domain.DecodeError{Index: -1, Reason: "empty statement collection"}
	}

	var generic any
	if err := json.Unmarshal([]byte(encoded), &generic); err != nil {
		return nil, &domain.DecodeError{Index: -1, Reason: "invalid JSON", Err: err}
	}

	var entries []any
	switch v := generic.(type) {
	case []any:
		entries = v
	case map[string]any:
		entries = []any{v}
	default:
		return nil, &domain.DecodeError{Index: -1, Reason: fmt.Sprintf("expected array or object, got %T", generic)}
	}

	facts := make([]domain.Fact, 0, len(entries))
	for i, entry := range entries {
		m, ok := entry.(map[string]any)
		if !ok {
			return nil, &domain.DecodeError{Index: i, Reason: fmt.Sprintf("expected object, got %T", entry)}
		}
		fact, err := decodeStatement(m)
		if err != nil {
			return nil, &domain.DecodeError{Index: i, Reason: "invalid statement", Err: err}
		}
		facts = append(facts, fact)
	}
	return facts, nil
}

func decodeStatement(m map[string]any) (domain.Fact, error) {
	var raw rawStatement
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &raw,
		TagName:          "mapstructure",
	})
	if err != nil {
		return domain.Fact{}, err
	}
	if err := decoder.Decode(m); err != nil {
		return domain.Fact{}, err
	}
	if raw.Type == "" {
		return domain.Fact{}, fmt.Errorf("missing statement type")
	}

	fact := domain.Fact{
		ID:       raw.ID,
		Type:     raw.Type,
		Residue:  raw.Residue,
		Position: raw.Position,
		Evidence: raw.Evidence,

		FromLocation: raw.FromLoc,
		ToLocation:   raw.ToLoc,
	}

	// Role normalisation: the first populated role of each pair wins.
	fact.Subject = firstAgent(raw.Enz, raw.Subj, raw.Gef, raw.Gap, raw.Agent)
	fact.Object = firstAgent(raw.Sub, raw.Obj, raw.Ras)
	for _, member := range raw.Members {
		fact.Members = append(fact.Members, member.toDomain())
	}
	return fact, nil
}

func firstAgent(candidates ...*rawAgent) *domain.Agent {
	for _, c := range candidates {
		if c != nil {
			agent := c.toDomain()
			return &agent
		}
	}
	return nil
}

func (a rawAgent) toDomain() domain.Agent {
	agent := domain.Agent{Name: a.Name}
	if len(a.DBRefs) > 0 {
		agent.DBRefs = make(map[string]string, len(a.DBRefs))
		for k, v := range a.DBRefs {
			agent.DBRefs[k] = stringify(v)
		}
	}
	return agent
}

func stringify(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case nil:
		return ""
	default:
		data, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(data)
	}
}
