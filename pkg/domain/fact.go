package domain

// Agent is a biological entity participating in a Fact.
type Agent struct {
	Name   string            `json:"name" mapstructure:"name"`
	DBRefs map[string]string `json:"db_refs,omitempty" mapstructure:"db_refs"`
}

// Evidence is the provenance attached to a Fact.
type Evidence struct {
	SourceAPI string `json:"source_api,omitempty" mapstructure:"source_api"`
	Text      string `json:"text,omitempty" mapstructure:"text"`
	PMID      string `json:"pmid,omitempty" mapstructure:"pmid"`
}

// Fact is one relational statement: Subject -Type-> Object.
// Complexes use Members instead of Subject/Object. Facts keep source order
// and are never deduplicated.
type Fact struct {
	ID       string     `json:"id,omitempty"`
	Type     string     `json:"type"`
	Subject  *Agent     `json:"subject,omitempty"`
	Object   *Agent     `json:"object,omitempty"`
	Members  []Agent    `json:"members,omitempty"`
	Residue  string     `json:"residue,omitempty"`
	Position string     `json:"position,omitempty"`
	Evidence []Evidence `json:"evidence,omitempty"`

	// FromLocation and ToLocation are set for translocations.
	FromLocation string `json:"from_location,omitempty"`
	ToLocation   string `json:"to_location,omitempty"`
}

// Agents returns every agent referenced by the fact in role order.
func (f Fact) Agents() []Agent {
	var out []Agent
	if f.Subject != nil {
		out = append(out, *f.Subject)
	}
	out = append(out, f.Members...)
	if f.Object != nil {
		out = append(out, *f.Object)
	}
	return out
}
