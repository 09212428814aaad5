package statements_test

import (
	"testing"

	"github.com/fdurupinar/bioagents/pkg/domain"
	"github.com/fdurupinar/bioagents/pkg/statements"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const phosphorylation = `[
  {"type": "Phosphorylation", "id": "s1",
   "enz": {"name": "MAP2K1", "db_refs": {"HGNC": "6840", "UP": "Q02750"}},
   "sub": {"name": "MAPK1", "db_refs": {"HGNC": "6871"}},
   "residue": "T", "position": 185,
   "evidence": [{"source_api": "trips", "text": "MEK phosphorylates ERK", "pmid": null}]},
  {"type": "Complex", "id": "s2",
   "members": [{"name": "BRAF"}, {"name": "KRAS"}]},
  {"type": "Activation", "id": "s3",
   "subj": {"name": "BRAF"}, "obj": {"name": "MAP2K1"}, "obj_activity": "kinase"}
]`

func TestDecode_Roles(t *testing.T) {
	facts, err := statements.Decode(phosphorylation)
	require.NoError(t, err)
	require.Len(t, facts, 3)

	phos := facts[0]
	assert.Equal(t, "Phosphorylation", phos.Type)
	assert.Equal(t, "s1", phos.ID)
	require.NotNil(t, phos.Subject)
	require.NotNil(t, phos.Object)
	assert.Equal(t, "MAP2K1", phos.Subject.Name)
	assert.Equal(t, "Q02750", phos.Subject.DBRefs["UP"])
	assert.Equal(t, "MAPK1", phos.Object.Name)
	assert.Equal(t, "T", phos.Residue)
	assert.Equal(t, "185", phos.Position)
	require.Len(t, phos.Evidence, 1)
	assert.Equal(t, "trips", phos.Evidence[0].SourceAPI)

	cplx := facts[1]
	assert.Nil(t, cplx.Subject)
	assert.Equal(t, []domain.Agent{{Name: "BRAF"}, {Name: "KRAS"}}, cplx.Members)

	activation := facts[2]
	assert.Equal(t, "BRAF", activation.Subject.Name)
	assert.Equal(t, "MAP2K1", activation.Object.Name)
}

func TestDecode_SingleObject(t *testing.T) {
	facts, err := statements.Decode(`{"type": "Translocation", "agent": {"name": "NFKB1"},
		"from_location": "cytoplasm", "to_location": "nucleus"}`)
	require.NoError(t, err)
	require.Len(t, facts, 1)
	assert.Equal(t, "NFKB1", facts[0].Subject.Name)
	assert.Equal(t, "cytoplasm", facts[0].FromLocation)
	assert.Equal(t, "nucleus", facts[0].ToLocation)
}

func TestDecode_KeepsDuplicatesAndOrder(t *testing.T) {
	payload := `[{"type":"Activation","subj":{"name":"A"},"obj":{"name":"B"}},
	             {"type":"Activation","subj":{"name":"A"},"obj":{"name":"B"}}]`
	facts, err := statements.Decode(payload)
	require.NoError(t, err)
	assert.Len(t, facts, 2)
	assert.Equal(t, facts[0], facts[1])
}

func TestDecode_Idempotent(t *testing.T) {
	first, err := statements.Decode(phosphorylation)
	require.NoError(t, err)
	second, err := statements.Decode(phosphorylation)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name      string
		payload   string
		wantIndex int
	}{
		{"Empty", "  ", -1},
		{"Invalid JSON", `[{"type": "Activation"`, -1},
		{"Scalar", `42`, -1},
		{"Non Object Entry", `[{"type": "Complex"}, "oops"]`, 1},
		{"Missing Type", `[{"subj": {"name": "A"}}]`, 0},
		{"Wrong Role Shape", `[{"type": "Activation", "subj": "A"}]`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := statements.Decode(tt.payload)
			require.Error(t, err)
			var decodeErr *domain.DecodeError
			require.ErrorAs(t, err, &decodeErr)
			assert.Equal(t, tt.wantIndex, decodeErr.Index)
		})
	}
}
