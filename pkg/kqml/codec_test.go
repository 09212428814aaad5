package kqml_test

import (
	"testing"

	"github.com/fdurupinar/bioagents/pkg/domain"
	"github.com/fdurupinar/bioagents/pkg/kqml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Spoken(t *testing.T) {
	p, err := kqml.DefaultCodec.Parse(`(tell :content (spoken :what "hello there"))`)
	require.NoError(t, err)

	assert.Equal(t, "tell", p.Verb())
	content, ok := p.Content()
	require.True(t, ok)
	assert.Equal(t, "spoken", content.Head())

	what, ok := content.GetString("what")
	require.True(t, ok)
	assert.Equal(t, "hello there", what)
}

func TestParse_EscapesAndParensInStrings(t *testing.T) {
	raw := `(tell :content (spoken :what "say \"(a b)\" \\ done\nnext"))`
	p, err := kqml.DefaultCodec.Parse(raw)
	require.NoError(t, err)

	content, _ := p.Content()
	what, _ := content.GetString(":WHAT")
	assert.Equal(t, "say \"(a b)\" \\ done\nnext", what)
}

func TestParse_KeywordsAreCaseInsensitive(t *testing.T) {
	p, err := kqml.DefaultCodec.Parse(`(TELL :CONTENT (Display-Model :Model "[]"))`)
	require.NoError(t, err)

	assert.True(t, p.Is("tell"))
	content, ok := p.Content()
	require.True(t, ok)
	model, ok := content.GetString("model")
	require.True(t, ok)
	assert.Equal(t, "[]", model)
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"Empty", "   "},
		{"Unterminated List", "(tell :content (spoken"},
		{"Unterminated String", `(tell :content (spoken :what "oops))`},
		{"Unbalanced Close", ")"},
		{"Trailing Garbage", "(tell) extra"},
		{"Bare Atom", "tell"},
		{"Empty List", "()"},
		{"List Head", "((a) b)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := kqml.DefaultCodec.Parse(tt.raw)
			require.Error(t, err)
			var parseErr *domain.ParseError
			assert.ErrorAs(t, err, &parseErr)
		})
	}
}

func TestEncode_RoundTripPreservesStructure(t *testing.T) {
	p := kqml.NewPerformative("request").
		With("content", kqml.NewList(kqml.Symbol("display-sbgn")).
			With("graph", kqml.String("<sbgn a=\"1\">\n</sbgn>")))

	data, err := kqml.DefaultCodec.Encode(p)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "\n", "encoded expressions must stay on one line")
	assert.Equal(t, `(request :content (display-sbgn :graph "<sbgn a=\"1\">\n</sbgn>"))`, string(data))

	parsed, err := kqml.DefaultCodec.Parse(string(data))
	require.NoError(t, err)
	content, _ := parsed.Content()
	graph, _ := content.GetString("graph")
	assert.Equal(t, "<sbgn a=\"1\">\n</sbgn>", graph)
}

func TestEncode_RejectsVerbless(t *testing.T) {
	_, err := kqml.DefaultCodec.Encode(kqml.Performative{})
	assert.Error(t, err)
}

func TestWith_DoesNotMutateReceiver(t *testing.T) {
	base := kqml.NewPerformative("tell")
	withContent := base.With("content", kqml.Symbol("x"))
	replaced := withContent.With(":content", kqml.Symbol("y"))

	assert.Equal(t, "(tell)", base.String())
	assert.Equal(t, "(tell :content x)", withContent.String())
	assert.Equal(t, "(tell :content y)", replaced.String())
}

func TestList_Accessors(t *testing.T) {
	l := kqml.NewList(kqml.Symbol("spoken"), kqml.Symbol(":what"))

	assert.Equal(t, 2, l.Len())
	assert.Nil(t, l.At(5))
	_, ok := l.Get("what")
	assert.False(t, ok, "keyword without value must not resolve")

	var nilList *kqml.List
	assert.Equal(t, 0, nilList.Len())
	assert.Equal(t, "", nilList.Head())
}
