package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/fdurupinar/bioagents/pkg/diagram"
	"github.com/fdurupinar/bioagents/pkg/statements"
)

// Translate reads a JSON statement collection from r and writes its
// diagram to w, without touching the message bus.
func Translate(ctx context.Context, r io.Reader, w io.Writer, format string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read statements: %w", err)
	}

	facts, err := statements.Decode(string(data))
	if err != nil {
		return err
	}

	f, err := diagram.ParseFormat(format)
	if err != nil {
		return err
	}
	translator, err := diagram.NewTranslator(f)
	if err != nil {
		return err
	}

	doc, err := translator.Translate(ctx, facts)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, doc)
	return err
}
