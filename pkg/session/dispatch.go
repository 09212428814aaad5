package session

import (
	"context"
	"strings"
	"time"

	"github.com/fdurupinar/bioagents/pkg/composer"
	"github.com/fdurupinar/bioagents/pkg/domain"
	"github.com/fdurupinar/bioagents/pkg/kqml"
)

// DecodeContent maps the :content of a performative to its variant.
// It returns nil when the performative has no list-valued :content.
func DecodeContent(p kqml.Performative) domain.Content {
	content, ok := p.Content()
	if !ok {
		return nil
	}
	head := content.Head()
	switch strings.ToLower(head) {
	case domain.HeadSpoken:
		what, _ := content.GetString("what")
		return domain.Spoken{What: what}
	case domain.HeadDisplayModel:
		model, _ := content.GetString("model")
		return domain.DisplayModel{Model: model}
	}
	return domain.Unknown{Head: head}
}

// Dispatch handles one raw unit. The returned error is informational: it
// has already been logged, and the session keeps running regardless.
func (s *Session) Dispatch(ctx context.Context, raw string) error {
	s.logger.Debug("unit received", "data", raw)
	start := time.Now()
	if s.hooks.OnReceive != nil {
		s.hooks.OnReceive(ctx, &domain.ReceiveEvent{
			Timestamp: start,
			SessionID: s.id,
			Bytes:     len(raw),
		})
	}

	p, err := s.codec.Parse(raw)
	if err != nil {
		s.skip(ctx, domain.SkipParse, err)
		return err
	}

	content := DecodeContent(p)
	if content == nil {
		return nil
	}

	if p.Is("tell") && content.Kind() == domain.KindDisplayModel {
		if parts := fragments(raw); parts > 1 {
			s.logger.Error("!!! display-model message with multiple parts !!!",
				"parts", parts,
				"data", raw,
			)
		}
	}

	s.logger.Info("message received", "verb", p.Verb(), "kind", content.Kind())

	switch c := content.(type) {
	case domain.Spoken:
		err = s.relaySpoken(ctx, c.What)
	case domain.DisplayModel:
		err = s.display(ctx, c.Model)
	case domain.Unknown:
		s.logger.Debug("ignoring content", "head", c.Head)
	}

	if s.hooks.OnDispatch != nil {
		s.hooks.OnDispatch(ctx, &domain.DispatchEvent{
			Timestamp: time.Now(),
			SessionID: s.id,
			Verb:      p.Verb(),
			Kind:      content.Kind(),
			Duration:  time.Since(start),
		})
	}
	return err
}

// relaySpoken forwards an utterance and composes its acknowledgment.
// The acknowledgment is only written when RelaySpoken is set.
func (s *Session) relaySpoken(ctx context.Context, text string) error {
	s.utterances.Add(1)
	if s.speech != nil {
		s.speech(ctx, text)
	}

	ack := composer.SpokenAck(text)
	if !s.cfg.RelaySpoken {
		s.logger.Debug("spoken ack composed, relay disabled", "what", text)
		return nil
	}
	if err := s.send(ctx, "spoken", ack); err != nil {
		s.skip(ctx, domain.SkipSend, err)
		return err
	}
	return nil
}

// display decodes the model, translates it and sends a display request.
func (s *Session) display(ctx context.Context, model string) error {
	facts, err := s.decoder.Decode(model)
	if err != nil {
		s.skip(ctx, domain.SkipDecode, err)
		return err
	}

	doc, err := s.translator.Translate(ctx, facts)
	if err != nil {
		s.skip(ctx, domain.SkipTranslate, err)
		return err
	}

	if err := s.send(ctx, "display", composer.DisplayRequest(doc)); err != nil {
		s.skip(ctx, domain.SkipSend, err)
		return err
	}
	s.logger.Info("display request sent", "facts", len(facts), "bytes", len(doc))
	return nil
}

// fragments counts the non-empty newline-separated parts of raw.
func fragments(raw string) int {
	n := 0
	for _, part := range strings.Split(raw, "\n") {
		if strings.TrimSpace(part) != "" {
			n++
		}
	}
	return n
}
