/*
Package bioagents hosts bsb, the bridge between a KQML message bus and an
SBGN model viewer.

The bridge registers on the bus as a module, subscribes to spoken and
display-model messages, and answers each display-model message with a
display request carrying an SBGN-ML rendering of the model's statements.

# Architecture

The module follows a ports and adapters layout:

  - pkg/kqml: s-expression performatives and their wire codec.
  - pkg/statements: decoding of JSON statement collections into facts.
  - pkg/diagram: translation of facts into SBGN-ML (or Mermaid) documents.
  - pkg/composer: construction of every outbound performative.
  - pkg/session: the connection lifecycle, framing and dispatch.
  - pkg/adapters: diagram caches (memory, Redis).
  - pkg/observability: Prometheus metrics fed by session hooks.

# Usage

The bsb command connects to the bus and runs until interrupted:

	bsb run --host localhost --port 6200

Embedding the session directly:

	s := session.New(session.Config{Host: "localhost", Port: 6200},
		session.WithLogger(logger),
	)
	if err := s.Connect(ctx); err != nil {
		return err
	}
	return s.Run(ctx)
*/
package bioagents
