/*
Package domain contains the core models shared by the bridge components.

It defines what travels through the bridge (the decoded Content of a
performative, the Facts carried by a display-model message), the Session
lifecycle states, the typed errors each stage can produce, and the
lifecycle hooks used for observability. This package is kept pure and free
of I/O so it can be imported from every layer.

# Key Entities

  - Content: Closed set of content variants (Spoken, DisplayModel, Unknown).
  - Fact: One decoded relational statement (subject, predicate, object).
  - SessionState: Connecting, Handshaking, Listening or Terminated.
  - LifecycleHooks: Callbacks fired on state changes, dispatches, skips and sends.
*/
package domain
