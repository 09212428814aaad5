/*
Package ports defines the driven ports (interfaces) of the bridge.

These interfaces decouple the session core from external implementations,
allowing the bridge to run against a real TCP bus, an in-process pipe in
tests, and different diagram cache backends.

# Key Interfaces

  - Dialer: Opens the stream connection to the message bus.
  - DiagramCache: Stores translated diagram documents by content key.
*/
package ports
