/*
Package observability exposes the bridge's session events as Prometheus metrics.

Metrics are registered on a caller-supplied registry and fed through
domain.LifecycleHooks, so the session never depends on this package.
*/
package observability
