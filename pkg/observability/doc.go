/*
Package observability provides lifecycle hooks for monitoring MetaChem runs.

Metrics exposes Prometheus counters and histograms fed by the engine hooks.
LoggingHooks writes node and run events to a slog.Logger, and Combine merges
several hook sets so both can be attached to one engine.
*/
package observability
