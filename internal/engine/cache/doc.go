// Package cache provides an in-memory snapshot cache with TTL expiration for fetched
// user lists.
//
// The browser fetches the directory once and derives every view from that snapshot.
// This package keeps the snapshot for a bounded time so repeated loads within a
// browser session (pressing r to refresh) do not hit the network again; R bypasses it.
// Key features:
//   - Process-lifetime storage only; nothing is written to disk
//   - Configurable TTL (default 5 minutes) via config file, environment variable, or CLI flag
//   - Bounded entry count with least-recently-used eviction
//   - SHA256-based cache keys derived from the source URL
package cache
