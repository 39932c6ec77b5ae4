/*
Package metrics exposes the operator's own Prometheus metrics.

Collectors cover the three things worth alerting on: reconciliation passes
(count, duration, outcome), workload restarts (including how many retries
each one burned), and the negotiated state (active receivers, legacy
clients, outstanding consistency violations). All collectors are package
level and registered at init; Handler() serves them for scraping.

The Timer helper wraps the start-observe pattern used around every
reconciliation pass.
*/
package metrics
