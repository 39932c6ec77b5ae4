/*
Package reconciler converges the Tempo workload onto its generated
configuration.

The Controller is the single place side effects happen. One reconciliation
pass flows strictly in order: consistency check (violations hold the
workload down), receiver negotiation, config generation, then a diff of the
generated bytes against what is actually on disk. A pass is a no-op only
when the on-disk bytes match and the store records a restart onto those
exact bytes; matching bytes without a record mean the push landed but the
restart never did, and the pass restarts. The record is durable, so this
holds across operator restarts, not just within one process.

Restarts retry with exponential backoff (3s, 9s, 27s, capped at 40s) up to
20 attempts. The usual transient cause is a receiver port still held by the
outgoing process. Exhausting the ceiling is fatal and propagates; anything
short of that is an expected condition expressed in the Result value:

	Unchanged   nothing to do
	Deferred    workload unreachable, retry on the next trigger
	Restarted   config pushed, process restarted, readiness probe armed
	Blocked     deployment inconsistent, workload held down
	Failed      restart retry ceiling exhausted, paired with the error

The Runner serializes passes: timers and external change notifications all
publish triggers into one queue with a single consumer, so no two passes
ever overlap and every pass sees the freshest inputs its Source can load.
*/
package reconciler
