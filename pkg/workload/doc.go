/*
Package workload owns the two pieces of mutable shared state in the whole
system: the on-disk Tempo config and the Tempo process.

The Handle interface is what the reconciler drives; Local implements it for
a Tempo binary run on the local machine. Handle methods are deliberately
single-attempt: the retry/backoff policy around restarts belongs to the
reconciler, not here.

CanConnect answering false is an expected lifecycle state, not a failure.
It maps to "defer and retry on the next pass".
*/
package workload
