/*
Package aggregator negotiates which receiver protocols must be active.

Requests arrive from three directions: explicit per-client receiver lists,
legacy clients that expect a fixed protocol bundle to always be on, and the
operator's own needs (its self-tracing exporter). Aggregate folds all three
into one set and filters it against the receiver catalog. The computation is
pure union/intersection over sets, which gives the two properties the
reconciler depends on: the same inputs always produce the same set, and
permuting the request list never changes the outcome.

PublishEndpoints is the return path: for each active protocol, the
{protocol, url} pair handed back to explicit requesters.
*/
package aggregator
