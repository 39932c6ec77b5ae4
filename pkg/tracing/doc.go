/*
Package tracing gives the operator eyes on itself: its reconciliation
passes are exported as OpenTelemetry spans to the very Tempo instance it
manages.

This dependency loop is deliberate and is why SelfNeeds seeds the protocol
aggregation: otlp_grpc stays active even with no external clients, so the
operator's own traces always have somewhere to go. Spans are created
explicitly at the few call sites worth observing; there is no automatic
wrapping of anything.
*/
package tracing
