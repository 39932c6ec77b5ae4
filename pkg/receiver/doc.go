/*
Package receiver holds the catalog of trace-ingestion protocols Tempo can
serve and renders the active set into the distributor.receivers config
sub-document.

The catalog is pure data: protocol name, default port, transport family.
Deprecated names old clients still send ("tempo", "jaeger_http_thrift")
normalize to their canonical entries before lookup; names the catalog does
not know resolve to ok=false and are silently dropped upstream, since a
version-skewed client asking for a receiver this Tempo cannot serve is an
expected state, not an error.

Rendering groups protocols into Tempo's receiver families:

	otlp        protocols: {grpc, http}
	jaeger      protocols: {thrift_http, grpc, thrift_binary, thrift_compact}
	zipkin      singleton
	opencensus  singleton

An empty active set renders an empty document: the workload comes up but
ingests nothing, which callers surface as a degraded status rather than an
error.
*/
package receiver
