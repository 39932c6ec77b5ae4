/*
Package log provides structured logging for the tempo-operator using zerolog.

The package wraps zerolog behind a global logger initialized once via
log.Init, plus child-logger constructors that tag entries with the fields
this codebase filters on: the emitting component, the relation a request
came from, or the receiver protocol being negotiated.

Console output (human-readable, RFC3339 timestamps) is the default; JSON
output is a flag away for when the operator's own logs get shipped.
*/
package log
