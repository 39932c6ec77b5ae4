/*
Package types defines the value types shared across the tempo-operator core.

Everything here is a plain value: receiver protocol names and sets, worker
roles, relation request snapshots, deployment facts, and the credential and
TLS material records the config generator consumes. Nothing in this package
holds references to live infrastructure, and nothing is mutated across
reconciliation passes; each pass rebuilds its inputs from scratch so stale
snapshots can never leak into a later decision.

ReceiverSet is the one type with behavior worth noting: its Sorted method is
the single ordering point for everything rendered from a set, which is what
keeps config generation byte-deterministic regardless of map iteration order.
*/
package types
