/*
Package storage persists the last configuration durably applied to the
workload.

The reconciler's idempotence contract says a second pass with the same
generated config must be a no-op even right after the first pass, and even
if the operator process restarted in between. That requires comparing
against what was actually written, not an optimistic in-memory copy. A
single-bucket BoltDB store is enough: one record holding the canonical
config bytes, their digest, and the apply timestamp.
*/
package storage
