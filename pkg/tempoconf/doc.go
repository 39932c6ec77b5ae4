/*
Package tempoconf generates the Tempo configuration document.

Generate is the composition point: it takes one reconciliation pass's inputs
(active receiver set, optional object-store credentials, peer addresses,
optional TLS material) and assembles the server, distributor, ingester,
compactor, storage, and optional memberlist/querier blocks into a single
Document. The top-level key names and nesting match Tempo's own config
schema, so the marshalled form can be fed to the real binary unchanged.

Two things matter about Generate and everything it calls:

  - Pure: no I/O, no clock, no randomness. Equal inputs yield byte-identical
    marshalled output. The reconciler diffs those bytes against what is on
    disk to decide whether a restart is warranted, so any nondeterminism
    here would make the workload flap.
  - Total: expected input variation (no receivers, no s3, no peers) shapes
    the output instead of producing errors. Validation belongs to the
    consistency checker, not to rendering.
*/
package tempoconf
