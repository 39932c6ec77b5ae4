/*
Package relation turns raw relation databags into request snapshots.

The wire format is the relation layer's: string keys mapping to
JSON-encoded values. This package owns the one genuinely fiddly decision in
that translation, the legacy-detection contract. After stripping the keys
the relation machinery writes on every bag, a bag with a "receivers" key is
an explicit request, any other non-empty bag is a legacy request, and an
empty bag is no request at all. The contract is deliberately structural:
legacy clients are recognized by what they do not say, never by version
sniffing.

Decoded requests are immutable snapshots consumed within a single
reconciliation pass and recomputed on the next one.
*/
package relation
