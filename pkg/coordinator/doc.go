/*
Package coordinator decides whether the deployment is sound enough to run.

Two concerns live here. Role aggregation sums, across every connected worker
application, how many units serve each named role, expanding the monolithic
meta-role into the full concrete set and folding in the local node's own
roles when it runs worker duties. Consistency checking then evaluates a
handful of independent rules over the deployment facts:

  - something, somewhere, must run worker duties
  - horizontal scaling without object storage is unsafe (replicas would
    fight over local disk)
  - a multi-node cluster without object storage is meaningless
  - with object storage present, the aggregated roles must cover the
    minimal deployment table

All failed rules are collected and returned together as operator-readable
text. Violations are first-class return values, never errors: the caller
blocks the workload while any exist and re-checks on every pass.
*/
package coordinator
