/*
Package health provides the probes that distinguish "process started" from
"actually serving".

Two checkers implement the common Checker interface. The HTTP checker polls
Tempo's own readiness endpoint and can require an exact body match, since
/ready answers the literal string "ready" only once the ingest path is up.
The TCP checker dials a single receiver port to confirm the listener exists,
which catches the port-still-in-use race where a restart succeeded but a
receiver failed to bind.

Status accumulates results over time with consecutive-failure thresholds and
a start-period grace window, so one slow poll right after a restart does not
flag the workload unhealthy.
*/
package health
