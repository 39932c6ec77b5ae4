/*
Package events funnels reconciliation triggers into a single-writer queue.

The core's invariants assume one reconciliation pass at a time, run to
completion. Whatever the host environment looks like (timers, watchers,
signal handlers), every "something changed" notification becomes a Trigger
published here, and exactly one consumer drains them in order. Triggers are
deliberately payload-free: a pass never trusts a trigger's snapshot, it
re-reads all external state itself, so dropping a trigger while another is
pending loses nothing.
*/
package events
