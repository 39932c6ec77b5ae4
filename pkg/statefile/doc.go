/*
Package statefile reads the operator's declarative input document.

One YAML file carries everything external a reconciliation pass needs:
deployment shape, object-store credentials, TLS file references, peer
addresses, worker role claims, and raw tracing-client databags. FileSource
re-reads the file on every pass, so edits to it take effect on the next
trigger without restarting the operator.
*/
package statefile
