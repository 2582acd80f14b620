// Package hooks implements the dispatch targets resolved action
// messages are routed to: queueing a module job, calling a module
// directly, forwarding a result to a returner, reading or merging the
// shared context store, and a diagnostic echo. The capability set is
// fixed and resolved at startup into a hook registry; messages select a
// hook by name and the hook interprets the message's arguments itself.
package hooks
