// Package ports defines the driven interfaces of Inkwell's hexagonal
// architecture: the external event log, the artifact sink, the binary
// deriver, and the session store contract built on top of the log.
package ports
