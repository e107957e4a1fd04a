// Package session orchestrates the document drafting lifecycle: creating
// sessions, applying partial field updates, computing completion status,
// regenerating artifacts, and finalizing documents.
//
// A session moves through Draft (fields partially set, any number of
// cycles), becomes eligible for finalization once every required field has
// a value, and is Finalized when both artifacts have been derived and
// recorded. Deletion is reachable from any state. Finalization is not a
// hard terminal state: a later field update followed by a second finalize
// simply re-derives fresh artifacts.
package session
