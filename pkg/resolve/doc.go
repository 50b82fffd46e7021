// Package resolve merges an ALPS profile with the descriptors it references
// in other files.
//
// # Overview
//
// Descriptors may point at other descriptors with href or rt, either in the
// same document ("#id") or in another file ("other.json#id"). Before the
// profile can be turned into a graph, every external target has to be pulled
// into one working set. [Resolver.Resolve] does that lazily: a file is only
// loaded when something references it, and only once.
//
// # Algorithm
//
// Resolution runs over an explicit FIFO queue of (file, id) pairs:
//
//  1. Load the root file. Every id it declares is marked visited.
//  2. Scan the root tree. In-document references are checked against the
//     root; external ones are queued with their path made absolute relative
//     to the referencing file.
//  3. Pop a pair. Skip it if visited, otherwise mark it, load the file
//     (memoized), find the id, append a copy of the descriptor to the
//     working set and scan the copy, queuing its references against the
//     file it came from.
//
// The visited set is what makes mutually-referencing files terminate. Every
// followed reference is rewritten to the in-document form "#id" so the table
// and link builders never see file paths.
//
// # Lifetime
//
// The visited set and file memo live inside a single Resolve call. A
// [Resolver] holds no state between calls.
package resolve
