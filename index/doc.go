// Package index computes the embedding vectors of a reference corpus and
// keeps them in a vector cache.
//
// Every reference record contributes one whole-field vector per semantic
// field. Synonym and preferred-term fields holding several semicolon
// separated atoms also get one vector per atom, stored inside the parent
// entry. Texts are embedded in batches on a worker pool, with retry and
// exponential backoff, and vectors are normalized to unit length.
//
// LoadOrBuild reuses a cache entry only when its record count, model and
// dimension agree with the current corpus; anything else is rebuilt and the
// entry overwritten.
package index
