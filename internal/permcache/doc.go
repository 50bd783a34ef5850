// Package permcache maps a role identifier to its transitively-resolved
// permission set. Entries are held in a bounded in-process LRU (L1) backed
// by a Redis-shared layer (L2) so a cold node still benefits from another
// node's recent resolution.
//
// Invalidation is propagated to every descendant of a mutated role: the
// cache maintains a reverse index (role → descendants) populated by callers
// as the role graph changes, so an invalidation only touches the roles
// actually affected.
package permcache
