// Package services contains the domain services of the allocation engine:
// working-hours scheduling, van position and tour overhead resolution,
// candidate path generation, and global greedy planning.
//
// All services in this package are read-only with respect to persisted
// state. They consume repository and routing ports but never write; the
// plan committer in the application layer is the sole mutator.
package services
