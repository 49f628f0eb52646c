// Package allocation holds the value records produced by the fulfillment
// planning pipeline: scored path candidates from candidate generation and
// the allocation plan tree built by the global planner.
//
// Everything in this package is an in-memory record scoped to one planning
// call. Candidates and plans are never persisted; only the plan committer
// turns them into durable stock and movement changes.
package allocation
