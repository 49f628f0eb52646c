// Package jobs contains the scheduled background work of the service.
// The allocation job periodically sweeps the pending order backlog and
// commits reservation plans; the job manager owns job lifecycles.
package jobs
