// Package batch evaluates many input records at once.
//
// ReadCSV parses records from a CSV stream whose header names the four input
// columns (sleep, workload, screentime, extracurricular) in any order, plus
// an optional id column. A malformed row becomes a Record with Err set; it
// does not stop the read.
//
// Run evaluates records on a bounded pool (golang.org/x/sync/semaphore).
// Outcomes come back in input order, one per record. Cancelling the context
// stops scheduling; records that never ran carry the context error.
//
// Aggregate reduces outcomes to descriptive statistics.
package batch
