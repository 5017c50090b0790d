// Package history keeps a rolling in-memory window of stress evaluations and
// summarises it.
//
// Tracker.Record appends one fuzzy.Result (stress, label, inputs) stamped with
// a UUID and the tracker clock. Only the newest Window entries are kept
// (default 20); older ones fall off the front. Nothing is written to disk.
//
// Tracker.Summary reports count, average, min and max stress and a Trend:
// the mean of the newest five entries is compared against the mean of up to
// five of the oldest entries that do not overlap them. A difference smaller
// than the stable band (default 3 points) is "stable"; otherwise the trend is
// "up" or "down" with the relative change in percent.
//
// All exported methods are safe for concurrent use.
package history
