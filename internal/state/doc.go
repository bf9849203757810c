// Package state shares tail session counters between the follow loop and
// whatever displays them.
//
// The follow loop is the single writer: after every poll it calls Update
// with the session's logtail.Stats and the number of lines shown so far.
// The interactive viewer and the verbose exit summary read Snapshot, which
// returns a copy so readers never observe a half-written update.
//
// Failed polls keep the last good counters and bump ConsecutiveFailures;
// IsStalled reports two or more failures in a row.
package state
