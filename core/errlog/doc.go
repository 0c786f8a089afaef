// Package errlog appends every failed operation to a durable, append-only
// error log for postmortem diagnosis.
//
// Each entry is a single JSON line carrying the timestamp, the originating
// operation name, the error kind, and the rendered error text. The file is
// independent of the structured zap logger: it survives log-level filtering
// and process restarts, so an out-of-sync listing can always be traced back
// to the action that caused it.
//
// # Usage
//
//	el, _ := errlog.Open("error.log")
//	defer el.Close()
//	el.Record(err)
package errlog
