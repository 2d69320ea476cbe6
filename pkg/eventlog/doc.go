// Package eventlog captures timer lifecycle events for multitimer.
//
// Operational logging (logrus) tells an operator what the process is doing.
// The event log is different: it is a complete, machine-readable trace of
// every timer a registry started, ticked, completed or deleted, suitable for
// later inspection with the multitimer-log tool.
//
// # Basic Usage
//
//	// Console output while developing
//	reg := countdown.NewRegistry(p, n, s, countdown.WithEventLogger(
//	    eventlog.NewLogrusAdapter(logger)))
//
//	// Binary file
//	fl, _ := eventlog.NewFileLogger("/var/log/multitimer/events.tlog")
//
//	// Both
//	eventlog.NewMultiLogger(eventlog.NewLogrusAdapter(logger), fl)
//
// # File Format
//
// Log files are a stream of CBOR-encoded Event values using integer map
// keys, conventionally with a .tlog extension.
package eventlog
