// Package metadata defines the CSV contract between the collect and process
// commands.
//
// One Row describes one segment of one source recording. The collector
// appends rows as the operator confirms them; the processor consumes them in
// file order, which also defines output track numbers. Column order is part
// of the contract:
//
//	source_path, segment_index, start, end, title, speakers
//
// Timestamps are written as HH:MM:SS and accepted as HH:MM:SS, MM:SS, or
// bare seconds. Speakers are joined with ";" preserving operator order.
//
// Overlapping segments within one source are permitted: each row is an
// independent output, and rejecting overlap would block legitimate uses
// such as a recap segment reusing a talk's opening.
package metadata
