// Package daylist stores one day's task list as a flat text file.
//
// # File Format
//
// Each day file is plain UTF-8 text with one task per line. A single
// sentinel line separates pending tasks from completed ones:
//
//	buy milk
//	walk dog
//	____below_are_completed____
//	water plants
//
// Lines above the sentinel are pending and are numbered 1..N in file order
// when displayed. Lines below it are completed, in the order they were
// completed. Empty lines carry no meaning; they are skipped on read and
// dropped on rewrite.
//
// # Rewrites
//
// Every mutation is a full read-modify-write cycle. OpenForRewrite takes the
// directory's advisory lock, opens the day file for streaming and creates a
// sibling temp file (<day file>.temp). Commit fsyncs the temp file and
// renames it over the original, so readers observe either the old list or
// the new one. Abort removes the temp file and leaves the original untouched.
package daylist
