// Package discover implements the route discovery loop.
//
// Each iteration writes the route file, runs one sandbox session against it,
// scans the session's network logs for blocked connections and asks the
// user whether the pages rendered. Blocked hosts accumulate into the ip-add
// section until the user answers yes:
//
//	seed -> build -> run -> scan -> accumulate -> prompt -> done
//	          ^                                      |
//	          +------------------ no ----------------+
//
// The ip-block section always carries the block-all default. A temporary
// route file is used when no destination is given and is removed when Run
// returns, whatever the outcome.
package discover
