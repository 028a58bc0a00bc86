// Package routes reads and writes route files, the sectioned text format
// the sandbox runtime consumes to decide which hosts a session may reach:
//
//	[ip-add]
//	*.example.com
//	*.cdn.example.com
//
//	[ip-block]
//	0.0.0.0
//
// Every section is a set: entries are unique by exact string match and
// keep the order in which they were first seen. Merge folds new candidates
// into a section and is idempotent. Save always rewrites the whole file.
package routes
