// Package hostname canonicalizes user-supplied URLs into route entries and
// classifies host strings.
//
// Normalize strips one pair of enclosing quotes, parses the input as an
// absolute URL (retrying with an http:// prefix), lower-cases the host and
// drops a leading "www." label:
//
//	host, _ := hostname.Normalize(`"www.Example.com/path"`) // "example.com"
//	hostname.Wildcard(host)                                 // "*.example.com"
//
// Classify mirrors the usual host-name-type check: IPv4 and IPv6 literals,
// DNS names made of valid labels, and Unknown for everything else. The log
// scanner only substitutes a resolved name for a blocked address when the
// name is not Unknown.
package hostname
