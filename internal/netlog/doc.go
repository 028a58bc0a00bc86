// Package netlog scans the per-session network logs written by the sandbox
// and reports which destinations were blocked.
//
// Two line shapes matter, anywhere within a line:
//
//	Host c.test resolved to: 10.0.0.9
//	Connection blocked: 10.0.0.9
//
// Every other line is ignored. Addresses are normalized with NormalizeAddr,
// so "::ffff:192.0.2.5" is stored as "192.0.2.5". Resolutions from all files
// of a scan feed one HostMap, and each blocked address is reported as its
// resolved hostname when one is known and valid.
//
// A session without a log directory, or without matching files, simply
// produces an empty report.
package netlog
