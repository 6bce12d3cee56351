// Package lifecycle decides, from a borrow event snapshot and the viewer's
// identity, which meet-up negotiation step and which other actions the
// viewer may take. Everything here is pure: no I/O, no clocks read.
package lifecycle
