// Package capture defines the abstract input surface a collector reads from:
// an ordered sequence of capability-tagged controls, decoupled from any
// concrete UI. Snapshot applies the capture policy that decides which
// controls contribute responses, so interaction surfaces only have to
// describe their controls truthfully and never filter themselves.
package capture
