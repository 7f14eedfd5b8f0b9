// Package buildinfo exposes the version, commit, and build date stamped
// into the gdtest binary at link time.
package buildinfo
