// Package fileio wraps the filesystem operations used by the echo loop.
//
// Reading a file is a deliberate two-phase sequence:
//  1. Check stats the path and confirms it names a regular file.
//  2. Open opens it and returns a LineStream.
//
// The gap between the two phases is part of the contract. A file that
// disappears or loses its permissions after Check is reported by Open as a
// *model.OpenError, which the loop treats as fatal.
package fileio
