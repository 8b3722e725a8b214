// Package scaffold generates new package definition files from embedded
// templates. It powers the "moddle init" command and validates every file it
// writes against the package schema.
package scaffold
