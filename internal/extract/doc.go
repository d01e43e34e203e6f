// Package extract turns one listing card into a tournament.Record.
//
// Each field is derived by an ordered list of named strategies. A strategy either
// matches and yields a value or reports no match; the first match wins. Cards that
// do not mention both the configured venue name and city are discarded before any
// other work is done. Missing data never produces an error: the field is left
// absent and extraction continues.
package extract
