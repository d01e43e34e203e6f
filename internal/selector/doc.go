// Package selector decides which of today's tournaments goes on the display.
//
// Select is a pure function of the candidate records and their reported status;
// it never looks at the wall clock. CheckContinuation inspects the previously
// persisted record to catch a tournament that started before midnight and may
// still be running.
package selector
