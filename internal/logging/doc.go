// Package logging provides a unified logging interface for the digit
// extraction application. It abstracts the underlying zerolog implementation,
// allowing consistent structured logging across components while keeping the
// call sites independent of the backend.
package logging
