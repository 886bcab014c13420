// Package logging provides opt-in file-based logging with rotation for erljump.
// When the --debug flag is set, comprehensive logs are written to ~/.erljump/logs/
// for debugging and troubleshooting.
//
// By default (without --debug), logging is minimal and goes to stderr only,
// so an editor driving the CLI sees a quiet stdout.
package logging
