package cliutil

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/haugstad/fenc/envelope"
)

// NewLogger returns the structured warning/progress logger the CLI
// layer uses for events that are not part of the contractual
// stdout/stderr protocol messages in spec.md §6 (which are plain
// fmt writes, produced separately by ReportTampered and friends).
func NewLogger(w io.Writer) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true}).With().Timestamp().Logger()
}

// ReportTampered writes the per-file tamper message spec.md §6
// mandates to stdout, for every result flagged Tampered.
func ReportTampered(w io.Writer, results []envelope.DecryptResult) {
	for _, r := range results {
		if r.Tampered {
			fmt.Fprintf(w, "%s has been tampered with and has not been decrypted\n", r.Filename)
		}
	}
}

// ReportSkipped logs (via logger) every file Search declined to
// consider, most commonly because its password did not match.
func ReportSkipped(logger zerolog.Logger, skipped []envelope.SkippedFile) {
	for _, s := range skipped {
		logger.Warn().Str("file", s.Filename).Str("reason", s.Reason).Msg("skipped sidecar")
	}
}

// ReportError writes a fatal error to stderr, matching the shape of
// the pre-flight failure messages in spec.md §6 (the messages
// themselves are produced by the envelope error types; this just
// ensures they land on stderr without extra decoration).
func ReportError(err error) {
	fmt.Fprintln(os.Stderr, err)
}
