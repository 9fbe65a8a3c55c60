// Package logging configures the logrus standard logger used by all packages of this module.
//
// Packages log through package-level entries, e.g. logrus.WithField("process", "primality"), so a single
// call to Setup governs all of them.
package logging

import (
	"io"
	"strings"

	log "github.com/sirupsen/logrus"
)

// DefaultLevel is used when no (valid) level is configured.
// Diagnostics go to stderr next to the rendered report, so the default keeps them quiet.
const DefaultLevel = log.WarnLevel

// Output formats for log lines.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Setup sets level, output and format of the standard logger and returns the level that was applied.
// An unparsable level falls back to DefaultLevel with a warning; an empty level silently selects DefaultLevel.
func Setup(level string, format string, output io.Writer) log.Level {
	if output != nil {
		log.SetOutput(output)
	}
	SetFormat(format)
	return SetToLevel(level)
}

// SetToLevel parses l as a logrus level and applies it.
func SetToLevel(l string) log.Level {
	if strings.TrimSpace(l) == "" {
		log.SetLevel(DefaultLevel)
		return DefaultLevel
	}
	level, err := log.ParseLevel(strings.TrimSpace(l))
	if err != nil {
		log.SetLevel(DefaultLevel)
		log.Warnf("Parse logger level from config err: %v", err)
		return DefaultLevel
	}
	log.SetLevel(level)
	return level
}

// SetFormat selects the text (default) or JSON formatter.
func SetFormat(format string) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case FormatJSON:
		log.SetFormatter(&log.JSONFormatter{})
	case FormatText, "":
		log.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
	default:
		log.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
		log.Warnf("unknown log format %q, using %q", format, FormatText)
	}
}
