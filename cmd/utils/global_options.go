package utils

import (
	"github.com/sirupsen/logrus"

	"github.com/duckdrop/spl-airdrop-backend/internal/crashtracker"
)

// GlobalOptionsType holds the options shared by every command.
type GlobalOptionsType struct {
	LogLevel    logrus.Level
	SentryDSN   string
	Environment string
	Version     string
	GitCommit   string
}

// CrashTrackerOptions builds the options for a crash tracker of the given type. The Sentry DSN is only passed along
// when Sentry is the selected tracker.
func (g GlobalOptionsType) CrashTrackerOptions(crashTrackerType crashtracker.CrashTrackerType) crashtracker.CrashTrackerOptions {
	opts := crashtracker.CrashTrackerOptions{
		CrashTrackerType: crashTrackerType,
		Environment:      g.Environment,
		GitCommit:        g.GitCommit,
	}
	if crashTrackerType == crashtracker.CrashTrackerTypeSentry {
		opts.SentryDSN = g.SentryDSN
	}
	return opts
}
