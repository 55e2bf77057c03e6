package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/duckdrop/spl-airdrop-backend/internal/crashtracker"
)

func Test_GlobalOptionsType_CrashTrackerOptions(t *testing.T) {
	globalOptions := GlobalOptionsType{
		Environment: "staging",
		GitCommit:   "1234567890abcdef",
		SentryDSN:   "https://public@sentry.example.com/1",
	}

	testCases := []struct {
		crashTrackerType crashtracker.CrashTrackerType
		wantSentryDSN    string
	}{
		{crashTrackerType: crashtracker.CrashTrackerTypeDryRun},
		{crashTrackerType: crashtracker.CrashTrackerTypeSentry, wantSentryDSN: "https://public@sentry.example.com/1"},
	}

	for _, tc := range testCases {
		t.Run(string(tc.crashTrackerType), func(t *testing.T) {
			assert.Equal(t, crashtracker.CrashTrackerOptions{
				CrashTrackerType: tc.crashTrackerType,
				Environment:      "staging",
				GitCommit:        "1234567890abcdef",
				SentryDSN:        tc.wantSentryDSN,
			}, globalOptions.CrashTrackerOptions(tc.crashTrackerType))
		})
	}
}
