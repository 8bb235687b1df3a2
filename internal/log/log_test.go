// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package log

import (
	"path/filepath"
	"testing"

	"github.com/btcsuite/btclog"
	"github.com/stretchr/testify/require"
)

// TestParseAndSetDebugLevels ensures debug level strings are validated
// and applied to the right subsystems.
func TestParseAndSetDebugLevels(t *testing.T) {
	tests := []struct {
		levels  string
		wantErr bool
		want    map[string]btclog.Level
	}{{
		levels: "debug",
		want: map[string]btclog.Level{
			"HDKC": btclog.LevelDebug,
			"KRNG": btclog.LevelDebug,
			"HDKY": btclog.LevelDebug,
		},
	}, {
		levels: "HDKC=trace,KRNG=warn",
		want: map[string]btclog.Level{
			"HDKC": btclog.LevelTrace,
			"KRNG": btclog.LevelWarn,
			"HDKY": btclog.LevelDebug,
		},
	}, {
		levels: "off",
		want: map[string]btclog.Level{
			"HDKC": btclog.LevelOff,
			"KRNG": btclog.LevelOff,
			"HDKY": btclog.LevelOff,
		},
	}, {
		levels:  "loud",
		wantErr: true,
	}, {
		levels:  "HDKC=debug,info",
		wantErr: true,
	}, {
		levels:  "NOPE=debug",
		wantErr: true,
	}, {
		levels:  "HDKC=loud",
		wantErr: true,
	}}

	for _, test := range tests {
		err := ParseAndSetDebugLevels(test.levels)
		if test.wantErr {
			require.Error(t, err, test.levels)
			continue
		}
		require.NoError(t, err, test.levels)
		for subsystem, level := range test.want {
			require.Equal(t, level, SubsystemLoggers[subsystem].Level(),
				"%s %s", test.levels, subsystem)
		}
	}

	require.Equal(t, []string{"HDKC", "HDKY", "KRNG"}, SupportedSubsystems())
}

// TestInitLogRotator ensures the log file is created and the rotator can be
// closed more than once.
func TestInitLogRotator(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "nested", "test.log")
	require.NoError(t, InitLogRotator(logFile))
	require.NotNil(t, LogRotator)

	HdkyLog.Info("rotator test")

	CloseLogRotator()
	require.Nil(t, LogRotator)
	CloseLogRotator()

	require.FileExists(t, logFile)
}
