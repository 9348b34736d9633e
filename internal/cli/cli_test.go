package cli

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name        string
		args        []string
		wantExit    bool
		wantErr     string
		wantSession string
		check       func(t *testing.T, out string)
	}{
		{name: "positional session", args: []string{"a.hcl"}, wantSession: "a.hcl"},
		{name: "long flag wins over positional", args: []string{"-session", "b.hcl", "a.hcl"}, wantSession: "b.hcl"},
		{name: "shorthand", args: []string{"-s", "c.hcl"}, wantSession: "c.hcl"},
		{name: "help", args: []string{"-h"}, wantExit: true},
		{
			name:     "nothing to do prints usage",
			args:     []string{},
			wantExit: true,
			check: func(t *testing.T, out string) {
				assert.Contains(t, out, "Usage:")
			},
		},
		{name: "bad log format", args: []string{"-log-format", "xml", "a.hcl"}, wantErr: "invalid log-format"},
		{name: "bad log level", args: []string{"-log-level", "loud", "a.hcl"}, wantErr: "invalid log-level"},
		{name: "bad seed", args: []string{"-seed", "abc", "a.hcl"}, wantErr: "invalid seed"},
		{name: "negative frames", args: []string{"-frames", "-1", "a.hcl"}, wantErr: "frames must not be negative"},
		{name: "unknown flag", args: []string{"-nope"}, wantErr: "flag provided but not defined"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out := &bytes.Buffer{}
			cfg, exit, err := Parse(tc.args, out)
			if tc.wantErr != "" {
				require.Error(t, err)
				var exitErr *ExitError
				require.ErrorAs(t, err, &exitErr)
				assert.Equal(t, 2, exitErr.Code)
				assert.Contains(t, exitErr.Message, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantExit, exit)
			if tc.check != nil {
				tc.check(t, out.String())
			}
			if tc.wantExit {
				assert.Nil(t, cfg)
				return
			}
			assert.Equal(t, tc.wantSession, cfg.SessionPath)
		})
	}
}

func TestParse_RunFlags(t *testing.T) {
	cfg, exit, err := Parse([]string{
		"-preview", "-frames", "12", "-tick", "250ms", "-seed", "-5",
		"-save", "out.hcl", "-library", "lib", "-log-format", "JSON", "-log-level", "Debug",
	}, &bytes.Buffer{})
	require.NoError(t, err)
	require.False(t, exit)

	assert.Empty(t, cfg.SessionPath)
	assert.Equal(t, "out.hcl", cfg.SavePath)
	assert.Equal(t, "lib", cfg.LibraryPath)
	assert.True(t, cfg.Preview)
	assert.Equal(t, 12, cfg.Frames)
	assert.Equal(t, 250*time.Millisecond, cfg.Tick)
	require.NotNil(t, cfg.Seed)
	assert.Equal(t, int64(-5), *cfg.Seed)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "debug", cfg.LogLevel)
}
