package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsLikelyRemoteHost(t *testing.T) {
	cases := []struct {
		host   string
		remote bool
	}{
		{"localhost", false},
		{"127.0.0.1", false},
		{"::1", false},
		{"db.local", false},
		{"", false},
		{"10.0.4.12", true},
		{"db.prod.example.com", true},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.remote, isLikelyRemoteHost(tc.host), "host %q", tc.host)
	}
}

func TestParseDBResetFlags(t *testing.T) {
	opts, err := parseDBResetFlags([]string{"-yes", "-seed", "-timeout", "90s"})
	require.NoError(t, err)
	assert.True(t, opts.Yes)
	assert.True(t, opts.Seed)
	assert.Equal(t, 90*time.Second, opts.Timeout)

	_, err = parseDBResetFlags([]string{"-timeout", "0s"})
	require.Error(t, err)
}

func TestDBResetConfirmOptions_RemoteNeverAutoConfirms(t *testing.T) {
	opts := dbResetConfirmOptions{yes: true, remoteHost: "db.prod.example.com"}
	assert.False(t, opts.IsYes())
	assert.Contains(t, opts.Warning(), "db.prod.example.com")
}
