package app_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/docna/docna/internal/app"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFailure_ExitCode(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		failure *app.Failure
		want    int
	}{
		{name: "usage", failure: &app.Failure{Kind: app.KindUsage}, want: 2},
		{name: "interrupted", failure: &app.Failure{Kind: app.KindInterrupted}, want: 130},
		{name: "engine", failure: &app.Failure{Kind: app.KindEngine}, want: 1},
		{name: "io", failure: &app.Failure{Kind: app.KindIO}, want: 1},
		{name: "child status wins", failure: &app.Failure{Kind: app.KindLaunch, Code: 3}, want: 3},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, tc.failure.ExitCode())
		})
	}
}

func TestAsFailure_Wrapped(t *testing.T) {
	t.Parallel()

	cause := errors.New("disk full")
	err := fmt.Errorf("analyze: %w", &app.Failure{Kind: app.KindIO, Err: cause})

	f, ok := app.AsFailure(err)

	require.True(t, ok)
	assert.Equal(t, app.KindIO, f.Kind)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "io: disk full", f.Error())

	_, ok = app.AsFailure(cause)
	assert.False(t, ok)
}
