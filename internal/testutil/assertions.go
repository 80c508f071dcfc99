package testutil

import (
	"os"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

// AssertDirContains checks that dir holds exactly the named files.
func AssertDirContains(t *testing.T, dir string, names ...string) {
	t.Helper()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	var got []string
	for _, e := range entries {
		got = append(got, e.Name())
	}
	want := append([]string(nil), names...)
	sort.Strings(want)
	sort.Strings(got)
	require.Equal(t, want, got, "unexpected files in %s", dir)
}
