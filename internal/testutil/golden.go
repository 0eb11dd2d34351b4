package testutil

import (
	"testing"

	"github.com/sebdah/goldie/v2"
)

// Golden compares output against testdata/golden/<name>.golden.
// Run the tests with -update to rewrite the golden files.
func Golden(t *testing.T, name string, got []byte) {
	t.Helper()

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, got)
}

