package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"
)

// RunWithGolden runs scenario and compares its artifact against
// testdata/golden/<name>.golden.
//
// Returns error if scenario execution fails.
// Test failure (via goldie) occurs if the artifact doesn't match.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}

	AssertGolden(t, scenario.Name, result)
	return result, nil
}

// AssertGolden compares an existing result's artifact against a golden file.
func AssertGolden(t *testing.T, name string, result *Result) {
	t.Helper()

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, result.Artifact)
}
