package suite

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/qed/cat"
)

// AssertGolden compares a report's canonical JSON against a golden file
// at testdata/golden/{name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/suite -update
func AssertGolden(t *testing.T, name string, report *Report) error {
	t.Helper()

	data, err := cat.MarshalCanonical(report.CanonicalMap())
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, data)

	return nil
}
