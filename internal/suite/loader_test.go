package suite

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/qed/laws"
)

// writeSuiteFile drops a suite YAML plus a minimal spec file into a temp
// dir so path validation has something to find.
func writeSuiteFile(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()

	spec := filepath.Join(dir, "chain.cue")
	require.NoError(t, os.WriteFile(spec, []byte(`category: C: {objects: ["A"]}`), 0o644))

	path := filepath.Join(dir, "suite.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadSuiteSmoke(t *testing.T) {
	s, err := LoadSuite(filepath.Join("testdata", "suites", "smoke.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "smoke", s.Name)
	assert.NotEmpty(t, s.Description)
	require.Len(t, s.Specs, 1)
	assert.Equal(t, filepath.Join("testdata", "specs", "chain.cue"), s.Specs[0])

	require.NotNil(t, s.Budget)
	assert.Equal(t, 64, s.Budget.Samples)

	require.Len(t, s.Checks, 7)
	assert.Equal(t, LawCategory, s.Checks[0].Law)
	assert.Equal(t, "Chain", s.Checks[0].Target())
	assert.Equal(t, LawInterchange, s.Checks[3].Law)
	assert.Equal(t, "eta, eta, eps, eps", s.Checks[3].Target())
	assert.Equal(t, LawComonad, s.Checks[6].Law)
	assert.Equal(t, "triv", s.Checks[6].Target())
}

func TestLoadSuiteRejectsUnknownField(t *testing.T) {
	path := writeSuiteFile(t, `
name: typo
description: a field name with a typo
specs:
  - chain.cue
check:
  - law: category
    category: C
`)
	_, err := LoadSuite(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestLoadSuiteMissingFields(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name: "no name",
			content: `
description: d
specs: [chain.cue]
checks: [{law: category, category: C}]
`,
			wantErr: "name is required",
		},
		{
			name: "no description",
			content: `
name: s
specs: [chain.cue]
checks: [{law: category, category: C}]
`,
			wantErr: "description is required",
		},
		{
			name: "no specs",
			content: `
name: s
description: d
checks: [{law: category, category: C}]
`,
			wantErr: "specs list is required",
		},
		{
			name: "no checks",
			content: `
name: s
description: d
specs: [chain.cue]
`,
			wantErr: "checks list is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeSuiteFile(t, tt.content)
			_, err := LoadSuite(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadSuiteMissingSpecFile(t *testing.T) {
	path := writeSuiteFile(t, `
name: s
description: d
specs: [nowhere.cue]
checks: [{law: category, category: C}]
`)
	_, err := LoadSuite(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "spec file not found")
}

func TestValidateCheck(t *testing.T) {
	tests := []struct {
		name    string
		check   Check
		wantErr string
	}{
		{"no law", Check{}, "law is required"},
		{"category without target", Check{Law: LawCategory}, "category is required"},
		{"functor without target", Check{Law: LawFunctor}, "functor is required"},
		{"naturality without target", Check{Law: LawNaturality}, "transformation is required"},
		{"interchange wrong arity", Check{Law: LawInterchange, Transformations: []string{"a", "b", "c"}}, "exactly four transformations"},
		{"adjunction without target", Check{Law: LawAdjunction}, "adjunction is required"},
		{"monad without target", Check{Law: LawMonad}, "adjunction is required"},
		{"comonad without target", Check{Law: LawComonad}, "adjunction is required"},
		{"unknown law", Check{Law: "associativity"}, `unknown law "associativity"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateCheck(0, tt.check)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	require.NoError(t, validateCheck(0, Check{Law: LawCategory, Category: "C"}))
	require.NoError(t, validateCheck(0, Check{
		Law:             LawInterchange,
		Transformations: []string{"a", "b", "c", "d"},
	}))
}

func TestBudgetSpecToBudget(t *testing.T) {
	def := laws.DefaultBudget()

	var nilSpec *BudgetSpec
	assert.Equal(t, def, nilSpec.toBudget())

	b := (&BudgetSpec{Samples: 10}).toBudget()
	assert.Equal(t, 10, b.Samples)
	assert.Equal(t, def.Timeout, b.Timeout)

	b = (&BudgetSpec{Timeout: 2 * time.Second}).toBudget()
	assert.Equal(t, def.Samples, b.Samples)
	assert.Equal(t, 2*time.Second, b.Timeout)
}

func TestBuildLibraryMergesFiles(t *testing.T) {
	dir := t.TempDir()

	one := filepath.Join(dir, "one.cue")
	require.NoError(t, os.WriteFile(one, []byte(`
category: C: {objects: ["A"]}
`), 0o644))

	two := filepath.Join(dir, "two.cue")
	require.NoError(t, os.WriteFile(two, []byte(`
functor: IdC: {identity: "C"}
`), 0o644))

	lib, err := BuildLibrary([]string{one, two})
	require.NoError(t, err)

	_, err = lib.Category("C")
	require.NoError(t, err)
	_, err = lib.Functor("IdC")
	require.NoError(t, err)
}

func TestBuildLibraryRejectsDuplicateName(t *testing.T) {
	dir := t.TempDir()

	one := filepath.Join(dir, "one.cue")
	require.NoError(t, os.WriteFile(one, []byte(`category: C: {objects: ["A"]}`), 0o644))
	two := filepath.Join(dir, "two.cue")
	require.NoError(t, os.WriteFile(two, []byte(`category: C: {objects: ["B"]}`), 0o644))

	_, err := BuildLibrary([]string{one, two})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `category "C" declared twice`)
}

func TestBuildLibraryRejectsBrokenSpec(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.cue")
	require.NoError(t, os.WriteFile(bad, []byte(`category: C: {arrows: {}}`), 0o644))

	_, err := BuildLibrary([]string{bad})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.cue")
}

func TestBuildLibraryMissingFile(t *testing.T) {
	_, err := BuildLibrary([]string{filepath.Join(t.TempDir(), "ghost.cue")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read spec file")
}
