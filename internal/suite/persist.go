package suite

import (
	"context"
	"fmt"

	"github.com/roach88/qed/internal/store"
)

// Persist writes a report into the ledger as one run with a verdict per
// check. Returns the run record.
func Persist(ctx context.Context, st *store.Store, report *Report) (store.Run, error) {
	run, err := st.BeginRun(ctx, report.Suite)
	if err != nil {
		return store.Run{}, fmt.Errorf("persist report: %w", err)
	}

	for i, check := range report.Checks {
		if _, _, err := st.WriteVerdict(ctx, run.ID, check.Result); err != nil {
			return store.Run{}, fmt.Errorf("persist report: checks[%d]: %w", i, err)
		}
	}

	return run, nil
}
