package laws

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedgerAnswersOnlyFromRecords(t *testing.T) {
	c := addMonoid("Add")
	l := NewLedger()

	// Nothing is verified by default.
	assert.False(t, l.Verified(c.Fingerprint(), LawCategory))

	res, err := CheckCategoryLaws(context.Background(), c, DefaultBudget())
	require.NoError(t, err)
	l.Record(res)

	assert.True(t, l.Verified(c.Fingerprint(), LawCategory))
	// A verdict for one law says nothing about another.
	assert.False(t, l.Verified(c.Fingerprint(), LawFunctor))

	got, ok := l.Latest(c.Fingerprint(), LawCategory)
	require.True(t, ok)
	assert.Equal(t, res, got)
	assert.Equal(t, 1, l.Len())
}

func TestLedgerLatestWordWins(t *testing.T) {
	l := NewLedger()
	l.Record(Result{Law: LawFunctor, Fingerprint: "fp", Outcome: OutcomeFailed})
	assert.False(t, l.Verified("fp", LawFunctor))

	l.Record(Result{Law: LawFunctor, Fingerprint: "fp", Outcome: OutcomePassed})
	assert.True(t, l.Verified("fp", LawFunctor))
	assert.Equal(t, 1, l.Len())
}

func TestLedgerNeverPromotesInconclusive(t *testing.T) {
	l := NewLedger()
	l.Record(Result{Law: LawNaturality, Fingerprint: "fp", Outcome: OutcomeInconclusive})
	assert.False(t, l.Verified("fp", LawNaturality))
}
