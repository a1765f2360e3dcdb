package laws

import "sync"

// Ledger records check results in memory, keyed by structure fingerprint
// and law. It exists so "is this verified" always has a single answer:
// structures carry no verified flag, and a Ledger (or the durable store)
// answers only from results actually recorded.
//
// A Ledger is constructor-injected wherever verification status matters;
// there is no process-global instance. Safe for concurrent use.
type Ledger struct {
	mu      sync.RWMutex
	entries map[ledgerKey]Result
}

type ledgerKey struct {
	fingerprint string
	law         Law
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{entries: make(map[ledgerKey]Result)}
}

// Record stores a result, replacing any earlier result for the same
// structure and law. The latest word wins: re-checking after a fix
// overwrites the old verdict.
func (l *Ledger) Record(r Result) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries[ledgerKey{r.Fingerprint, r.Law}] = r
}

// Latest returns the recorded result for a structure and law.
func (l *Ledger) Latest(fingerprint string, law Law) (Result, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	r, ok := l.entries[ledgerKey{fingerprint, law}]
	return r, ok
}

// Verified reports whether the latest recorded check of the law on the
// structure passed. Unrecorded, failed, and inconclusive all answer false:
// nothing is verified by default.
func (l *Ledger) Verified(fingerprint string, law Law) bool {
	r, ok := l.Latest(fingerprint, law)
	return ok && r.Passed()
}

// Len returns the number of recorded (structure, law) verdicts.
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}
