package cat

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content-addressed identity. Version suffix enables
// future algorithm migration.
const (
	DomainCategory        = "qed/category/v1"
	DomainFunctor         = "qed/functor/v1"
	DomainTransformation  = "qed/transformation/v1"
	DomainAdjunction      = "qed/adjunction/v1"
	DomainMonad           = "qed/monad/v1"
	DomainComonad         = "qed/comonad/v1"
	DomainFunctorCategory = "qed/functorcat/v1"
)

// hashWithDomain computes a SHA-256 hash with domain separation.
// Format: SHA256(domain + 0x00 + data)
// The null byte separator prevents domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00}) // Null separator - CRITICAL for security
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// Digest computes the domain-separated hash of a value's canonical JSON.
// Other packages use it to derive their own content-addressed identifiers
// (verdict IDs, presentation digests) in the same scheme the algebra uses
// for fingerprints.
func Digest(domain string, v any) (string, error) {
	canonical, err := MarshalCanonical(v)
	if err != nil {
		return "", fmt.Errorf("digest %s: failed to marshal: %w", domain, err)
	}
	return hashWithDomain(domain, canonical), nil
}

// MustDigest is like Digest but panics on error. Use only when inputs are
// known to be valid canonical material.
func MustDigest(domain string, v any) string {
	d, err := Digest(domain, v)
	if err != nil {
		panic(err)
	}
	return d
}

// Fingerprints identify structures across processes and restarts: the
// ledger keys verification verdicts by them. They cover the declarative
// skeleton (names, endpoints, capabilities, presented digests), never the
// behavior of the Go functions inside, so two structures with the same
// skeleton share a fingerprint. Callers keep names distinct where that
// matters.

func categoryFingerprint(name string, caps CapabilitySet, digest string) string {
	obj := map[string]any{
		"kind": "category",
		"name": name,
		"caps": caps.Strings(),
	}
	if digest != "" {
		obj["digest"] = digest
	}
	return MustDigest(DomainCategory, obj)
}

func leafFunctorFingerprint(name, sourceFP, targetFP string) string {
	return MustDigest(DomainFunctor, map[string]any{
		"kind":   "functor",
		"name":   name,
		"source": sourceFP,
		"target": targetFP,
	})
}

// spineFunctorFingerprint covers identity functors (empty spine) and
// composites (leaf fingerprints in application order).
func spineFunctorFingerprint(sourceFP, targetFP string, spineFPs []string) string {
	return MustDigest(DomainFunctor, map[string]any{
		"kind":   "functor",
		"source": sourceFP,
		"target": targetFP,
		"spine":  spineFPs,
	})
}

func transformationFingerprint(name, sourceFP, targetFP string) string {
	return MustDigest(DomainTransformation, map[string]any{
		"kind":   "transformation",
		"name":   name,
		"source": sourceFP,
		"target": targetFP,
	})
}

func adjunctionFingerprint(leftFP, rightFP, unitFP, counitFP string) string {
	return MustDigest(DomainAdjunction, map[string]any{
		"kind":   "adjunction",
		"left":   leftFP,
		"right":  rightFP,
		"unit":   unitFP,
		"counit": counitFP,
	})
}

func monadFingerprint(domain, functorFP, unitFP, multFP string) string {
	return MustDigest(domain, map[string]any{
		"functor": functorFP,
		"unit":    unitFP,
		"mult":    multFP,
	})
}
