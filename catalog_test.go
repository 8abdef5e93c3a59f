package integrate

import (
	"errors"
	"math"
	"testing"
)

// TestCatalog_Antiderivatives verifies each Value matches its antiderivative.
func TestCatalog_Antiderivatives(t *testing.T) {
	for _, k := range Catalog() {
		if k.Antiderivative == nil {
			continue
		}
		lo, hi := k.Domain.Bounds()
		got := k.Antiderivative(hi) - k.Antiderivative(lo)
		if math.Abs(got-k.Value) > 1e-12 {
			t.Errorf("%s: antiderivative gives %.15f, Value is %.15f", k.Name, got, k.Value)
		}
	}
}

// TestCatalog_Sorted verifies names are unique and sorted.
func TestCatalog_Sorted(t *testing.T) {
	catalog := Catalog()
	for i := 1; i < len(catalog); i++ {
		if catalog[i-1].Name >= catalog[i].Name {
			t.Errorf("catalog not strictly sorted at %q, %q", catalog[i-1].Name, catalog[i].Name)
		}
	}
}

func TestLookup(t *testing.T) {
	k, err := Lookup(" DEMO ")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if !k.Domain.Equal(NewInterval(2, 3)) {
		t.Errorf("demo domain: expected [2, 3), got %v", k.Domain)
	}

	if _, err := Lookup("gamma"); !errors.Is(err, ErrUnknownIntegrand) {
		t.Errorf("expected ErrUnknownIntegrand, got %v", err)
	}
}

func TestKnown_ValueOver(t *testing.T) {
	k := Poly(2)

	got, ok := k.ValueOver(NewInterval(0, 3))
	if !ok || math.Abs(got-9) > 1e-12 {
		t.Errorf("∫_0^3 x²: expected 9, got %v (ok=%v)", got, ok)
	}

	k.Antiderivative = nil
	if _, ok := k.ValueOver(NewInterval(0, 3)); ok {
		t.Error("expected no value without an antiderivative")
	}
	if got, ok := k.ValueOver(k.Domain); !ok || got != k.Value {
		t.Errorf("default domain: expected %v, got %v (ok=%v)", k.Value, got, ok)
	}
}
