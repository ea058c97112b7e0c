package common

import "testing"

func TestSeededRNG_Deterministic(t *testing.T) {
	a := NewSeededRNG(42)
	b := NewSeededRNG(42)
	for i := 0; i < 100; i++ {
		if x, y := a.Random(), b.Random(); x != y {
			t.Fatalf("Draw %d differs: %f vs %f", i, x, y)
		}
	}
}

func TestSeededRNG_ResetRewinds(t *testing.T) {
	r := NewSeededRNG(7)
	first := r.Random()
	r.Random()
	r.Reset()
	if got := r.Random(); got != first {
		t.Errorf("Expected %f after Reset, got %f", first, got)
	}
}

func TestSeededRNG_Bounds(t *testing.T) {
	r := NewSeededRNG(1)
	for i := 0; i < 1000; i++ {
		if v := r.Random(); v < 0 || v >= 1 {
			t.Fatalf("Random out of [0, 1): %f", v)
		}
		if v := r.Intn(5); v < 0 || v >= 5 {
			t.Fatalf("Intn(5) out of range: %d", v)
		}
		if v := r.Range(-2, 3); v < -2 || v >= 3 {
			t.Fatalf("Range(-2, 3) out of range: %f", v)
		}
	}
	if r.Intn(0) != 0 {
		t.Error("Expected Intn(0) to be 0")
	}
}

func TestSeededRNG_ForkIsIndependent(t *testing.T) {
	r := NewSeededRNG(99)
	a := r.Fork(0)
	b := r.Fork(1)
	same := 0
	for i := 0; i < 20; i++ {
		if a.Random() == b.Random() {
			same++
		}
	}
	if same == 20 {
		t.Error("Expected forks for different streams to differ")
	}
	if r.Fork(3).Random() != r.Fork(3).Random() {
		t.Error("Expected forks of the same stream to match")
	}
}

func TestDeriveSeed_Spreads(t *testing.T) {
	seen := make(map[uint32]bool)
	for n := 0; n < 64; n++ {
		s := DeriveSeed(12345, n)
		if seen[s] {
			t.Fatalf("Seed collision at stream %d", n)
		}
		seen[s] = true
	}
}
