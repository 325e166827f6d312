package rng

import (
	"context"
	"testing"
)

func TestSeededStreamReproducible(t *testing.T) {
	a := New()
	ctx := context.Background()

	r1, err := a.SeededStream(ctx, "bootstrap", 42)
	if err != nil {
		t.Fatal(err)
	}
	r2, err := a.SeededStream(ctx, "bootstrap", 42)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 100; i++ {
		if r1.Int63() != r2.Int63() {
			t.Fatalf("same name and seed diverged at draw %d", i)
		}
	}
}

func TestStreamsIndependentByName(t *testing.T) {
	a := New()
	ctx := context.Background()

	r1, _ := a.SeededStream(ctx, "bootstrap", 42)
	r2, _ := a.SeededStream(ctx, "jackknife", 42)

	same := 0
	for i := 0; i < 50; i++ {
		if r1.Int63() == r2.Int63() {
			same++
		}
	}
	if same == 50 {
		t.Error("different names produced identical streams")
	}
}

func TestTrialStreamsDistinct(t *testing.T) {
	a := New()
	ctx := context.Background()

	r0, _ := a.TrialStream(ctx, "sim", 42, 0)
	r1, _ := a.TrialStream(ctx, "sim", 42, 1)
	if r0.Int63() == r1.Int63() && r0.Int63() == r1.Int63() {
		t.Error("adjacent trial streams are identical")
	}

	// Same trial twice must replay exactly.
	a0, _ := a.TrialStream(ctx, "sim", 42, 7)
	b0, _ := a.TrialStream(ctx, "sim", 42, 7)
	for i := 0; i < 20; i++ {
		if a0.Int63() != b0.Int63() {
			t.Fatalf("trial stream not reproducible at draw %d", i)
		}
	}
}

func TestSeedChangesStream(t *testing.T) {
	a := New()
	ctx := context.Background()

	r1, _ := a.SeededStream(ctx, "sim", 1)
	r2, _ := a.SeededStream(ctx, "sim", 2)
	if r1.Int63() == r2.Int63() && r1.Int63() == r2.Int63() {
		t.Error("different seeds produced identical streams")
	}
}
