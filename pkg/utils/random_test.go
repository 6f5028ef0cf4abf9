package utils

import (
	"testing"

	"github.com/google/uuid"
)

func TestGenerateID(t *testing.T) {
	a := GenerateID()
	b := GenerateID()
	if a == b {
		t.Fatal("two generated ids must differ")
	}
	if _, err := uuid.Parse(a); err != nil {
		t.Errorf("GenerateID() = %q is not a uuid: %v", a, err)
	}
}

func TestDeriveSeed(t *testing.T) {
	if DeriveSeed(42, "round-1") != DeriveSeed(42, "round-1") {
		t.Error("DeriveSeed must be deterministic")
	}
	if DeriveSeed(42, "round-1") == DeriveSeed(42, "round-2") {
		t.Error("different labels should give different seeds")
	}

	r1 := NewRand(7)
	r2 := NewRand(7)
	for i := 0; i < 10; i++ {
		if r1.Intn(1000) != r2.Intn(1000) {
			t.Fatal("same seed must give same sequence")
		}
	}
}
