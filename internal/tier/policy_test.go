package tier

import (
	"errors"
	"testing"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		name     string
		wantName string
		wantErr  bool
	}{
		{"standard", "standard", false},
		{"PREMIUM", "premium", false},
		{" Standard ", "standard", false},
		{"gold", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			policy, err := Lookup(tt.name)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownTier) {
					t.Fatalf("expected ErrUnknownTier, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Lookup failed: %v", err)
			}
			if policy.Name != tt.wantName {
				t.Errorf("got %q, want %q", policy.Name, tt.wantName)
			}
		})
	}
}

func TestStandardPrices(t *testing.T) {
	policy := Standard()
	want := map[Operation]int{
		OpNegate:            5,
		OpGrayscale:         6,
		OpRotate180:         10,
		OpAdjustBrightness:  1,
		OpBlur:              5,
		OpAverageBrightness: 0,
	}
	for op, price := range want {
		if got := policy.Price(op); got != price {
			t.Errorf("Price(%s): got %d, want %d", op, got, price)
		}
	}
	if policy.BaseFee != 0 || policy.Compositing || !policy.Coupons {
		t.Errorf("unexpected standard policy: %+v", policy)
	}
}

func TestPremiumPolicy(t *testing.T) {
	policy := Premium()
	if policy.BaseFee != 50 || !policy.Compositing || policy.Coupons {
		t.Errorf("unexpected premium policy: %+v", policy)
	}
	for _, op := range []Operation{OpNegate, OpBlur, OpChromaKey, OpSticker, OpEdgeHighlight} {
		if got := policy.Price(op); got != 0 {
			t.Errorf("Price(%s): got %d, want 0", op, got)
		}
	}
}

func TestPoliciesAreIndependent(t *testing.T) {
	a := Standard()
	a.Prices[OpNegate] = 99
	if Standard().Price(OpNegate) != 5 {
		t.Error("mutating one policy should not affect later lookups")
	}
}

func TestNames(t *testing.T) {
	names := Names()
	if len(names) != 2 || names[0] != "premium" || names[1] != "standard" {
		t.Errorf("got %v", names)
	}
}
