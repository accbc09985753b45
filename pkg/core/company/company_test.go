package company

import "testing"

func TestUsable(t *testing.T) {
	if Usable(nil, 0, 100) {
		t.Error("Nil must not be usable")
	}
	if !Usable(Float(50), 0, 100) {
		t.Error("In-range value must be usable")
	}
	// Bounds are exclusive on both sides.
	if Usable(Float(0), 0, 100) || Usable(Float(100), 0, 100) {
		t.Error("Boundary values must not be usable")
	}
	if Usable(Float(-5), 0, 100) {
		t.Error("Out-of-range value must not be usable")
	}
}

func TestVal(t *testing.T) {
	if got := Val(nil, 0.3); got != 0.3 {
		t.Errorf("Expected fallback 0.3, got %f", got)
	}
	if got := Val(Float(1.2), 0.3); got != 1.2 {
		t.Errorf("Expected supplied value 1.2, got %f", got)
	}
}

func TestUsableMultiples(t *testing.T) {
	c := Company{PE: Float(9.8), PB: Float(1.9)}
	if !c.UsablePE() || !c.UsablePB() {
		t.Error("Normal multiples must be usable")
	}

	// Negative earnings and data glitches above the sane bounds count as
	// missing.
	c = Company{PE: Float(-4), PB: Float(250)}
	if c.UsablePE() || c.UsablePB() {
		t.Error("Negative or absurd multiples must not be usable")
	}
}

func TestMarginPreference(t *testing.T) {
	c := Company{EBITDAMargin: Float(32), GrossMargin: Float(55)}
	if m, ok := c.Margin(); !ok || m != 32 {
		t.Errorf("Expected EBITDA margin preferred, got %f ok=%v", m, ok)
	}

	c = Company{GrossMargin: Float(55)}
	if m, ok := c.Margin(); !ok || m != 55 {
		t.Errorf("Expected gross margin fallback, got %f ok=%v", m, ok)
	}

	if _, ok := (&Company{}).Margin(); ok {
		t.Error("Expected no margin when neither is supplied")
	}
}
