package commission

import (
	"math"
	"testing"

	"backoffice-backend/models"
)

const tol = 0.01

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < tol
}

func TestCalculatePercentage(t *testing.T) {
	tests := []struct {
		name       string
		amount     float64
		percentage float64
		commission float64
		house      float64
	}{
		{"fifteen percent", 1000, 15, 150, 850},
		{"zero amount", 0, 15, 0, 0},
		{"zero percent", 500, 0, 0, 500},
		{"full percent", 200, 100, 200, 0},
		{"rounds to cents", 99.99, 33, 33.00, 66.99},
		{"half", 250, 50, 125, 125},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Calculate(tt.amount, Policy{Type: models.CommissionPercentage, Percentage: tt.percentage, Fixed: 9999})
			if !almostEqual(got.Commission, tt.commission) {
				t.Errorf("commission = %v, want %v", got.Commission, tt.commission)
			}
			if !almostEqual(got.HouseAmount, tt.house) {
				t.Errorf("house = %v, want %v", got.HouseAmount, tt.house)
			}
		})
	}
}

func TestCalculateFixed(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		fixed  float64
	}{
		{"below amount", 1000, 200},
		{"equal to amount", 300, 300},
		{"exceeds amount", 100, 250}, // negative house is allowed, not clamped
		{"zero fixed", 400, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Calculate(tt.amount, Policy{Type: models.CommissionFixed, Percentage: 75, Fixed: tt.fixed})
			if !almostEqual(got.Commission, tt.fixed) {
				t.Errorf("commission = %v, want %v (fixed policy ignores sale amount)", got.Commission, tt.fixed)
			}
			if !almostEqual(got.HouseAmount, tt.amount-tt.fixed) {
				t.Errorf("house = %v, want %v", got.HouseAmount, tt.amount-tt.fixed)
			}
		})
	}
}

func TestCalculateFixedNegativeHouseFlagged(t *testing.T) {
	got := Calculate(100, Policy{Type: models.CommissionFixed, Fixed: 250})
	if !got.HouseNegative() {
		t.Fatal("expected HouseNegative for fixed commission above sale amount")
	}
	if got.HouseAmount != -150 {
		t.Fatalf("house = %v, want -150", got.HouseAmount)
	}
}

// The split must conserve the sale amount for every policy across a sweep of
// inputs: commission + house == amount within a cent.
func TestCalculateConservation(t *testing.T) {
	amounts := []float64{0, 0.01, 1, 49.99, 100, 999.95, 1000, 123456.78}
	percents := []float64{0, 1, 12.5, 33.33, 50, 99, 100}
	for _, a := range amounts {
		for _, p := range percents {
			s := Calculate(a, Policy{Type: models.CommissionPercentage, Percentage: p})
			if !almostEqual(s.Commission+s.HouseAmount, a) {
				t.Errorf("percentage %v of %v: %v + %v != %v", p, a, s.Commission, s.HouseAmount, a)
			}
		}
		for _, f := range []float64{0, 10, 500, 2000} {
			s := Calculate(a, Policy{Type: models.CommissionFixed, Fixed: f})
			if !almostEqual(s.Commission+s.HouseAmount, a) {
				t.Errorf("fixed %v on %v: %v + %v != %v", f, a, s.Commission, s.HouseAmount, a)
			}
		}
	}
}

func TestCalculateUnknownTypeZeroCommission(t *testing.T) {
	s := Calculate(500, Policy{Type: "bogus", Percentage: 50, Fixed: 50})
	if s.Commission != 0 || s.HouseAmount != 500 {
		t.Fatalf("unknown policy type should yield zero commission, got %+v", s)
	}
}

func TestPolicyFromEmployee(t *testing.T) {
	e := models.Employee{CommissionType: models.CommissionFixed, CommissionPercentage: 20, FixedCommission: 75}
	p := PolicyFromEmployee(e)
	if p.Type != models.CommissionFixed || p.Fixed != 75 || p.Percentage != 20 {
		t.Fatalf("unexpected policy %+v", p)
	}
}
