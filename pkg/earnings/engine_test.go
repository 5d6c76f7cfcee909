package earnings

import (
	"math"
	"testing"
)

func TestComputeEarnings(t *testing.T) {
	tests := []struct {
		name           string
		price          float64
		quantity       int
		rate           float64
		wantGross      float64
		wantCommission float64
		wantNet        float64
	}{
		{
			name:           "standard settlement",
			price:          500,
			quantity:       2,
			rate:           CommissionRate,
			wantGross:      1000,
			wantCommission: 80,
			wantNet:        920,
		},
		{
			name:           "single unit",
			price:          99.99,
			quantity:       1,
			rate:           CommissionRate,
			wantGross:      99.99,
			wantCommission: 7.9992,
			wantNet:        91.9908,
		},
		{
			name:           "zero rate keeps gross",
			price:          250,
			quantity:       4,
			rate:           0,
			wantGross:      1000,
			wantCommission: 0,
			wantNet:        1000,
		},
		{
			name:           "zero price",
			price:          0,
			quantity:       3,
			rate:           CommissionRate,
			wantGross:      0,
			wantCommission: 0,
			wantNet:        0,
		},
	}

	const eps = 1e-9
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeEarnings(tt.price, tt.quantity, tt.rate)
			if math.Abs(got.Gross-tt.wantGross) > eps {
				t.Errorf("Gross = %v, want %v", got.Gross, tt.wantGross)
			}
			if math.Abs(got.Commission-tt.wantCommission) > eps {
				t.Errorf("Commission = %v, want %v", got.Commission, tt.wantCommission)
			}
			if math.Abs(got.Net-tt.wantNet) > eps {
				t.Errorf("Net = %v, want %v", got.Net, tt.wantNet)
			}
		})
	}
}

func TestComputeEarningsConservation(t *testing.T) {
	// Commission plus net must always reassemble the gross amount.
	amounts := ComputeEarnings(123.45, 7, CommissionRate)
	if diff := math.Abs(amounts.Gross - (amounts.Commission + amounts.Net)); diff > 1e-9 {
		t.Errorf("gross %v != commission %v + net %v", amounts.Gross, amounts.Commission, amounts.Net)
	}
}
