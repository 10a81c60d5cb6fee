package pricing

import (
	"math"
	"testing"
)

func TestQuote_KnownFares(t *testing.T) {
	tests := []struct {
		name       string
		distanceKm float64
		vehicle    Vehicle
		want       int64
	}{
		{"zero distance bike", 0, VehicleBike, 500},
		{"short hop bike", 1.0, VehicleBike, 800},
		{"3.2km bike", 3.2, VehicleBike, 1300},
		{"3.2km car", 3.2, VehicleCar, 1950},
		{"3.2km van", 3.2, VehicleVan, 3250},
		{"exact step boundary", 1.4, VehicleBike, 900}, // 500+350=850 -> 900
		{"long haul van", 42.7, VehicleVan, 28000},     // 11175 -> 11200, x2.5
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Quote(tt.distanceKm, tt.vehicle)
			if err != nil {
				t.Fatalf("Quote: %v", err)
			}
			if got.Amount != tt.want {
				t.Errorf("Quote(%v, %s) = %d, want %d", tt.distanceKm, tt.vehicle, got.Amount, tt.want)
			}
			if got.Currency != Currency {
				t.Errorf("currency = %q", got.Currency)
			}
		})
	}
}

// Multiplier law: car and van fares are fixed multiples of the bike fare for
// any distance, and every fare is a non-negative integer.
func TestQuote_MultiplierLaw(t *testing.T) {
	for d := 0.0; d <= 120; d += 0.7 {
		bike, err := Quote(d, VehicleBike)
		if err != nil {
			t.Fatalf("bike quote at %f: %v", d, err)
		}
		car, _ := Quote(d, VehicleCar)
		van, _ := Quote(d, VehicleVan)

		wantBike := int64(math.Ceil((500+250*d)/100-1e-9) * 100)
		if bike.Amount != wantBike {
			t.Fatalf("bike fare at %f = %d, want %d", d, bike.Amount, wantBike)
		}
		if car.Amount*2 != bike.Amount*3 {
			t.Errorf("car fare at %f = %d, want 1.5x bike %d", d, car.Amount, bike.Amount)
		}
		if van.Amount*2 != bike.Amount*5 {
			t.Errorf("van fare at %f = %d, want 2.5x bike %d", d, van.Amount, bike.Amount)
		}
		if bike.Amount < 0 {
			t.Errorf("negative fare at %f", d)
		}
	}
}

func TestQuote_Invalid(t *testing.T) {
	if _, err := Quote(-1, VehicleBike); err != ErrBadDistance {
		t.Errorf("negative distance: err = %v", err)
	}
	if _, err := Quote(math.NaN(), VehicleBike); err != ErrBadDistance {
		t.Errorf("NaN distance: err = %v", err)
	}
	if _, err := Quote(1, Vehicle("rocket")); err != ErrBadVehicle {
		t.Errorf("unknown vehicle: err = %v", err)
	}
}
