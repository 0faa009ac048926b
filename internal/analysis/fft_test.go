package analysis

import (
	"math"
	"testing"
)

func TestFFTConstantSignal(t *testing.T) {
	data := []float64{1, 1, 1, 1}
	result := FFT(data)

	if len(result) != 4 {
		t.Fatalf("expected 4 bins, got %d", len(result))
	}
	if math.Abs(real(result[0])-4) > 1e-9 {
		t.Errorf("DC bin should be 4, got %v", result[0])
	}
	for i := 1; i < len(result); i++ {
		if cmplxAbs(result[i]) > 1e-9 {
			t.Errorf("bin %d should be zero for constant input, got %v", i, result[i])
		}
	}
}

func cmplxAbs(c complex128) float64 {
	return math.Hypot(real(c), imag(c))
}

func TestFFTImpulse(t *testing.T) {
	// A unit impulse spreads evenly across every frequency bin.
	data := make([]float64, 16)
	data[0] = 1

	for i, bin := range FFT(data) {
		if math.Abs(cmplxAbs(bin)-1) > 1e-9 {
			t.Errorf("bin %d should have magnitude 1, got %v", i, bin)
		}
	}
}

func TestPowerSpectrumFindsSine(t *testing.T) {
	n := 256
	cycles := 8.0
	data := make([]float64, n)
	for i := range data {
		data[i] = math.Sin(2 * math.Pi * cycles * float64(i) / float64(n))
	}

	ps := PowerSpectrum(data)

	maxIdx := 0
	for i := 1; i < len(ps); i++ {
		if ps[i] > ps[maxIdx] {
			maxIdx = i
		}
	}
	if maxIdx != int(cycles) {
		t.Errorf("expected peak at bin %d, got %d", int(cycles), maxIdx)
	}
}

func TestPadPow2(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{0, 1},
		{1, 1},
		{2, 2},
		{3, 4},
		{100, 128},
		{256, 256},
	}
	for _, tt := range tests {
		padded := PadPow2(make([]float64, tt.in))
		if len(padded) != tt.want {
			t.Errorf("len %d: expected padded to %d, got %d", tt.in, tt.want, len(padded))
		}
	}
}

func TestPadPow2PreservesData(t *testing.T) {
	data := []float64{1, 2, 3}
	padded := PadPow2(data)

	for i, v := range data {
		if padded[i] != v {
			t.Errorf("value %d changed: %f", i, padded[i])
		}
	}
	for i := len(data); i < len(padded); i++ {
		if padded[i] != 0 {
			t.Errorf("padding %d should be zero, got %f", i, padded[i])
		}
	}
}
