package stats

import (
	"math"
	"testing"
)

func TestGaussianStatistics(t *testing.T) {
	s := NewSamplerWithSeed(1)

	const n = 100000
	sum := 0.0
	sumSq := 0.0
	for i := 0; i < n; i++ {
		v := s.Gaussian(0, 1)
		sum += v
		sumSq += v * v
	}

	mean := sum / n
	std := math.Sqrt(sumSq/n - mean*mean)

	if math.Abs(mean) > 0.02 {
		t.Errorf("sample mean = %v, want within 0.02 of 0", mean)
	}
	if math.Abs(std-1) > 0.02 {
		t.Errorf("sample std = %v, want within 0.02 of 1", std)
	}
}

func TestGaussianShiftScale(t *testing.T) {
	s := NewSamplerWithSeed(2)

	const n = 100000
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += s.Gaussian(5000, 300)
	}

	mean := sum / n
	if math.Abs(mean-5000) > 300*0.02*10 {
		t.Errorf("sample mean = %v, want near 5000", mean)
	}
}

func TestGaussianFinite(t *testing.T) {
	s := NewSamplerWithSeed(3)
	for i := 0; i < 10000; i++ {
		v := s.Gaussian(0, 1)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("non-finite sample %v at draw %d", v, i)
		}
	}
}
