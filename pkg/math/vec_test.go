package math

import (
	"math"
	"testing"
)

func TestVec3Add(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{4, 5, 6}
	got := a.Add(b)
	want := Vec3{5, 7, 9}
	if got != want {
		t.Errorf("Vec3.Add() = %v, want %v", got, want)
	}
}

func TestVec3Cross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	got := x.Cross(y)
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestVec3Length(t *testing.T) {
	v := Vec3{2, 3, 6}
	if got := v.Length(); got != 7 {
		t.Errorf("Vec3.Length() = %v, want 7", got)
	}
	if got := v.DistanceSquared(Vec3{}); got != 49 {
		t.Errorf("Vec3.DistanceSquared() = %v, want 49", got)
	}
}

func TestVec3Lerp(t *testing.T) {
	a := Vec3{0, 0, 0}
	b := Vec3{10, -20, 30}

	tests := []struct {
		t    float64
		want Vec3
	}{
		{0, a},
		{1, b},
		{0.5, Vec3{5, -10, 15}},
	}
	for _, tt := range tests {
		if got := a.Lerp(b, tt.t); got != tt.want {
			t.Errorf("Lerp(%v) = %v, want %v", tt.t, got, tt.want)
		}
	}
}

func TestVec3IsFinite(t *testing.T) {
	if !(Vec3{1, 2, 3}).IsFinite() {
		t.Error("finite vector reported as non-finite")
	}
	if (Vec3{math.NaN(), 0, 0}).IsFinite() {
		t.Error("NaN vector reported as finite")
	}
	if (Vec3{0, math.Inf(-1), 0}).IsFinite() {
		t.Error("Inf vector reported as finite")
	}
}

func TestBoxFromPoints(t *testing.T) {
	b := BoxFromPoints([]Vec3{{1, 5, -2}, {-3, 2, 4}, {0, 0, 0}})
	if b.Min != (Vec3{-3, 0, -2}) {
		t.Errorf("Min = %v, want (-3, 0, -2)", b.Min)
	}
	if b.Max != (Vec3{1, 5, 4}) {
		t.Errorf("Max = %v, want (1, 5, 4)", b.Max)
	}
	if !b.Valid() {
		t.Error("box from points should be valid")
	}
}

func TestBoxValid(t *testing.T) {
	tests := []struct {
		name string
		box  Box
		want bool
	}{
		{"unit", Box{Vec3{0, 0, 0}, Vec3{1, 1, 1}}, true},
		{"flat", Box{Vec3{0, 0, 0}, Vec3{1, 0, 1}}, true},
		{"inverted", Box{Vec3{0, 0, 0}, Vec3{1, -1, 1}}, false},
		{"empty", EmptyBox(), false},
		{"nan", Box{Vec3{math.NaN(), 0, 0}, Vec3{1, 1, 1}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.box.Valid(); got != tt.want {
				t.Errorf("Valid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVec3Conversions(t *testing.T) {
	v := Vec3{1.5, -2, 3.25}
	r := v.R3()
	if r.X != v.X || r.Y != v.Y || r.Z != v.Z {
		t.Errorf("R3() = %v, want %v", r, v)
	}
	if got := FromArray([3]float64{1.5, -2, 3.25}); got != v {
		t.Errorf("FromArray = %v, want %v", got, v)
	}
}

func TestScaleTransformAll(t *testing.T) {
	pts := []Vec3{{1, 2, 3}, {-1, 0, 0.5}}
	Scale(2, 3, -1).TransformAll(pts)
	want := []Vec3{{2, 6, -3}, {-2, 0, -0.5}}
	for i := range want {
		if pts[i] != want[i] {
			t.Errorf("point %d = %v, want %v", i, pts[i], want[i])
		}
	}
}
