// Copyright 2025 The TCell Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cellmodel

import "testing"

func TestMap16ColourFixups(t *testing.T) {
	tests := []struct {
		index uint8
		want  Colour
	}{
		{0, Colour{Alpha16, 0, 0, 0}},
		{4, Colour{Alpha16, 0x4B, 0x00, 0x82}},
		{7, Colour{Alpha16, 0xBF, 0xBF, 0xBF}},
		{8, Colour{Alpha16, 0xBF, 0xBF, 0xBF}}, // bright black aliases dark white
		{15, Colour{Alpha16, 0xFF, 0xFF, 0xFF}},
		{16, Colour{Alpha16, 0, 0, 0}}, // wraps modulo 16
	}
	for _, tt := range tests {
		got := Map16Colour(tt.index)
		if got != tt.want {
			t.Errorf("Map16Colour(%d) = %+v, want %+v", tt.index, got, tt.want)
		}
	}
}

func TestMap256ColourCube(t *testing.T) {
	tests := []struct {
		index uint8
		want  Colour
	}{
		{0, Colour{Alpha256, 0, 0, 0}},
		{16, Colour{Alpha256, 0, 0, 0}},   // cube origin
		{17, Colour{Alpha256, 0, 0, 95}},  // first step
		{21, Colour{Alpha256, 0, 0, 255}}, // last blue step
		{231, Colour{Alpha256, 255, 255, 255}},
		{232, Colour{Alpha256, 8, 8, 8}},
		{255, Colour{Alpha256, 238, 238, 238}},
	}
	for _, tt := range tests {
		got := Map256Colour(tt.index)
		if got != tt.want {
			t.Errorf("Map256Colour(%d) = %+v, want %+v", tt.index, got, tt.want)
		}
	}
}

func TestSquaredDistanceIncludesAlpha(t *testing.T) {
	a := Colour{AlphaTrue, 10, 10, 10}
	b := Colour{Alpha16, 10, 10, 10}
	if d := SquaredDistance(a, b); d == 0 {
		t.Fatalf("expected distinct alpha tags to produce nonzero distance, got 0")
	}
}

func TestNearestIndexedPicksExactMatch(t *testing.T) {
	palette := []Colour{Map16Colour(0), Map16Colour(1), Map16Colour(2)}
	idx, dist := NearestIndexed(Map16Colour(1), palette)
	if idx != 1 || dist != 0 {
		t.Errorf("NearestIndexed exact match: got idx=%d dist=%d, want idx=1 dist=0", idx, dist)
	}
}

func TestDimAndBrightClamp(t *testing.T) {
	if Dim(0x20) != 0 {
		t.Errorf("Dim below floor should clamp to 0")
	}
	if Bright(0xF0) != 0xFF {
		t.Errorf("Bright above ceiling should clamp to 0xFF")
	}
}
