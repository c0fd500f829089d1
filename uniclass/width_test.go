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

package uniclass

import "testing"

func TestWidthBasics(t *testing.T) {
	tests := []struct {
		r    rune
		want int
	}{
		{'A', 1},
		{softHyphen, 0},
		{0x11A8, 0}, // Hangul Jamo trailing
		{'世', 2},
		{0x0301, 0}, // combining acute accent (Mn)
	}
	for _, tt := range tests {
		if got := Width(tt.r); got != tt.want {
			t.Errorf("Width(%U) = %d, want %d", tt.r, got, tt.want)
		}
	}
}

func TestCombineUnicodeComposesPrecomposedPair(t *testing.T) {
	r, ok := CombineUnicode('e', 0x0301) // e + combining acute -> é
	if !ok {
		t.Fatalf("expected e + combining-acute to compose")
	}
	if r != 'é' {
		t.Errorf("got %U, want %U", r, 'é')
	}
}

func TestCombineUnicodeRejectsNonComposingPair(t *testing.T) {
	if _, ok := CombineUnicode('x', 'y'); ok {
		t.Errorf("two unrelated letters should not compose")
	}
}

func TestPeculiarNonCombinerSpacingClone(t *testing.T) {
	r, ok := CombinePeculiarNonCombiner(0x0301)
	if !ok || r != 0x00B4 {
		t.Errorf("combining acute should downgrade to the spacing acute, got %U, %v", r, ok)
	}
	if _, ok := CombinePeculiarNonCombiner('a'); ok {
		t.Errorf("an ordinary letter has no spacing clone")
	}
}

func TestCombineDeadKeyTable(t *testing.T) {
	r, ok := CombineDeadKey(0x02CB, 'a')
	if !ok || r != 'à' {
		t.Errorf("CombineDeadKey(grave, a) = %U, %v, want à, true", r, ok)
	}
}
