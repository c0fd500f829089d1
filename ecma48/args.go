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

package ecma48

// ArgVector is a CSI parameter list: one slice of sub-arguments per
// semicolon-separated parameter. A nil inner slice means the parameter was
// entirely omitted (e.g. the middle field of "1;;3"); a slice containing a
// single zero means the parameter was explicitly "0".
type ArgVector [][]int

// QueryArgCount returns the number of (possibly empty) parameters.
func (a ArgVector) QueryArgCount() int { return len(a) }

// QuerySubArgCount returns the number of sub-arguments of parameter i, or 0
// if i is out of range or the parameter was omitted.
func (a ArgVector) QuerySubArgCount(i int) int {
	if i < 0 || i >= len(a) {
		return 0
	}
	return len(a[i])
}

// HasNoSubArgsFrom reports whether parameter i has no sub-arguments beyond
// the first (i.e. it was not given a colon-separated suffix).
func (a ArgVector) HasNoSubArgsFrom(i int) bool {
	return a.QuerySubArgCount(i) <= 1
}

// GetArgZeroIfEmpty returns sub-argument j of parameter i, treating an
// omitted parameter or sub-argument as 0.
func (a ArgVector) GetArgZeroIfEmpty(i, j int) int {
	return a.subArg(i, j, 0)
}

// GetArgOneIfZeroOrEmpty returns sub-argument j of parameter i, treating an
// omitted parameter, omitted sub-argument, or explicit zero as 1. This is
// the common case for CSI movement counts (CUU/CUD/... default to 1 and
// treat 0 the same as omitted).
func (a ArgVector) GetArgOneIfZeroOrEmpty(i, j int) int {
	v := a.subArg(i, j, 0)
	if v == 0 {
		return 1
	}
	return v
}

// GetArgZDIfZeroOneIfEmpty returns 0 for an explicit zero or an explicit
// value of zero, but 1 when the parameter was omitted entirely ("zero
// default" semantics used by a handful of DEC sequences that distinguish
// "CSI 0 X" from bare "CSI X").
func (a ArgVector) GetArgZDIfZeroOneIfEmpty(i, j int) int {
	if i < 0 || i >= len(a) || len(a[i]) == 0 {
		return 1
	}
	if j < 0 || j >= len(a[i]) {
		return 0
	}
	return a[i][j]
}

// GetArgThisIfZeroOrEmpty returns sub-argument j of parameter i, treating an
// omitted parameter/sub-argument or explicit zero as the caller-supplied
// default instead of a fixed constant.
func (a ArgVector) GetArgThisIfZeroOrEmpty(i, j, def int) int {
	v := a.subArg(i, j, 0)
	if v == 0 {
		return def
	}
	return v
}

func (a ArgVector) subArg(i, j, def int) int {
	if i < 0 || i >= len(a) || j < 0 || j >= len(a[i]) {
		return def
	}
	return a[i][j]
}

// MinimumOneArg returns a, padded with an explicit-zero first parameter if
// a is empty, so that callers may always index parameter 0 safely.
func MinimumOneArg(a ArgVector) ArgVector {
	if len(a) == 0 {
		return ArgVector{{0}}
	}
	return a
}

// CollapseArgsToSubArgs normalises the historically common semicolon form
// of the ISO 8613-6 colour selectors ("38;5;N" or "38;2;r;g;b", parsed as
// separate parameters) into the payload that follows the 38/48 in the colon
// form: {5, N} or {2, r, g, b} (a colour-space slot is not kept). rest is
// args with the selector and its payload parameters removed; the 38/48
// parameter itself stays in rest. at is the index of the selector parameter
// itself (5 or 2), i.e. the parameter immediately following the 38/48
// parameter.
func CollapseArgsToSubArgs(args ArgVector, at int) (collapsed []int, rest ArgVector) {
	if at < 0 || at >= len(args) {
		return nil, args
	}
	if len(args[at]) > 1 {
		// already in colon form
		return args[at], append(append(ArgVector{}, args[:at]...), args[at+1:]...)
	}
	selector := 0
	if len(args[at]) == 1 {
		selector = args[at][0]
	}
	switch selector {
	case 5:
		if at+1 < len(args) {
			idx := 0
			if len(args[at+1]) > 0 {
				idx = args[at+1][0]
			}
			out := []int{5, idx}
			rest = append(append(ArgVector{}, args[:at]...), args[at+2:]...)
			return out, rest
		}
	case 2:
		// accept both the 5-parameter standard form (38;2;cs;r;g;b) and
		// the common 4-parameter form that omits the colour-space slot
		// (38;2;r;g;b).
		if at+4 < len(args) {
			r := first(args[at+2])
			g := first(args[at+3])
			b := first(args[at+4])
			rest = append(append(ArgVector{}, args[:at]...), args[at+5:]...)
			return []int{2, r, g, b}, rest
		}
		if at+3 < len(args) {
			r := first(args[at+1])
			g := first(args[at+2])
			b := first(args[at+3])
			rest = append(append(ArgVector{}, args[:at]...), args[at+4:]...)
			return []int{2, r, g, b}, rest
		}
	}
	return nil, args
}

func first(sub []int) int {
	if len(sub) == 0 {
		return 0
	}
	return sub[0]
}
