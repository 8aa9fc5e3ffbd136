package unicode

import (
	"sort"

	"github.com/light-std/ls/alloc"
	"github.com/light-std/ls/container/xstring"
)

// MakeStringNormalizedNFC implements canonical decomposition, canonical
// ordering, and canonical composition (§4.11). Invalid UTF-8 input yields
// an empty (null) string without allocating.
func MakeStringNormalizedNFC(s xstring.String) xstring.String {
	if xstring.FindInvalid(s.Bytes) != -1 {
		return xstring.String{}
	}

	runes := decomposeAll(s.Runes())
	sortByCombiningClassStable(runes)
	composed := composeRuns(runes)

	out := xstring.New(alloc.Default)
	for _, cp := range composed {
		out.AppendCodePoint(cp)
	}
	return out
}

// decomposeAll expands every input code point into its flat canonical
// decomposition, recursively, per §4.11 step 2.
func decomposeAll(in []rune) []rune {
	out := make([]rune, 0, len(in))
	var walk func(cp rune)
	walk = func(cp rune) {
		if parts, ok := decomposition[cp]; ok {
			for _, p := range parts {
				walk(p)
			}
			return
		}
		out = append(out, cp)
	}
	for _, cp := range in {
		walk(cp)
	}
	return out
}

// sortByCombiningClassStable reorders maximal runs of non-starters (CCC>0)
// by ascending combining class using a stable sort, per §4.11 step 3.
// Starters (CCC==0) are never moved relative to the runs they delimit.
func sortByCombiningClassStable(runes []rune) {
	i := 0
	for i < len(runes) {
		if CombiningClass(runes[i]) == 0 {
			i++
			continue
		}
		j := i
		for j < len(runes) && CombiningClass(runes[j]) != 0 {
			j++
		}
		run := runes[i:j]
		sort.SliceStable(run, func(a, b int) bool {
			return CombiningClass(run[a]) < CombiningClass(run[b])
		})
		i = j
	}
}

// composeRuns implements §4.11 step 4: walk left to right keeping a
// current starter and its position; for each following code point with
// CCC c, attempt composition with the starter, succeeding only if no
// intervening code point has CCC >= c.
func composeRuns(runes []rune) []rune {
	if len(runes) == 0 {
		return runes
	}
	out := make([]rune, 0, len(runes))
	out = append(out, runes[0])
	starterPos := 0
	maxInterveningCCC := uint8(0)

	for i := 1; i < len(runes); i++ {
		cp := runes[i]
		ccc := CombiningClass(cp)
		if starterPos >= 0 {
			if composedCP, ok := composition[compositionKey{out[starterPos], cp}]; ok && maxInterveningCCC < ccc {
				out[starterPos] = composedCP
				continue
			}
		}
		out = append(out, cp)
		if ccc == 0 {
			starterPos = len(out) - 1
			maxInterveningCCC = 0
		} else if ccc > maxInterveningCCC {
			maxInterveningCCC = ccc
		}
	}
	return out
}
