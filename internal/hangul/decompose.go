package hangul

// DecomposeNonAtomic splits a syllable into two or three jamo without
// expanding compound vowels or clusters. It returns nil for anything that is
// not a precomposed syllable.
func DecomposeNonAtomic(syllable rune) []rune {
	l, v, t, ok := Decode(syllable)
	if !ok {
		return nil
	}
	if t == NoJongseong {
		return []rune{l.Rune(), v.Rune()}
	}
	return []rune{l.Rune(), v.Rune(), t.Rune()}
}

// DecomposeAtomic splits a syllable all the way down to atomic jamo, so 'ㅘ'
// becomes 'ㅗ', 'ㅏ' and 'ㄼ' becomes 'ㄹ', 'ㅂ'. A standalone jamo yields
// itself, split when it is a compound. Anything else yields nil.
func DecomposeAtomic(r rune) []rune {
	var parts []rune
	switch {
	case IsSyllable(r):
		parts = DecomposeNonAtomic(r)
	case IsJamo(r):
		parts = []rune{r}
	default:
		return nil
	}
	return expand(parts)
}

func expand(parts []rune) []rune {
	out := make([]rune, 0, len(parts)*2)
	for _, ch := range parts {
		if pair, ok := splitTable[ch]; ok {
			out = append(out, pair[0], pair[1])
			continue
		}
		out = append(out, ch)
	}
	return out
}
