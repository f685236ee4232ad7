package hangul

const (
	SyllableBase rune = 0xAC00
	SyllableLast rune = 0xD7A3

	// Hangul Compatibility Jamo. The dubeolsik layout emits characters from
	// this block, so it is the one checked by IsJamo.
	JamoFirst rune = 0x3130
	JamoLast  rune = 0x318F
)

// IsSyllable reports whether r is a precomposed Hangul syllable.
func IsSyllable(r rune) bool {
	return SyllableBase <= r && r <= SyllableLast
}

// IsJamo reports whether r lies in the Hangul Compatibility Jamo block.
func IsJamo(r rune) bool {
	return JamoFirst <= r && r <= JamoLast
}

// Mergeable reports whether a newly typed jamo may be merged into r.
func Mergeable(r rune) bool {
	return IsSyllable(r) || IsJamo(r)
}

// Encode builds the syllable for the given indices. It fails only when an
// index is out of range.
func Encode(l Choseong, v Jungseong, t Jongseong) (rune, bool) {
	if !l.Valid() || !v.Valid() || !t.Valid() {
		return 0, false
	}
	offset := (int(l)*JungseongCount+int(v))*JongseongCount + int(t)
	return SyllableBase + rune(offset), true
}

// Decode splits a syllable into its indices.
func Decode(r rune) (Choseong, Jungseong, Jongseong, bool) {
	if !IsSyllable(r) {
		return 0, 0, 0, false
	}
	base := int(r - SyllableBase)
	t := base % JongseongCount
	base /= JongseongCount
	v := base % JungseongCount
	l := base / JungseongCount
	return Choseong(l), Jungseong(v), Jongseong(t), true
}

// EncodeJamo is Encode over compatibility jamo. A zero trailing rune means no
// trailing consonant.
func EncodeJamo(leading, vowel, trailing rune) (rune, bool) {
	l, ok := ChoseongOf(leading)
	if !ok {
		return 0, false
	}
	v, ok := JungseongOf(vowel)
	if !ok {
		return 0, false
	}
	t := NoJongseong
	if trailing != 0 {
		if t, ok = JongseongOf(trailing); !ok {
			return 0, false
		}
	}
	return Encode(l, v, t)
}
