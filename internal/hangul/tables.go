package hangul

import "github.com/samber/lo"

// Choseong is the index of a leading consonant, 0 through 18.
type Choseong uint8

// Jungseong is the index of a vowel, 0 through 20.
type Jungseong uint8

// Jongseong is the trailing slot of a syllable. Zero means the syllable has no
// trailing consonant; 1 through 27 select a trailing consonant.
type Jongseong uint8

const (
	ChoseongCount  = 19
	JungseongCount = 21
	// JongseongCount includes the empty slot.
	JongseongCount = 28

	NoJongseong Jongseong = 0
)

var (
	choList  = []rune{'ㄱ', 'ㄲ', 'ㄴ', 'ㄷ', 'ㄸ', 'ㄹ', 'ㅁ', 'ㅂ', 'ㅃ', 'ㅅ', 'ㅆ', 'ㅇ', 'ㅈ', 'ㅉ', 'ㅊ', 'ㅋ', 'ㅌ', 'ㅍ', 'ㅎ'}
	jungList = []rune{'ㅏ', 'ㅐ', 'ㅑ', 'ㅒ', 'ㅓ', 'ㅔ', 'ㅕ', 'ㅖ', 'ㅗ', 'ㅘ', 'ㅙ', 'ㅚ', 'ㅛ', 'ㅜ', 'ㅝ', 'ㅞ', 'ㅟ', 'ㅠ', 'ㅡ', 'ㅢ', 'ㅣ'}
	jongList = []rune{0, 'ㄱ', 'ㄲ', 'ㄳ', 'ㄴ', 'ㄵ', 'ㄶ', 'ㄷ', 'ㄹ', 'ㄺ', 'ㄻ', 'ㄼ', 'ㄽ', 'ㄾ', 'ㄿ', 'ㅀ', 'ㅁ', 'ㅂ', 'ㅄ', 'ㅅ', 'ㅆ', 'ㅇ', 'ㅈ', 'ㅊ', 'ㅋ', 'ㅌ', 'ㅍ', 'ㅎ'}
)

type compoundEntry struct {
	symbol rune
	parts  [2]rune
}

// compound lists every compound jamo next to the two atomic jamo it fuses,
// in typing order. The split and join tables are both derived from it.
var compound = []compoundEntry{
	{'ㅘ', [2]rune{'ㅗ', 'ㅏ'}},
	{'ㅙ', [2]rune{'ㅗ', 'ㅐ'}},
	{'ㅚ', [2]rune{'ㅗ', 'ㅣ'}},
	{'ㅝ', [2]rune{'ㅜ', 'ㅓ'}},
	{'ㅞ', [2]rune{'ㅜ', 'ㅔ'}},
	{'ㅟ', [2]rune{'ㅜ', 'ㅣ'}},
	{'ㅢ', [2]rune{'ㅡ', 'ㅣ'}},
	{'ㄳ', [2]rune{'ㄱ', 'ㅅ'}},
	{'ㄵ', [2]rune{'ㄴ', 'ㅈ'}},
	{'ㄶ', [2]rune{'ㄴ', 'ㅎ'}},
	{'ㄺ', [2]rune{'ㄹ', 'ㄱ'}},
	{'ㄻ', [2]rune{'ㄹ', 'ㅁ'}},
	{'ㄼ', [2]rune{'ㄹ', 'ㅂ'}},
	{'ㄽ', [2]rune{'ㄹ', 'ㅅ'}},
	{'ㄾ', [2]rune{'ㄹ', 'ㅌ'}},
	{'ㄿ', [2]rune{'ㄹ', 'ㅍ'}},
	{'ㅀ', [2]rune{'ㄹ', 'ㅎ'}},
	{'ㅄ', [2]rune{'ㅂ', 'ㅅ'}},
}

var (
	splitTable = lo.SliceToMap(compound, func(c compoundEntry) (rune, [2]rune) {
		return c.symbol, c.parts
	})
	joinTable = lo.Invert(splitTable)
)

var (
	choseongIndex  = buildIndex(choList)
	jungseongIndex = buildIndex(jungList)
	jongseongIndex = buildIndex(jongList[1:])
)

func buildIndex(list []rune) map[rune]int {
	idx := make(map[rune]int, len(list))
	for i, ch := range list {
		idx[ch] = i
	}
	return idx
}

// Split returns the two atomic jamo a compound jamo is made of.
func Split(r rune) ([2]rune, bool) {
	parts, ok := splitTable[r]
	return parts, ok
}

// Join returns the compound jamo formed by a followed by b.
func Join(a, b rune) (rune, bool) {
	r, ok := joinTable[[2]rune{a, b}]
	return r, ok
}

func (c Choseong) Valid() bool  { return int(c) < ChoseongCount }
func (v Jungseong) Valid() bool { return int(v) < JungseongCount }
func (t Jongseong) Valid() bool { return int(t) < JongseongCount }

// Rune returns the compatibility jamo for the index, or 0 when out of range.
func (c Choseong) Rune() rune {
	if !c.Valid() {
		return 0
	}
	return choList[c]
}

func (v Jungseong) Rune() rune {
	if !v.Valid() {
		return 0
	}
	return jungList[v]
}

// Rune returns 0 for NoJongseong.
func (t Jongseong) Rune() rune {
	if !t.Valid() {
		return 0
	}
	return jongList[t]
}

func ChoseongOf(r rune) (Choseong, bool) {
	i, ok := choseongIndex[r]
	return Choseong(i), ok
}

func JungseongOf(r rune) (Jungseong, bool) {
	i, ok := jungseongIndex[r]
	return Jungseong(i), ok
}

// JongseongOf maps a trailing consonant to its slot (1 through 27). The
// empty slot has no rune, so 0 never matches.
func JongseongOf(r rune) (Jongseong, bool) {
	i, ok := jongseongIndex[r]
	if !ok {
		return NoJongseong, false
	}
	return Jongseong(i + 1), true
}

func IsLeading(r rune) bool {
	_, ok := choseongIndex[r]
	return ok
}

func IsVowel(r rune) bool {
	_, ok := jungseongIndex[r]
	return ok
}

func IsTrailing(r rune) bool {
	_, ok := jongseongIndex[r]
	return ok
}
