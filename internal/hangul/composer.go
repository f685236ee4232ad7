package hangul

import (
	"fmt"
	"strings"
)

// Compose turns a sequence of atomic jamo into text. Adjacent pairs are first
// fused into compound jamo where that is unambiguous, then the sequence is
// cut greedily into syllable-sized chunks. Chunks that do not form a valid
// syllable are written back as the jamo they were made of, so no input is
// ever lost.
func Compose(jamo []rune) string {
	seq := JoinJamo(jamo)

	var b strings.Builder
	b.Grow(len(seq) * 3)

	i := 0
	for i < len(seq) {
		size := NextChunkSize(seq, i)
		if size == 0 {
			for _, ch := range seq[i:] {
				b.WriteRune(ch)
			}
			break
		}

		if syllable, ok := encodeChunk(seq[i : i+size]); ok {
			b.WriteRune(syllable)
		} else {
			for _, ch := range seq[i : i+size] {
				b.WriteRune(ch)
			}
		}
		i += size
	}
	return b.String()
}

// ComposeString is Compose over the runes of s.
func ComposeString(s string) string {
	return Compose([]rune(s))
}

// JoinJamo fuses adjacent atomic pairs found in the join table. A pair is
// left alone when the jamo right after it is a vowel: in that case the second
// half of the pair is the leading consonant of the next syllable (ㄹ+ㅎ in
// ㅁㅏㄹㅎㅐ must stay apart to give 말해).
func JoinJamo(jamo []rune) []rune {
	out := make([]rune, 0, len(jamo))
	for i := 0; i < len(jamo); i++ {
		ch := jamo[i]
		if i == len(jamo)-1 {
			out = append(out, ch)
			continue
		}

		joined, ok := joinTable[[2]rune{ch, jamo[i+1]}]
		if ok && i+2 < len(jamo) && IsVowel(jamo[i+2]) {
			ok = false
		}
		if ok {
			out = append(out, joined)
			i++
			continue
		}
		out = append(out, ch)
	}
	return out
}

// NextChunkSize decides how many symbols starting at offset make up the next
// syllable: 2 (leading + vowel), 3 (with a trailing consonant), or 0 when
// fewer than two symbols remain.
func NextChunkSize(seq []rune, offset int) int {
	remaining := len(seq) - offset
	switch {
	case remaining > 2:
		if !IsTrailing(seq[offset+2]) {
			return 2
		}
		// The candidate trailing consonant leads the next syllable instead.
		if remaining > 3 && IsVowel(seq[offset+3]) {
			return 2
		}
		return 3
	case remaining == 2:
		return 2
	default:
		return 0
	}
}

func encodeChunk(chunk []rune) (rune, bool) {
	switch len(chunk) {
	case 2:
		return EncodeJamo(chunk[0], chunk[1], 0)
	case 3:
		if chunk[2] == 0 {
			return 0, false
		}
		return EncodeJamo(chunk[0], chunk[1], chunk[2])
	default:
		panic(fmt.Sprintf("hangul: invalid chunk length %d", len(chunk)))
	}
}
