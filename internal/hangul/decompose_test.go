package hangul

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecomposeNonAtomic(t *testing.T) {
	tests := []struct {
		in   rune
		want string
	}{
		{'안', "ㅇㅏㄴ"},
		{'녕', "ㄴㅕㅇ"},
		{'가', "ㄱㅏ"},
		{'와', "ㅇㅘ"},
		{'값', "ㄱㅏㅄ"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, string(DecomposeNonAtomic(tt.in)), "%c", tt.in)
	}

	assert.Nil(t, DecomposeNonAtomic('a'))
	assert.Nil(t, DecomposeNonAtomic('ㄱ'))
}

func TestDecomposeAtomic(t *testing.T) {
	tests := []struct {
		in   rune
		want string
	}{
		{'안', "ㅇㅏㄴ"},
		{'왜', "ㅇㅗㅐ"},
		{'값', "ㄱㅏㅂㅅ"},
		{'닭', "ㄷㅏㄹㄱ"},
		{'뷁', "ㅂㅜㅔㄹㄱ"},
		{'의', "ㅇㅡㅣ"},
		{'ㄱ', "ㄱ"},
		{'ㅘ', "ㅗㅏ"},
		{'ㄼ', "ㄹㅂ"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, string(DecomposeAtomic(tt.in)), "%c", tt.in)
	}

	assert.Nil(t, DecomposeAtomic('a'))
	assert.Nil(t, DecomposeAtomic(' '))
}

func TestAtomicMatchesExpandedNonAtomic(t *testing.T) {
	for r := SyllableBase; r <= SyllableLast; r++ {
		var want []rune
		for _, ch := range DecomposeNonAtomic(r) {
			if pair, ok := Split(ch); ok {
				want = append(want, pair[0], pair[1])
			} else {
				want = append(want, ch)
			}
		}
		got := DecomposeAtomic(r)
		require.Equal(t, want, got, "%c", r)
		for _, ch := range got {
			_, compound := Split(ch)
			require.False(t, compound, "%c still holds compound %c", r, ch)
		}
	}
}

func TestAtomicRecomposition(t *testing.T) {
	for r := SyllableBase; r <= SyllableLast; r++ {
		require.Equal(t, string(r), Compose(DecomposeAtomic(r)), "%c", r)
	}
}

func TestSplitJoinInverse(t *testing.T) {
	seen := make(map[[2]rune]rune)
	for _, entry := range compound {
		c := entry.symbol
		pair, ok := Split(c)
		require.True(t, ok, "%c", c)

		joined, ok := Join(pair[0], pair[1])
		require.True(t, ok, "%c%c", pair[0], pair[1])
		assert.Equal(t, c, joined)

		prev, dup := seen[pair]
		assert.False(t, dup, "%c and %c share a split", prev, c)
		seen[pair] = c
	}
	assert.Len(t, joinTable, len(splitTable))

	_, ok := Join('ㄱ', 'ㄱ')
	assert.False(t, ok)
}
