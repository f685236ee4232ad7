package convert

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/unicode/norm"

	"hanim/internal/layout"
)

func dubeolsik(t *testing.T) *layout.Layout {
	t.Helper()
	l, err := layout.Load(layout.DefaultName)
	require.NoError(t, err)
	return l
}

func TestLine(t *testing.T) {
	l := dubeolsik(t)
	tests := []struct {
		in   string
		want string
	}{
		{"dkssudgktpdy", "안녕하세요"},
		{"gksrmf, wkf ehlsek!", "한글, 잘 된다!"},
		{"dlTek", "있다"},
		{"123 rkqt", "123 값"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Line(l, tt.in), "Line(%q)", tt.in)
	}
}

func TestLineMergesDecomposedInput(t *testing.T) {
	l := dubeolsik(t)
	// 가 written as conjoining jamo, then a trailing ㄱ typed after it
	decomposed := norm.NFD.String("가")
	require.Len(t, []rune(decomposed), 2)

	assert.Equal(t, "각", Line(l, decomposed+"r"))
}

func TestStream(t *testing.T) {
	var out bytes.Buffer
	in := strings.NewReader("gksrmf\n\ndkssud\n")

	require.NoError(t, Stream(t.Context(), in, &out, dubeolsik(t)))
	assert.Equal(t, "한글\n\n안녕\n", out.String())
}

func TestStreamCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	err := Stream(ctx, strings.NewReader("gksrmf\n"), &bytes.Buffer{}, dubeolsik(t))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFilesKeepsArgumentOrder(t *testing.T) {
	dir := t.TempDir()
	inputs := []string{"gksrmf", "dkssud", "rkqt", "dnjs"}
	var paths []string
	for i, text := range inputs {
		path := filepath.Join(dir, string(rune('a'+i))+".txt")
		require.NoError(t, os.WriteFile(path, []byte(text+"\n"), 0o600))
		paths = append(paths, path)
	}

	var out bytes.Buffer
	require.NoError(t, Files(t.Context(), paths, &out, dubeolsik(t), 3))
	assert.Equal(t, "한글\n안녕\n값\n원\n", out.String())
}

func TestFilesMissing(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.txt")
	err := Files(t.Context(), []string{missing}, &bytes.Buffer{}, dubeolsik(t), 0)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
