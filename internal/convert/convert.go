// Package convert replays Latin keystrokes typed on a Korean keyboard into
// Hangul, for text that was entered with the input method switched off.
package convert

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"unicode"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/unicode/norm"

	"hanim/internal/backend"
	"hanim/internal/engine"
	"hanim/internal/layout"
	"hanim/internal/types"
)

const maxLineSize = 1024 * 1024

// Line types line through a fresh Hangul session. Letters are mapped through
// the layout, uppercase letters as shifted keys; everything else is copied.
func Line(l *layout.Layout, line string) string {
	session := engine.New(l, engine.WithMode(types.ModeHangul))
	buf := backend.NewTextBuffer(0)

	for _, r := range norm.NFC.String(line) {
		if unicode.IsLetter(r) {
			session.Type(buf, string(r), unicode.IsUpper(r))
			continue
		}
		buf.WriteText(string(r))
	}
	return buf.Text()
}

// Stream converts r line by line into w.
func Stream(ctx context.Context, r io.Reader, w io.Writer, l *layout.Layout) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), maxLineSize)
	writer := bufio.NewWriter(w)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := writer.WriteString(Line(l, scanner.Text())); err != nil {
			return err
		}
		if err := writer.WriteByte('\n'); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	return writer.Flush()
}

// Files converts the named files with up to workers running at once and
// writes the results to w in argument order.
func Files(ctx context.Context, paths []string, w io.Writer, l *layout.Layout, workers int) error {
	if workers < 1 {
		workers = 1
	}
	results := make([]bytes.Buffer, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, path := range paths {
		g.Go(func() error {
			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("opening %s: %w", path, err)
			}
			defer f.Close()

			if err := Stream(ctx, f, &results[i], l); err != nil {
				return fmt.Errorf("converting %s: %w", path, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i := range results {
		if _, err := results[i].WriteTo(w); err != nil {
			return err
		}
	}
	return nil
}
