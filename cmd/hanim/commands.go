package main

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/peterbourgon/ff/v4"
	"github.com/samber/lo"

	"hanim/internal/convert"
	"hanim/internal/layout"
	"hanim/internal/terminal"
	"hanim/internal/tui"
)

func (r *rootCommand) typeCommand() *ff.Command {
	fs := ff.NewFlagSet("type").SetParent(r.flags)
	return &ff.Command{
		Name:      "type",
		Usage:     "hanim type [FLAGS]",
		ShortHelp: "raw-mode line editor; committed lines go to stdout",
		Flags:     fs,
		Exec: func(ctx context.Context, _ []string) error {
			rt, err := r.setup(true)
			if err != nil {
				return err
			}
			defer rt.close()

			editor := terminal.NewEditor(rt.session(), os.Stdout, os.Stderr, rt.log)
			return editor.Run(ctx)
		},
	}
}

func (r *rootCommand) tuiCommand() *ff.Command {
	fs := ff.NewFlagSet("tui").SetParent(r.flags)
	return &ff.Command{
		Name:      "tui",
		Usage:     "hanim tui [FLAGS]",
		ShortHelp: "full-screen editor; committed lines are printed on exit",
		Flags:     fs,
		Exec: func(ctx context.Context, _ []string) error {
			rt, err := r.setup(true)
			if err != nil {
				return err
			}
			defer rt.close()

			lines, err := tui.Run(ctx, rt.session(), rt.log)
			for _, line := range lines {
				fmt.Println(line)
			}
			return err
		},
	}
}

func (r *rootCommand) convertCommand() *ff.Command {
	fs := ff.NewFlagSet("convert").SetParent(r.flags)
	workers := fs.IntLong("workers", runtime.NumCPU(), "files converted in parallel")
	remote := fs.StringLong("remote", "", "convert stdin through the server on this socket")
	return &ff.Command{
		Name:      "convert",
		Usage:     "hanim convert [FLAGS] [FILE...]",
		ShortHelp: "convert text typed with Hangul input off; reads stdin without files",
		Flags:     fs,
		Exec: func(ctx context.Context, args []string) error {
			rt, err := r.setup(false)
			if err != nil {
				return err
			}
			defer rt.close()

			if len(args) == 0 {
				if *remote != "" {
					return convert.RemoteStream(ctx, *remote, os.Stdin, os.Stdout, rt.layout, rt.log)
				}
				return convert.Stream(ctx, os.Stdin, os.Stdout, rt.layout)
			}
			rt.log.Debug("converting files", "count", len(args), "workers", *workers)
			return convert.Files(ctx, args, os.Stdout, rt.layout, *workers)
		},
	}
}

func (r *rootCommand) serveCommand() *ff.Command {
	fs := ff.NewFlagSet("serve").SetParent(r.flags)
	socket := fs.StringLong("socket", convert.DefaultSocketPath(), "unix socket to listen on")
	return &ff.Command{
		Name:      "serve",
		Usage:     "hanim serve [FLAGS]",
		ShortHelp: "answer conversion requests on a unix socket",
		Flags:     fs,
		Exec: func(ctx context.Context, _ []string) error {
			rt, err := r.setup(false)
			if err != nil {
				return err
			}
			defer rt.close()

			srv, err := convert.Listen(*socket, rt.layout, rt.log)
			if err != nil {
				return err
			}
			defer srv.Close()
			return srv.Serve(ctx)
		},
	}
}

func (r *rootCommand) layoutsCommand() *ff.Command {
	fs := ff.NewFlagSet("layouts").SetParent(r.flags)
	return &ff.Command{
		Name:      "layouts",
		Usage:     "hanim layouts [FLAGS]",
		ShortHelp: "list layouts and print the active key map",
		Flags:     fs,
		Exec: func(_ context.Context, _ []string) error {
			rt, err := r.setup(false)
			if err != nil {
				return err
			}
			defer rt.close()

			fmt.Printf("available: %s\n\n", strings.Join(layout.AvailableLayouts(), ", "))
			fmt.Print(describeLayout(rt.layout))
			return nil
		},
	}
}

func describeLayout(l *layout.Layout) string {
	rows := lo.Map(l.Keys(), func(code rune, _ int) string {
		entry, _ := l.Entry(code)
		if entry.Shifted != 0 && entry.Shifted != entry.Normal {
			return fmt.Sprintf("  %c  %c  %c", code, entry.Normal, entry.Shifted)
		}
		return fmt.Sprintf("  %c  %c", code, entry.Normal)
	})
	return fmt.Sprintf("%s\n%s\n", l.Name(), strings.Join(rows, "\n"))
}
