// Command tuicat is a thin external driver exercising the terminal/editor
// core: it feeds a file through the VT Emulator and prints the resulting
// grid, or renders a markdown file's block structure.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/r3bl-org/tuicore/internal/gapbuffer"
	"github.com/r3bl-org/tuicore/internal/markdown"
	"github.com/r3bl-org/tuicore/internal/vt"
	"github.com/r3bl-org/tuicore/internal/vterm"
)

func main() {
	root := &cobra.Command{
		Use:   "tuicat",
		Short: "tuicat — drive the terminal/editor core from the command line",
	}
	root.AddCommand(renderCmd(), mdCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func renderCmd() *cobra.Command {
	var width, height int
	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Feed a byte stream through the VT emulator and print the resulting grid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}
			term := vterm.New(width, height)
			proc := vt.NewProcessor(term)
			proc.Advance(term, data)
			fmt.Print(term.Grid().Render())
			return nil
		},
	}
	cmd.Flags().IntVar(&width, "width", vterm.DefaultWidth, "grid width")
	cmd.Flags().IntVar(&height, "height", vterm.DefaultHeight, "grid height")
	return cmd
}

func mdCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "md [file]",
		Short: "Parse a markdown file through the gap buffer and print its block structure",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}
			lines := splitLines(string(data))
			buf := gapbuffer.FromLines(lines)
			blocks := markdown.ParseGapBuffer(buf)
			for _, b := range blocks {
				fmt.Printf("%+v\n", b)
			}
			return nil
		},
	}
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}
