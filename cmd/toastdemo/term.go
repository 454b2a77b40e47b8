package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/vango-dev/toastkit/pkg/termui"
	"github.com/vango-dev/toastkit/pkg/toast"
)

func termCmd() *cobra.Command {
	var (
		every time.Duration
		width int
	)

	cmd := &cobra.Command{
		Use:   "term",
		Short: "Draw the toast board in the terminal",
		Long: `Draw toasts as cards at the top and bottom of the terminal.

Keys:
  x, esc    close the newest toast
  q         quit`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTerm(every, width)
		},
	}

	cmd.Flags().DurationVarP(&every, "every", "e", 2*time.Second, "Sample feed interval")
	cmd.Flags().IntVarP(&width, "width", "w", 40, "Card width in cells")

	return cmd
}

func runTerm(every time.Duration, width int) error {
	// The board owns the screen; logs would tear it.
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	board := termui.NewBoard(termui.WithWidth(width))
	reg := toast.NewRegistry(board, toast.WithLogger(logger))
	defer reg.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if every > 0 {
		go feed(ctx, reg, every)
	}

	_, err := tea.NewProgram(termui.NewModel(board), tea.WithAltScreen()).Run()
	return err
}
