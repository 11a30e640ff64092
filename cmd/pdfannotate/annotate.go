package main

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/alnah/go-pdfannotate/internal/tui"
)

// debugLogFile receives logs while the TUI owns the terminal.
const debugLogFile = "pdfannotate-debug.log"

// runAnnotate starts the terminal UI, optionally opening a file.
func runAnnotate(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseAnnotateFlags("annotate", args, env)
	if err != nil {
		return err
	}
	if len(positional) > 1 {
		return fmt.Errorf("%w: annotate takes at most one file, got %d", ErrUsage, len(positional))
	}

	cfg, log, err := prepare(env, flags.common, flags.session)
	if err != nil {
		return err
	}

	// The alternate screen hides stderr, so debug logs go to a file.
	if log.IsVerbose() {
		f, err := tea.LogToFile(debugLogFile, "pdfannotate")
		if err != nil {
			return fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
		defer f.Close()
		log.SetOutput(f)
	} else {
		log.SetOutput(io.Discard)
	}

	opts := tui.Options{
		Scale:     cfg.Render.Scale,
		OutputDir: cfg.Output.Dir,
		ShowHelp:  cfg.TUI.ShowHelp,
		Logger:    log,
	}
	if len(positional) == 1 {
		opts.File = positional[0]
	}

	if err := env.RunProgram(ctx, tui.New(ctx, opts)); err != nil && ctx.Err() == nil {
		return fmt.Errorf("running terminal UI: %w", err)
	}
	return nil
}
