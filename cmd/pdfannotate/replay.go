package main

import (
	"context"
	"fmt"
	"path/filepath"

	pdfannotate "github.com/alnah/go-pdfannotate"
	"github.com/alnah/go-pdfannotate/internal/replay"
)

// runReplay drives a session from a YAML script and writes every export.
func runReplay(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseAnnotateFlags("replay", args, env)
	if err != nil {
		return err
	}
	if len(positional) == 0 || len(positional) > 2 {
		return fmt.Errorf("%w: replay takes a script and an optional file", ErrUsage)
	}

	cfg, log, err := prepare(env, flags.common, flags.session)
	if err != nil {
		return err
	}

	scriptPath := positional[0]
	script, err := replay.Load(scriptPath)
	if err != nil {
		return fmt.Errorf("loading script: %w", err)
	}

	input, err := resolveScriptInput(scriptPath, script, positional[1:])
	if err != nil {
		return err
	}

	s := newSession(cfg, log, pdfannotate.WithDownloader(pdfannotate.DirDownloader{Dir: cfg.Output.Dir}))
	if err := loadInput(ctx, s, input); err != nil {
		return err
	}
	log.Debugf("replaying %d steps on %s (%d pages)", len(script.Steps), s.FileName(), s.PageCount())

	report, err := replay.Run(ctx, s, script, log)
	if report != nil {
		for _, res := range report.Exports {
			for _, pe := range res.Skipped {
				log.Warnf("skipped %v", pe)
			}
			if !flags.common.quiet {
				fmt.Fprintln(env.Stdout, res.Path)
			}
		}
		log.Infof("replayed %d steps, %d events dropped", report.Steps, report.Dropped)
	}
	return outputHint(err)
}

// resolveScriptInput picks the document to replay on. The positional
// argument wins; a path from the script is relative to the script.
func resolveScriptInput(scriptPath string, s *replay.Script, rest []string) (string, error) {
	if len(rest) > 0 {
		return rest[0], nil
	}
	if s.Input == "" {
		return "", fmt.Errorf("%w: pass a PDF or set input in %s", ErrNoInput, scriptPath)
	}
	if filepath.IsAbs(s.Input) {
		return s.Input, nil
	}
	return filepath.Join(filepath.Dir(scriptPath), s.Input), nil
}
