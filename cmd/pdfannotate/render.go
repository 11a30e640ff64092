package main

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"path/filepath"
	"strings"

	pdfannotate "github.com/alnah/go-pdfannotate"
	"github.com/alnah/go-pdfannotate/internal/fileutil"
	"github.com/alnah/go-pdfannotate/internal/hints"
)

// runRender writes one page of a document as a PNG. The page is reached
// with Next so paging behaves as it does interactively.
func runRender(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseRenderFlags(args, env)
	if err != nil {
		return err
	}
	if len(positional) != 1 {
		return fmt.Errorf("%w: render takes exactly one file", ErrUsage)
	}

	// -o names a file here, not the export directory.
	output := flags.session.output
	flags.session.output = ""
	cfg, log, err := prepare(env, flags.common, flags.session)
	if err != nil {
		return err
	}

	s := newSession(cfg, log)
	if err := loadInput(ctx, s, positional[0]); err != nil {
		return err
	}

	n := s.PageCount()
	if flags.page < 1 || flags.page > n {
		return withHint(
			fmt.Errorf("%w: page %d of %d", pdfannotate.ErrPageRange, flags.page, n),
			hints.ForPageRange(n),
		)
	}
	for s.Page() < flags.page {
		if err := s.Next(ctx); err != nil {
			return fmt.Errorf("rendering page %d: %w", s.Page(), err)
		}
	}

	if output == "" {
		output = defaultRenderPath(positional[0], flags.page, cfg.Output.Dir)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, s.Background()); err != nil {
		return fmt.Errorf("%w: encoding PNG: %v", ErrWriteOutput, err)
	}
	if err := fileutil.EnsureDir(filepath.Dir(output)); err != nil {
		return outputHint(fmt.Errorf("%w: %v", ErrWriteOutput, err))
	}
	if err := fileutil.WriteFileAtomic(output, buf.Bytes(), 0o644); err != nil {
		return outputHint(fmt.Errorf("%w: %v", ErrWriteOutput, err))
	}

	w, h := s.Viewport().PixelSize()
	log.Debugf("rendered page %d/%d at %dx%d", flags.page, n, w, h)
	if !flags.common.quiet {
		fmt.Fprintln(env.Stdout, output)
	}
	return nil
}

// defaultRenderPath is <name>-p<page>.png in dir, or next to the input
// when dir is empty.
func defaultRenderPath(input string, page int, dir string) string {
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	name := fmt.Sprintf("%s-p%d.png", base, page)
	if dir == "" {
		dir = filepath.Dir(input)
	}
	return filepath.Join(dir, name)
}
