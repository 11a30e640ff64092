package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// sessionFlags holds flags that shape an annotation session.
type sessionFlags struct {
	output   string
	scale    float64
	scaleSet bool // --scale given explicitly
}

// annotateFlags holds all flags for the annotate and replay commands.
type annotateFlags struct {
	common  commonFlags
	session sessionFlags
}

// renderFlags holds all flags for the render command.
type renderFlags struct {
	common  commonFlags
	session sessionFlags
	page    int
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only warnings and errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "debug logging")
}

// addSessionFlags adds output and scale flags to a FlagSet.
func addSessionFlags(fs *flag.FlagSet, f *sessionFlags, outputUsage string) {
	fs.StringVarP(&f.output, "output", "o", "", outputUsage)
	fs.Float64Var(&f.scale, "scale", 0, "zoom factor (default 1.5)")
}

// newAnnotateFlagSet registers annotate and replay flags into f.
// Completion reuses it so flag names have a single source.
func newAnnotateFlagSet(name string, f *annotateFlags) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	addCommonFlags(fs, &f.common)
	addSessionFlags(fs, &f.session, "output directory for annotated.pdf")
	return fs
}

// newRenderFlagSet registers render flags into f.
func newRenderFlagSet(f *renderFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	addCommonFlags(fs, &f.common)
	addSessionFlags(fs, &f.session, "output PNG file")
	fs.IntVarP(&f.page, "page", "p", 1, "page to render")
	return fs
}

func setUsage(fs *flag.FlagSet, usage func(io.Writer), w io.Writer) {
	fs.SetOutput(w)
	fs.Usage = func() { usage(w) }
}

// parse wraps flag errors as usage errors, leaving flag.ErrHelp as is.
func parse(fs *flag.FlagSet, args []string) error {
	err := fs.Parse(args)
	if err == nil || errors.Is(err, flag.ErrHelp) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrUsage, err)
}

// parseAnnotateFlags parses flags for annotate or replay.
func parseAnnotateFlags(name string, args []string, env *Environment) (*annotateFlags, []string, error) {
	f := &annotateFlags{}
	fs := newAnnotateFlagSet(name, f)
	if name == "replay" {
		setUsage(fs, printReplayUsage, env.Stderr)
	} else {
		setUsage(fs, printAnnotateUsage, env.Stderr)
	}

	if err := parse(fs, args); err != nil {
		return nil, nil, err
	}
	f.session.scaleSet = fs.Changed("scale")
	return f, fs.Args(), nil
}

// parseRenderFlags parses flags for render.
func parseRenderFlags(args []string, env *Environment) (*renderFlags, []string, error) {
	f := &renderFlags{}
	fs := newRenderFlagSet(f)
	setUsage(fs, printRenderUsage, env.Stderr)

	if err := parse(fs, args); err != nil {
		return nil, nil, err
	}
	f.session.scaleSet = fs.Changed("scale")
	return f, fs.Args(), nil
}
