package main

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/automaxprocs/maxprocs"

	pdfannotate "github.com/alnah/go-pdfannotate"
	"github.com/alnah/go-pdfannotate/internal/config"
	"github.com/alnah/go-pdfannotate/internal/hints"
	"github.com/alnah/go-pdfannotate/internal/logger"
	"github.com/alnah/go-pdfannotate/internal/yamlutil"
)

// prepare builds the logger and the effective configuration.
// Precedence: flags > env vars > config file > defaults.
func prepare(env *Environment, common commonFlags, session sessionFlags) (*config.Config, *logger.Logger, error) {
	log := logger.New(env.Stderr)
	log.Configure(common.verbose, common.quiet)

	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	_, _ = maxprocs.Set(maxprocs.Logger(log.Debugf))

	warnUnknownEnvVars(env, log)
	envCfg := loadEnvConfig(env, log)

	cfg := config.DefaultConfig()
	name := common.config
	if name == "" {
		name = envCfg.ConfigPath
	}
	if name != "" {
		loaded, err := config.LoadConfig(name)
		if err != nil {
			var nf *config.NotFoundError
			if errors.As(err, &nf) {
				err = withHint(err, hints.ForConfigNotFound(nf.Tried))
			}
			return nil, nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
		log.Debugf("config: %s", name)
	}

	applyEnvConfig(envCfg, cfg)
	mergeFlags(session, cfg)

	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	if log.IsVerbose() {
		if out, err := yamlutil.Marshal(cfg); err == nil {
			log.Debugf("effective config:\n%s", out)
		}
	}
	return cfg, log, nil
}

// mergeFlags applies CLI flags over the config (CLI wins).
func mergeFlags(f sessionFlags, cfg *config.Config) {
	if f.scaleSet {
		cfg.Render.Scale = f.scale
	}
	if f.output != "" {
		cfg.Output.Dir = f.output
	}
}

// newSession creates a session from the effective configuration. Alerts
// are logged as errors since there is no dialog to show them in.
func newSession(cfg *config.Config, log *logger.Logger, opts ...pdfannotate.Option) *pdfannotate.Session {
	base := []pdfannotate.Option{
		pdfannotate.WithScale(cfg.Render.Scale),
		pdfannotate.WithLogger(log),
		pdfannotate.WithAlerter(pdfannotate.AlerterFunc(func(msg string) {
			log.Errorf("%s", msg)
		})),
	}
	return pdfannotate.NewSession(append(base, opts...)...)
}

// loadInput reads path and loads it into s, decorating document errors
// with hints.
func loadInput(ctx context.Context, s *pdfannotate.Session, path string) error {
	f, err := pdfannotate.OpenFile(path)
	if err != nil {
		return err
	}
	err = s.Load(ctx, f)
	switch {
	case errors.Is(err, pdfannotate.ErrNotPDF):
		return withHint(err, hints.ForNotPDF(f.Name))
	case errors.Is(err, pdfannotate.ErrDecode):
		return withHint(err, hints.ForDecode())
	}
	return err
}

// outputHint decorates write failures with the output directory hint.
func outputHint(err error) error {
	if errors.Is(err, pdfannotate.ErrDownload) || errors.Is(err, ErrWriteOutput) {
		return withHint(err, hints.ForOutputDirectory())
	}
	return err
}
