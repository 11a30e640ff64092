package pdfannotate

// Option configures a Session.
type Option func(*Session)

// Logger receives diagnostics. Debug lines trace the page-transition
// protocol; warnings report recoverable failures such as a skipped page.
type Logger interface {
	Debugf(format string, args ...any)
	Warnf(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any) {}
func (nopLogger) Warnf(string, ...any)  {}

// Alerter shows a blocking, user-facing notification.
type Alerter interface {
	Alert(message string)
}

// AlerterFunc adapts a function to Alerter.
type AlerterFunc func(message string)

// Alert implements Alerter.
func (f AlerterFunc) Alert(message string) { f(message) }

// WithScale sets the zoom factor for the session. It panics if scale is
// not within (0, MaxScale].
func WithScale(scale float64) Option {
	if err := validateScale(scale); err != nil {
		panic("pdfannotate: WithScale: " + err.Error())
	}
	return func(s *Session) {
		s.scale = scale
	}
}

// WithLogger sets the diagnostics logger.
func WithLogger(l Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

// WithAlerter sets where user-facing notifications go.
func WithAlerter(a Alerter) Option {
	return func(s *Session) {
		s.alerter = a
	}
}

// WithDownloader sets how exported documents are delivered. Without one,
// Export only returns the bytes.
func WithDownloader(d Downloader) Option {
	return func(s *Session) {
		s.downloader = d
	}
}

// WithRenderOpener replaces the rendering backend.
func WithRenderOpener(o RenderOpener) Option {
	return func(s *Session) {
		if o != nil {
			s.renderOpener = o
		}
	}
}

// WithMutableOpener replaces the mutation backend.
func WithMutableOpener(o MutableOpener) Option {
	return func(s *Session) {
		if o != nil {
			s.mutableOpener = o
		}
	}
}
