package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/ereaderlab/reflow/engine"
	"github.com/ereaderlab/reflow/observability"
	"github.com/ereaderlab/reflow/profile"
)

// Bounded string settings keep the fixed-buffer limits of the interface this
// facade preserves: overlong values are truncated silently, never rejected.
const (
	MaxPageRangeLen  = 1023
	MaxOutputPathLen = 255
)

// Factory constructs the converter a session delegates to. Init calls it,
// Close releases what it built, and a later Init calls it again, so the
// converter's resources match the session lifecycle exactly.
type Factory func() (engine.Converter, error)

// Session is the stateful conversion handle. All methods are safe for
// concurrent use; the mutex serializes callers, so a long conversion blocks
// other operations for its full duration.
type Session struct {
	mu          sync.Mutex
	factory     Factory
	conv        engine.Converter
	log         observability.Logger
	tracer      observability.Tracer
	initialized bool
	caps        engine.Capabilities
	settings    engine.Settings
}

// Option configures a Session at construction time.
type Option func(*Session)

// WithLogger installs a logger for informational diagnostics. Logging never
// affects operation outcomes.
func WithLogger(log observability.Logger) Option {
	return func(s *Session) { s.log = log }
}

// WithTracer installs a tracer around engine delegation.
func WithTracer(tracer observability.Tracer) Option {
	return func(s *Session) { s.tracer = tracer }
}

// New returns an uninitialized Session. Init calls newConverter to build the
// engine; Close releases it again, so every Init after a Close starts a fresh
// converter rather than reviving a released one.
func New(newConverter Factory, opts ...Option) *Session {
	s := &Session{
		factory: newConverter,
		log:     observability.NopLogger{},
		tracer:  observability.NopTracer(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Init prepares the session: it constructs the converter, resets settings to
// the converter's defaults and caches the converter's capabilities. Calling
// Init on an initialized session is a no-op that preserves the current
// settings.
func (s *Session) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.initialized {
		return nil
	}
	if s.factory == nil {
		return fmt.Errorf("init: %w: no converter factory", ErrDelegate)
	}
	conv, err := s.factory()
	if err != nil {
		return fmt.Errorf("init: %w: %w", ErrDelegate, err)
	}
	if conv == nil {
		return fmt.Errorf("init: %w: factory returned no converter", ErrDelegate)
	}
	s.conv = conv
	s.settings = conv.DefaultSettings()
	s.caps = conv.Capabilities()
	s.initialized = true
	s.log.Info("session initialized",
		observability.String("engine", conv.Version()),
		observability.Bool("ocr", s.caps.OCR))
	return nil
}

// Close releases the converter and marks the session uninitialized. It is
// idempotent and safe to call on a session that was never initialized. The
// session can be re-initialized afterwards; Init constructs a new converter
// and settings restart from defaults.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return nil
	}
	s.initialized = false
	s.settings = engine.Settings{}
	conv := s.conv
	s.conv = nil
	if err := conv.Close(); err != nil {
		return fmt.Errorf("close: %w: %w", ErrDelegate, err)
	}
	s.log.Info("session closed")
	return nil
}

// Version identifies the underlying engine build while the session is
// running. Before Init (and after Close) there is no converter to ask, so a
// facade identifier is returned instead; hosts that need the engine build
// string without a session read it from the engine package directly.
func (s *Session) Version() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conv == nil {
		return "reflow (engine not running)"
	}
	return s.conv.Version()
}

// SetDeviceProfile applies the named device preset, overwriting the output
// geometry, render DPI and color mode. Explicit width/height set earlier are
// discarded; set them again after the profile to override it.
func (s *Session) SetDeviceProfile(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return fmt.Errorf("set device profile: %w", ErrNotInitialized)
	}
	p, ok := profile.Lookup(name)
	if !ok {
		return fmt.Errorf("set device profile: unknown profile %q: %w", name, ErrInvalidArgument)
	}
	s.settings.DeviceProfile = p.Name
	s.settings.OutputWidthPx = p.WidthPx
	s.settings.OutputHeightPx = p.HeightPx
	s.settings.DPI = p.DPI
	s.settings.Color = p.Color
	s.settings.WidthUserSpecified = false
	s.settings.HeightUserSpecified = false
	return nil
}

// SetOutputWidth sets the output width in pixels.
func (s *Session) SetOutputWidth(px int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return fmt.Errorf("set output width: %w", ErrNotInitialized)
	}
	if px <= 0 {
		return fmt.Errorf("set output width: %d: %w", px, ErrInvalidArgument)
	}
	s.settings.OutputWidthPx = px
	s.settings.WidthUserSpecified = true
	return nil
}

// SetOutputHeight sets the output height in pixels.
func (s *Session) SetOutputHeight(px int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return fmt.Errorf("set output height: %w", ErrNotInitialized)
	}
	if px <= 0 {
		return fmt.Errorf("set output height: %d: %w", px, ErrInvalidArgument)
	}
	s.settings.OutputHeightPx = px
	s.settings.HeightUserSpecified = true
	return nil
}

// SetMargins is not implemented in this layer and always fails. Margin control
// lives in the converter's crop handling, which this facade does not expose.
func (s *Session) SetMargins(left, top, right, bottom float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return fmt.Errorf("set margins: %w", ErrNotInitialized)
	}
	return fmt.Errorf("set margins: %w: not implemented in this layer", ErrUnsupported)
}

// SetQuality sets the 1-3 quality tier. The JPEG encoder quality is derived
// from the tier: 50, 75 or 100.
func (s *Session) SetQuality(tier int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return fmt.Errorf("set quality: %w", ErrNotInitialized)
	}
	if tier < 1 || tier > 3 {
		return fmt.Errorf("set quality: tier %d outside 1-3: %w", tier, ErrInvalidArgument)
	}
	s.settings.QualityTier = tier
	s.settings.JPEGQuality = engine.QualityForTier(tier)
	return nil
}

// SetOCREnabled toggles the recognized-text layer. It fails when the converter
// build has no OCR engine linked in, for both enabling and disabling.
func (s *Session) SetOCREnabled(enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return fmt.Errorf("set ocr: %w", ErrNotInitialized)
	}
	if !s.caps.OCR {
		return fmt.Errorf("set ocr: %w: no OCR engine in this build", ErrUnsupported)
	}
	s.settings.OCREnabled = enabled
	return nil
}

// SetPageRange stores the page selection spec verbatim, truncated to
// MaxPageRangeLen bytes. Syntax is not checked here; the converter reports
// malformed specs at conversion time. An empty spec selects all pages.
func (s *Session) SetPageRange(spec string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return fmt.Errorf("set page range: %w", ErrNotInitialized)
	}
	s.settings.PageRange = truncate(spec, MaxPageRangeLen)
	return nil
}

// Settings returns a copy of the current settings record.
func (s *Session) Settings() (engine.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return engine.Settings{}, fmt.Errorf("settings: %w", ErrNotInitialized)
	}
	return s.settings, nil
}

// PageCount reports the number of pages in the document at path. The result
// is never cached; every call re-reads the file.
func (s *Session) PageCount(ctx context.Context, path string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return 0, fmt.Errorf("page count: %w", ErrNotInitialized)
	}
	if path == "" {
		return 0, fmt.Errorf("page count: empty path: %w", ErrInvalidArgument)
	}
	ctx, span := s.tracer.StartSpan(ctx, "reflow.pagecount")
	defer span.Finish()
	n, err := s.conv.PageCount(ctx, path)
	if err != nil {
		span.SetError(err)
		return 0, fmt.Errorf("page count %s: %w: %w", path, ErrDelegate, err)
	}
	return n, nil
}

// ProcessFile converts inputPath into outputPath using a snapshot of the
// current settings. The output path also becomes the session's output path
// template, truncated to MaxOutputPathLen bytes. Converter failures are
// propagated; earlier revisions of this interface reported success
// unconditionally.
func (s *Session) ProcessFile(ctx context.Context, inputPath, outputPath string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return fmt.Errorf("process file: %w", ErrNotInitialized)
	}
	if inputPath == "" || outputPath == "" {
		return fmt.Errorf("process file: empty path: %w", ErrInvalidArgument)
	}
	s.settings.OutputPathTemplate = truncate(outputPath, MaxOutputPathLen)

	job := engine.Job{
		InputPath:  inputPath,
		OutputPath: s.settings.OutputPathTemplate,
		Settings:   s.settings,
	}
	ctx, span := s.tracer.StartSpan(ctx, "reflow.convert")
	defer span.Finish()
	span.SetTag("input", inputPath)
	res, err := s.conv.Convert(ctx, job)
	if err != nil {
		span.SetError(err)
		s.log.Error("conversion failed",
			observability.String("input", inputPath),
			observability.Error("err", err))
		return fmt.Errorf("process file %s: %w: %w", inputPath, ErrDelegate, err)
	}
	s.log.Info("conversion done",
		observability.String("input", inputPath),
		observability.String("output", res.OutputPath),
		observability.Int("pages", res.Pages))
	return nil
}

// truncate bounds s to max bytes. Byte-oriented on purpose: it mirrors the
// fixed-size buffers of the legacy interface.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
