package engine

import "context"

// Capabilities reports what the converter build supports. Queried once per
// session at Init so the same binary can answer availability dynamically
// instead of hiding it behind compile-time switches.
type Capabilities struct {
	// OCR reports whether an OCR engine is linked into this build.
	OCR bool
	// Profiles lists the device profile names the converter understands.
	Profiles []string
}

// Settings is the mutable conversion record owned by a session. It is passed
// to the converter by value so an in-flight conversion never observes later
// setter calls.
type Settings struct {
	// DeviceProfile is the name of the last applied device preset, empty when
	// only explicit dimensions were set.
	DeviceProfile string
	// OutputWidthPx and OutputHeightPx are the target raster dimensions.
	OutputWidthPx  int
	OutputHeightPx int
	// WidthUserSpecified and HeightUserSpecified record that the dimension was
	// set explicitly in pixel units rather than derived from a profile.
	WidthUserSpecified  bool
	HeightUserSpecified bool
	// QualityTier is the caller-facing 1-3 level; JPEGQuality is the derived
	// encoder quality (50, 75 or 100). The tier is the source of truth.
	QualityTier int
	JPEGQuality int
	// OCREnabled asks the converter to add a recognized-text layer.
	OCREnabled bool
	// PageRange is the verbatim page selection spec ("1-10,15-20"). Empty
	// selects all pages. Syntax is checked by the converter, not the session.
	PageRange string
	// OutputPathTemplate names the output file. A "%s" verb is replaced with
	// the input file stem.
	OutputPathTemplate string
	// DPI is the render resolution for rasterizing source pages.
	DPI int
	// Color selects color output; false renders grayscale.
	Color bool
}

// Default tier and geometry match the classic 6" e-ink reader preset.
const (
	DefaultWidthPx  = 560
	DefaultHeightPx = 735
	DefaultDPI      = 167
	DefaultTier     = 2
)

// QualityForTier maps the 1-3 quality tier onto a JPEG encoder quality.
func QualityForTier(tier int) int {
	return 50 + (tier-1)*25
}

// DefaultSettings returns the settings a fresh session starts from.
func DefaultSettings() Settings {
	return Settings{
		OutputWidthPx:  DefaultWidthPx,
		OutputHeightPx: DefaultHeightPx,
		QualityTier:    DefaultTier,
		JPEGQuality:    QualityForTier(DefaultTier),
		DPI:            DefaultDPI,
	}
}

// Job describes one conversion request: where to read, where to write, and
// the settings snapshot to convert with.
type Job struct {
	InputPath  string
	OutputPath string
	Settings   Settings
}

// Result reports what a completed conversion produced.
type Result struct {
	// Pages is the number of pages written to the output document.
	Pages int
	// OutputPath is the resolved path of the written file.
	OutputPath string
}

// Converter is the document conversion collaborator a session delegates to.
// Implementations own whatever native or remote resources they need; Close
// releases them. PageCount and Convert may be slow for large documents and
// honor ctx cancellation between pages where the backend allows it.
type Converter interface {
	Version() string
	Capabilities() Capabilities
	DefaultSettings() Settings
	PageCount(ctx context.Context, path string) (int, error)
	Convert(ctx context.Context, job Job) (Result, error)
	Close() error
}
