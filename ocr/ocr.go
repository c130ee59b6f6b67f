package ocr

import "context"

// Word is a single recognized token with pixel-space bounds relative to the
// upper-left corner of the input image.
type Word struct {
	Text       string
	X, Y       float64
	W, H       float64
	Confidence float64
}

// Result captures recognition output for one page image.
type Result struct {
	// PlainText is the linearized page text.
	PlainText string
	// Words carries positions for placing an invisible text layer.
	Words []Word
}

// Engine recognizes text in one encoded page image. Image data is PNG or JPEG;
// langs are trained-data hints like "eng".
type Engine interface {
	Name() string
	Recognize(ctx context.Context, image []byte, langs ...string) (Result, error)
}

var registered Engine

// Register installs the process-wide OCR engine. Called from init() by
// build-tagged engine files; tests may call it directly.
func Register(e Engine) { registered = e }

// Available reports whether an OCR engine is linked into this build.
func Available() bool { return registered != nil }

// Default returns the registered engine, or nil when the build has none.
func Default() Engine { return registered }
