// Package pdfium implements engine.Converter on top of the PDFium library
// compiled to WebAssembly, so the converter runs without CGo. Pages are
// rasterized by PDFium, scaled to the target device geometry, JPEG-encoded at
// the session's quality and reassembled into an image-per-page PDF.
package pdfium

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	gopdfium "github.com/klippa-app/go-pdfium"
	"github.com/klippa-app/go-pdfium/requests"
	"github.com/klippa-app/go-pdfium/webassembly"

	"github.com/ereaderlab/reflow/engine"
	"github.com/ereaderlab/reflow/observability"
	"github.com/ereaderlab/reflow/ocr"
	"github.com/ereaderlab/reflow/profile"
)

// Build identifies the engine build. It is a constant so hosts can answer
// version queries without constructing a converter.
const Build = "pdfium-wasm 6721"

// Config sizes the PDFium worker pool. The zero value runs a single worker,
// which matches the facade's one-caller-at-a-time contract.
type Config struct {
	MinIdle  int
	MaxIdle  int
	MaxTotal int
	// InstanceTimeout bounds the wait for a worker at startup.
	InstanceTimeout time.Duration
	Logger          observability.Logger
}

// Converter is a PDFium-backed engine.Converter. It owns a WebAssembly worker
// pool; Close shuts the pool down and must be called exactly once, which the
// session guarantees.
type Converter struct {
	pool     gopdfium.Pool
	instance gopdfium.Pdfium
	log      observability.Logger
}

// New starts the PDFium WebAssembly pool and claims one instance.
func New(cfg Config) (*Converter, error) {
	if cfg.MinIdle <= 0 {
		cfg.MinIdle = 1
	}
	if cfg.MaxIdle <= 0 {
		cfg.MaxIdle = 1
	}
	if cfg.MaxTotal <= 0 {
		cfg.MaxTotal = 1
	}
	if cfg.InstanceTimeout <= 0 {
		cfg.InstanceTimeout = 30 * time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = observability.NopLogger{}
	}

	pool, err := webassembly.Init(webassembly.Config{
		MinIdle:  cfg.MinIdle,
		MaxIdle:  cfg.MaxIdle,
		MaxTotal: cfg.MaxTotal,
	})
	if err != nil {
		return nil, fmt.Errorf("init pdfium pool: %w", err)
	}
	instance, err := pool.GetInstance(cfg.InstanceTimeout)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("claim pdfium instance: %w", err)
	}
	return &Converter{pool: pool, instance: instance, log: cfg.Logger}, nil
}

func (c *Converter) Version() string { return Build }

// Capabilities answers from the current build: OCR depends on whether an
// engine registered itself, profiles come from the shared registry.
func (c *Converter) Capabilities() engine.Capabilities {
	return engine.Capabilities{
		OCR:      ocr.Available(),
		Profiles: profile.Names(),
	}
}

func (c *Converter) DefaultSettings() engine.Settings {
	return engine.DefaultSettings()
}

// PageCount opens the document at path and reports its page count. The file
// is re-read on every call.
func (c *Converter) PageCount(ctx context.Context, path string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if c.instance == nil {
		return 0, errClosed
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", path, err)
	}
	doc, err := c.instance.OpenDocument(&requests.OpenDocument{File: &data})
	if err != nil {
		return 0, fmt.Errorf("open %s: %w", path, err)
	}
	defer c.instance.FPDF_CloseDocument(&requests.FPDF_CloseDocument{Document: doc.Document})

	resp, err := c.instance.FPDF_GetPageCount(&requests.FPDF_GetPageCount{Document: doc.Document})
	if err != nil {
		return 0, fmt.Errorf("page count of %s: %w", path, err)
	}
	return resp.PageCount, nil
}

var errClosed = errors.New("converter is closed")

// Close releases the worker pool. A closed converter fails every later call
// with an error; it cannot be reopened.
func (c *Converter) Close() error {
	if c.pool != nil {
		c.pool.Close()
		c.pool = nil
	}
	c.instance = nil
	return nil
}
