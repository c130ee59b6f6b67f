package engine

import (
	"context"
	"fmt"
)

// Fake is an in-memory Converter for tests and dry runs. It records every
// call and can be primed with page counts and failures per path.
type Fake struct {
	BuildVersion string
	Caps         Capabilities
	Defaults     Settings

	// PageCounts maps input path to page count; missing paths fail.
	PageCounts map[string]int
	// ConvertErr, when set, is returned from every Convert call.
	ConvertErr error

	// Jobs records every Convert call in order.
	Jobs []Job
	// Closed counts Close calls.
	Closed int
}

// NewFake returns a Fake with sane defaults and no OCR capability.
func NewFake() *Fake {
	return &Fake{
		BuildVersion: "fake/1.0",
		Caps:         Capabilities{},
		Defaults:     DefaultSettings(),
		PageCounts:   map[string]int{},
	}
}

func (f *Fake) Version() string            { return f.BuildVersion }
func (f *Fake) Capabilities() Capabilities { return f.Caps }
func (f *Fake) DefaultSettings() Settings  { return f.Defaults }

func (f *Fake) PageCount(_ context.Context, path string) (int, error) {
	n, ok := f.PageCounts[path]
	if !ok {
		return 0, fmt.Errorf("open %s: no such document", path)
	}
	return n, nil
}

func (f *Fake) Convert(_ context.Context, job Job) (Result, error) {
	f.Jobs = append(f.Jobs, job)
	if f.ConvertErr != nil {
		return Result{}, f.ConvertErr
	}
	pages, ok := f.PageCounts[job.InputPath]
	if !ok {
		return Result{}, fmt.Errorf("open %s: no such document", job.InputPath)
	}
	return Result{Pages: pages, OutputPath: job.OutputPath}, nil
}

func (f *Fake) Close() error {
	f.Closed++
	return nil
}
