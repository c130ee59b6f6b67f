package engine

import (
	"context"
	"testing"
)

func TestQualityForTier(t *testing.T) {
	for tier, want := range map[int]int{1: 50, 2: 75, 3: 100} {
		if got := QualityForTier(tier); got != want {
			t.Errorf("tier %d: got %d, want %d", tier, got, want)
		}
	}
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	if s.OutputWidthPx != DefaultWidthPx || s.OutputHeightPx != DefaultHeightPx {
		t.Fatalf("unexpected default geometry: %dx%d", s.OutputWidthPx, s.OutputHeightPx)
	}
	if s.JPEGQuality != QualityForTier(s.QualityTier) {
		t.Fatalf("default quality %d not derived from tier %d", s.JPEGQuality, s.QualityTier)
	}
	if s.OCREnabled || s.PageRange != "" || s.DeviceProfile != "" {
		t.Fatalf("defaults should be empty: %+v", s)
	}
}

func TestFakeConverter(t *testing.T) {
	f := NewFake()
	f.PageCounts["in.pdf"] = 7

	if n, err := f.PageCount(context.Background(), "in.pdf"); err != nil || n != 7 {
		t.Fatalf("PageCount = %d, %v", n, err)
	}
	if _, err := f.PageCount(context.Background(), "missing.pdf"); err == nil {
		t.Fatal("expected error for unknown document")
	}

	res, err := f.Convert(context.Background(), Job{InputPath: "in.pdf", OutputPath: "out.pdf", Settings: DefaultSettings()})
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if res.Pages != 7 || res.OutputPath != "out.pdf" {
		t.Fatalf("unexpected result: %+v", res)
	}
	if len(f.Jobs) != 1 {
		t.Fatalf("expected 1 recorded job, got %d", len(f.Jobs))
	}
}
