package pdfium

import (
	"path/filepath"
	"strings"
)

// box is a placement rectangle in output pixel space.
type box struct {
	X, Y, W, H int
}

// fitBox scales srcW x srcH to fit inside boxW x boxH preserving aspect ratio
// and centers the result. Degenerate inputs collapse to an empty box.
func fitBox(srcW, srcH, boxW, boxH int) box {
	if srcW <= 0 || srcH <= 0 || boxW <= 0 || boxH <= 0 {
		return box{}
	}
	w := boxW
	h := srcH * boxW / srcW
	if h > boxH {
		h = boxH
		w = srcW * boxH / srcH
	}
	return box{X: (boxW - w) / 2, Y: (boxH - h) / 2, W: w, H: h}
}

// pxToPt converts a pixel length at the given density to PDF points.
func pxToPt(px, dpi int) float64 {
	if dpi <= 0 {
		dpi = 72
	}
	return float64(px) * 72.0 / float64(dpi)
}

// resolveOutputPath expands the session's output path template for one input
// file. The first "%s" marker receives the input file stem; any other text,
// including further markers, stays literal. An empty template derives
// "<stem>_reflow.pdf" next to the input.
func resolveOutputPath(template, inputPath string) string {
	stem := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	if template == "" {
		return filepath.Join(filepath.Dir(inputPath), stem+"_reflow.pdf")
	}
	return strings.Replace(template, "%s", stem, 1)
}
