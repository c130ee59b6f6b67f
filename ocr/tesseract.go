//go:build reflowocr

package ocr

import (
	"context"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

func init() {
	Register(&tesseractEngine{clientFactory: gosseract.NewClient})
}

// tesseractEngine backs the OCR capability with the gosseract client. Each
// Recognize call uses a fresh client; gosseract handles are not reusable
// across images with different settings.
type tesseractEngine struct {
	clientFactory func() *gosseract.Client
}

func (e *tesseractEngine) Name() string { return "tesseract" }

func (e *tesseractEngine) Recognize(ctx context.Context, image []byte, langs ...string) (Result, error) {
	select {
	case <-ctx.Done():
		return Result{}, ctx.Err()
	default:
	}
	c := e.clientFactory()
	defer c.Close()

	if err := c.SetImageFromBytes(image); err != nil {
		return Result{}, fmt.Errorf("set image: %w", err)
	}
	if len(langs) > 0 {
		if err := c.SetLanguage(langs...); err != nil {
			return Result{}, fmt.Errorf("set languages: %w", err)
		}
	}
	text, err := c.Text()
	if err != nil {
		return Result{}, fmt.Errorf("recognize text: %w", err)
	}

	res := Result{PlainText: strings.TrimSpace(text)}
	boxes, err := c.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		// Plain text alone is still usable for the text layer.
		return res, nil
	}
	res.Words = make([]Word, 0, len(boxes))
	for _, b := range boxes {
		res.Words = append(res.Words, Word{
			Text:       b.Word,
			X:          float64(b.Box.Min.X),
			Y:          float64(b.Box.Min.Y),
			W:          float64(b.Box.Dx()),
			H:          float64(b.Box.Dy()),
			Confidence: b.Confidence / 100.0,
		})
	}
	return res, nil
}
