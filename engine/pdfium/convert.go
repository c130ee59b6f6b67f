package pdfium

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"os"

	"github.com/go-pdf/fpdf"
	"github.com/klippa-app/go-pdfium/references"
	"github.com/klippa-app/go-pdfium/requests"
	"golang.org/x/image/draw"

	"github.com/ereaderlab/reflow/engine"
	"github.com/ereaderlab/reflow/observability"
	"github.com/ereaderlab/reflow/ocr"
	"github.com/ereaderlab/reflow/pagerange"
	"github.com/ereaderlab/reflow/profile"
)

// Convert runs the full pipeline for one document: select pages, rasterize,
// scale to device geometry, JPEG-encode, optionally add a recognized-text
// layer, and write an image-per-page output PDF.
func (c *Converter) Convert(ctx context.Context, job engine.Job) (engine.Result, error) {
	s := job.Settings
	if s.OutputWidthPx <= 0 || s.OutputHeightPx <= 0 {
		return engine.Result{}, fmt.Errorf("output geometry %dx%d not positive", s.OutputWidthPx, s.OutputHeightPx)
	}
	if s.OCREnabled && !ocr.Available() {
		return engine.Result{}, fmt.Errorf("ocr requested but no engine in this build")
	}
	if c.instance == nil {
		return engine.Result{}, errClosed
	}

	data, err := os.ReadFile(job.InputPath)
	if err != nil {
		return engine.Result{}, fmt.Errorf("read %s: %w", job.InputPath, err)
	}
	doc, err := c.instance.OpenDocument(&requests.OpenDocument{File: &data})
	if err != nil {
		return engine.Result{}, fmt.Errorf("open %s: %w", job.InputPath, err)
	}
	defer c.instance.FPDF_CloseDocument(&requests.FPDF_CloseDocument{Document: doc.Document})

	countResp, err := c.instance.FPDF_GetPageCount(&requests.FPDF_GetPageCount{Document: doc.Document})
	if err != nil {
		return engine.Result{}, fmt.Errorf("page count: %w", err)
	}
	pages, err := pagerange.Parse(s.PageRange, countResp.PageCount)
	if err != nil {
		return engine.Result{}, fmt.Errorf("page range %q: %w", s.PageRange, err)
	}

	inner := innerBox(s)
	dpi := effectiveDPI(s)
	ptPerPx := 72.0 / float64(dpi)

	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size: fpdf.SizeType{
			Wd: pxToPt(s.OutputWidthPx, dpi),
			Ht: pxToPt(s.OutputHeightPx, dpi),
		},
	})
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(0, 0, 0)

	for _, pageNum := range pages {
		if err := ctx.Err(); err != nil {
			return engine.Result{}, err
		}
		if err := c.appendPage(ctx, pdf, doc.Document, pageNum, s, dpi, inner, ptPerPx); err != nil {
			return engine.Result{}, fmt.Errorf("page %d: %w", pageNum, err)
		}
	}

	outPath := job.OutputPath
	if outPath == "" {
		outPath = s.OutputPathTemplate
	}
	outPath = resolveOutputPath(outPath, job.InputPath)
	if err := pdf.OutputFileAndClose(outPath); err != nil {
		return engine.Result{}, fmt.Errorf("write %s: %w", outPath, err)
	}
	c.log.Info("document converted",
		observability.String("input", job.InputPath),
		observability.String("output", outPath),
		observability.Int("pages", len(pages)))
	return engine.Result{Pages: len(pages), OutputPath: outPath}, nil
}

func (c *Converter) appendPage(ctx context.Context, pdf *fpdf.Fpdf, doc references.FPDF_DOCUMENT, pageNum int, s engine.Settings, dpi int, inner box, ptPerPx float64) error {
	render, err := c.instance.RenderPageInDPI(&requests.RenderPageInDPI{
		DPI: dpi,
		Page: requests.Page{
			ByIndex: &requests.PageByIndex{Document: doc, Index: pageNum - 1},
		},
	})
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	defer render.Cleanup()

	src := render.Result.Image
	b := fitBox(src.Bounds().Dx(), src.Bounds().Dy(), inner.W, inner.H)
	if b.W <= 0 || b.H <= 0 {
		return fmt.Errorf("render produced empty image")
	}
	scaled := scalePage(src, b.W, b.H, s.Color)

	quality := s.JPEGQuality
	if quality <= 0 {
		quality = engine.QualityForTier(engine.DefaultTier)
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, scaled, &jpeg.Options{Quality: quality}); err != nil {
		return fmt.Errorf("encode jpeg: %w", err)
	}

	x := float64(inner.X+b.X) * ptPerPx
	y := float64(inner.Y+b.Y) * ptPerPx
	w := float64(b.W) * ptPerPx
	h := float64(b.H) * ptPerPx

	pdf.AddPage()
	opts := fpdf.ImageOptions{ImageType: "JPG"}
	name := fmt.Sprintf("page-%d", pageNum)
	pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(buf.Bytes()))
	pdf.ImageOptions(name, x, y, w, h, false, opts, 0, "")

	if s.OCREnabled {
		if err := addTextLayer(ctx, pdf, buf.Bytes(), x, y, ptPerPx); err != nil {
			return fmt.Errorf("text layer: %w", err)
		}
	}
	return nil
}

// innerBox is the page area left for content after device padding.
func innerBox(s engine.Settings) box {
	var pad [4]int
	if s.DeviceProfile != "" {
		if p, ok := profile.Lookup(s.DeviceProfile); ok {
			pad = p.PaddingPx
		}
	}
	w := s.OutputWidthPx - pad[0] - pad[2]
	h := s.OutputHeightPx - pad[1] - pad[3]
	if w <= 0 || h <= 0 {
		return box{W: s.OutputWidthPx, H: s.OutputHeightPx}
	}
	return box{X: pad[0], Y: pad[1], W: w, H: h}
}

func effectiveDPI(s engine.Settings) int {
	if s.DPI > 0 {
		return s.DPI
	}
	return engine.DefaultDPI
}

// scalePage resamples src to w x h, collapsing to grayscale unless the target
// device is a color display.
func scalePage(src image.Image, w, h int, color bool) image.Image {
	var dst draw.Image
	if color {
		dst = image.NewRGBA(image.Rect(0, 0, w, h))
	} else {
		dst = image.NewGray(image.Rect(0, 0, w, h))
	}
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// addTextLayer runs OCR over the encoded page image and writes each word
// invisibly at its recognized position, so the output stays selectable and
// searchable.
func addTextLayer(ctx context.Context, pdf *fpdf.Fpdf, img []byte, originX, originY, ptPerPx float64) error {
	res, err := ocr.Default().Recognize(ctx, img)
	if err != nil {
		return err
	}
	if len(res.Words) == 0 {
		return nil
	}
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetAlpha(0, "Normal")
	defer pdf.SetAlpha(1, "Normal")
	for _, w := range res.Words {
		size := w.H * ptPerPx
		if size <= 0 || w.Text == "" {
			continue
		}
		pdf.SetFontSize(size)
		pdf.Text(originX+w.X*ptPerPx, originY+(w.Y+w.H)*ptPerPx, w.Text)
	}
	return nil
}
