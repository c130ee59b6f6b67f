// Package ocr defines the recognition contract converters use to add a text
// layer to rasterized pages. Whether an engine is present is a property of the
// build: the Tesseract engine registers itself when the reflowocr build tag is
// set, and converters surface Available() as a runtime capability flag so the
// same binary can report support dynamically.
package ocr
