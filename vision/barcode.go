package vision

import (
	"image"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/multi"
	"github.com/makiuchi-d/gozxing/oned"
)

// Barcodes decodes 1D barcodes (ID cards carry Code 39/128) from frames.
// It implements scanner.BarcodeDecoder.
type Barcodes struct {
	reader *multi.GenericMultipleBarcodeReader
}

func NewBarcodes() *Barcodes {
	return &Barcodes{
		reader: multi.NewGenericMultipleBarcodeReader(oned.NewMultiFormatOneDReader(nil)),
	}
}

func (b *Barcodes) Decode(img image.Image) ([]string, error) {
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return nil, err
	}
	results, err := b.reader.DecodeMultiple(bmp, nil)
	if err != nil {
		// ZXing reports "no barcode in this frame" as NotFoundException.
		// That is the common case for a live feed, not a failure.
		if _, notFound := err.(gozxing.NotFoundException); notFound {
			return nil, nil
		}
		return nil, err
	}
	payloads := make([]string, 0, len(results))
	for _, r := range results {
		payloads = append(payloads, r.GetText())
	}
	return payloads, nil
}
