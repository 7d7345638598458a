package atmo

import (
	"fmt"
	"image"
	"image/png"
	"os"

	xdraw "golang.org/x/image/draw"
)

// ExportPreviewPNG writes an 8-bit preview of the LUT for eyeballing. The
// 256x64 grid is small on screen, so scale upsamples it bilinearly. Values
// are written as-is (transmittance already lives in [0,1]); this is a debug
// artifact, not the data contract.
func (lut *TransmittanceLUT) ExportPreviewPNG(filename string, scale int) error {
	img := image.NewNRGBA(image.Rect(0, 0, lut.Width, lut.Height))
	for y := 0; y < lut.Height; y++ {
		for x := 0; x < lut.Width; x++ {
			t := lut.At(x, y)
			i := img.PixOffset(x, y)
			img.Pix[i+0] = packChannel(t.X())
			img.Pix[i+1] = packChannel(t.Y())
			img.Pix[i+2] = packChannel(t.Z())
			img.Pix[i+3] = 255
		}
	}

	if scale > 1 {
		scaled := image.NewNRGBA(image.Rect(0, 0, lut.Width*scale, lut.Height*scale))
		xdraw.BiLinear.Scale(scaled, scaled.Bounds(), img, img.Bounds(), xdraw.Src, nil)
		img = scaled
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating preview %s: %w", filename, err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return fmt.Errorf("encoding preview %s: %w", filename, err)
	}
	return nil
}

func packChannel(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
