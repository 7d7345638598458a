package atmo

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// TransmittanceLUT is a dense WxH grid of RGB transmittance values, stored as
// a flat RGBA32F pixel buffer laid out row-major (index y*W + x) so it can be
// handed to the GPU without repacking. Alpha is fixed at 1. A LUT is immutable
// once generated; changing atmosphere parameters means generating a new one.
type TransmittanceLUT struct {
	Width  int
	Height int
	Pixels []float32
}

func newTransmittanceLUT(width, height int) *TransmittanceLUT {
	return &TransmittanceLUT{
		Width:  width,
		Height: height,
		Pixels: make([]float32, width*height*4),
	}
}

func (lut *TransmittanceLUT) writeTexel(x, y int, value mgl64.Vec3) {
	i := (y*lut.Width + x) * 4
	lut.Pixels[i+0] = float32(value.X())
	lut.Pixels[i+1] = float32(value.Y())
	lut.Pixels[i+2] = float32(value.Z())
	lut.Pixels[i+3] = 1
}

// At returns the stored transmittance of one texel.
func (lut *TransmittanceLUT) At(x, y int) mgl64.Vec3 {
	i := (y*lut.Width + x) * 4
	return mgl64.Vec3{
		float64(lut.Pixels[i+0]),
		float64(lut.Pixels[i+1]),
		float64(lut.Pixels[i+2]),
	}
}

// Sample filters the LUT bilinearly at a uv in [0,1]², clamping at the edges.
// Texels are centered, matching the uv the generator wrote them at.
func (lut *TransmittanceLUT) Sample(u, v float64) mgl64.Vec3 {
	fx := u*float64(lut.Width) - 0.5
	fy := v*float64(lut.Height) - 0.5

	x0 := int(math.Floor(fx))
	y0 := int(math.Floor(fy))
	tx := fx - float64(x0)
	ty := fy - float64(y0)

	x1 := clampIndex(x0+1, lut.Width)
	y1 := clampIndex(y0+1, lut.Height)
	x0 = clampIndex(x0, lut.Width)
	y0 = clampIndex(y0, lut.Height)

	top := lut.At(x0, y0).Mul(1 - tx).Add(lut.At(x1, y0).Mul(tx))
	bottom := lut.At(x0, y1).Mul(1 - tx).Add(lut.At(x1, y1).Mul(tx))
	return top.Mul(1 - ty).Add(bottom.Mul(ty))
}

// Lookup samples the transmittance for a physical ray query, applying the
// same non-linear mapping the generator used. This is the entry point for the
// passes that consume the LUT (sky view, aerial perspective, multi-scatter).
func (lut *TransmittanceLUT) Lookup(params AtmosphereParameters, viewHeight, cosZenith float64) mgl64.Vec3 {
	u, v := transmittanceParamsToUV(params, viewHeight, cosZenith)
	return lut.Sample(u, v)
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
