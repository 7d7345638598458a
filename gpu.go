package atmo

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

const lutBytesPerPixel = 16 // RGBA32Float

// GpuLUT is the device-side copy of a transmittance LUT: the texture, a
// default view, and a bilinear clamp-to-edge sampler matching the CPU-side
// Sample contract. Filtering an RGBA32Float texture needs the
// float32-filterable device feature; request it when acquiring the device.
type GpuLUT struct {
	Texture *wgpu.Texture
	View    *wgpu.TextureView
	Sampler *wgpu.Sampler
}

// UploadTransmittanceLUT copies a generated LUT into a GPU texture the sky
// passes can bind.
func UploadTransmittanceLUT(device *wgpu.Device, queue *wgpu.Queue, lut *TransmittanceLUT) (*GpuLUT, error) {
	extent := wgpu.Extent3D{
		Width:              uint32(lut.Width),
		Height:             uint32(lut.Height),
		DepthOrArrayLayers: 1,
	}
	texture, err := device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         "Transmittance LUT",
		Size:          extent,
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatRGBA32Float,
		Usage:         wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("creating LUT texture: %w", err)
	}

	err = queue.WriteTexture(
		texture.AsImageCopy(),
		wgpu.ToBytes(lut.Pixels),
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  uint32(lut.Width) * lutBytesPerPixel,
			RowsPerImage: uint32(lut.Height),
		},
		&extent,
	)
	if err != nil {
		texture.Release()
		return nil, fmt.Errorf("uploading LUT texels: %w", err)
	}

	view, err := texture.CreateView(nil)
	if err != nil {
		texture.Release()
		return nil, fmt.Errorf("creating LUT texture view: %w", err)
	}

	sampler, err := device.CreateSampler(&wgpu.SamplerDescriptor{
		AddressModeU:  wgpu.AddressModeClampToEdge,
		AddressModeV:  wgpu.AddressModeClampToEdge,
		AddressModeW:  wgpu.AddressModeClampToEdge,
		MagFilter:     wgpu.FilterModeLinear,
		MinFilter:     wgpu.FilterModeLinear,
		MipmapFilter:  wgpu.MipmapFilterModeNearest,
		LodMinClamp:   0.,
		LodMaxClamp:   1.,
		Compare:       wgpu.CompareFunctionUndefined,
		MaxAnisotropy: 1,
	})
	if err != nil {
		view.Release()
		texture.Release()
		return nil, fmt.Errorf("creating LUT sampler: %w", err)
	}

	return &GpuLUT{Texture: texture, View: view, Sampler: sampler}, nil
}

func (g *GpuLUT) Release() {
	if g.Sampler != nil {
		g.Sampler.Release()
	}
	if g.View != nil {
		g.View.Release()
	}
	if g.Texture != nil {
		g.Texture.Release()
	}
}
