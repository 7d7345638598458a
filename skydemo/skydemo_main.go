package main

import (
	_ "embed"
	"flag"
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/gekko3d/atmo"
	"github.com/go-gl/glfw/v3.3/glfw"
)

//go:embed blit.wgsl
var blitWGSL string

func init() {
	runtime.LockOSThread()
}

func main() {
	debug := flag.Bool("debug", false, "Enable debug logging")
	preview := flag.String("preview", "", "Also write a PNG preview of the LUT to this path")
	flag.Parse()

	logger := atmo.NewDefaultLogger("skydemo", *debug)

	params := atmo.EarthAtmosphere()
	lut, err := atmo.GenerateTransmittanceLUT(params, atmo.LUTOptions{Logger: logger})
	if err != nil {
		panic(err)
	}

	if *preview != "" {
		if err := lut.ExportPreviewPNG(*preview, 4); err != nil {
			logger.Errorf("preview export failed: %v", err)
		}
	}

	if err := glfw.Init(); err != nil {
		panic(err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.Resizable, glfw.False)
	window, err := glfw.CreateWindow(1024, 256, "Transmittance LUT", nil, nil)
	if err != nil {
		panic(err)
	}
	defer window.Destroy()

	instance := wgpu.CreateInstance(nil)
	defer instance.Release()
	surface := instance.CreateSurface(wgpuglfw.GetSurfaceDescriptor(window))

	adapter, err := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: surface,
		PowerPreference:   wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		panic(err)
	}
	device, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Sky Demo Device",
		// Bilinear filtering of the RGBA32F LUT needs this.
		RequiredFeatures: []wgpu.FeatureName{wgpu.FeatureNameFloat32Filterable},
	})
	if err != nil {
		panic(err)
	}
	queue := device.GetQueue()

	caps := surface.GetCapabilities(adapter)
	surfaceConfig := wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      caps.Formats[0],
		Width:       1024,
		Height:      256,
		PresentMode: wgpu.PresentModeFifo,
		AlphaMode:   caps.AlphaModes[0],
	}
	surface.Configure(adapter, device, &surfaceConfig)

	gpuLUT, err := atmo.UploadTransmittanceLUT(device, queue, lut)
	if err != nil {
		panic(err)
	}
	defer gpuLUT.Release()

	shader, err := device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "blit",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: blitWGSL},
	})
	if err != nil {
		panic(err)
	}
	defer shader.Release()

	pipeline, err := device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Vertex: wgpu.VertexState{
			Module:     shader,
			EntryPoint: "vs_main",
		},
		Fragment: &wgpu.FragmentState{
			Module:     shader,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{
				{
					Format:    surfaceConfig.Format,
					Blend:     nil,
					WriteMask: wgpu.ColorWriteMaskAll,
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		panic(err)
	}
	defer pipeline.Release()

	layout := pipeline.GetBindGroupLayout(0)
	bindGroup, err := device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Layout: layout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, TextureView: gpuLUT.View},
			{Binding: 1, Sampler: gpuLUT.Sampler},
		},
	})
	layout.Release()
	if err != nil {
		panic(err)
	}
	defer bindGroup.Release()

	for !window.ShouldClose() {
		glfw.PollEvents()
		renderFrame(surface, device, queue, pipeline, bindGroup)
	}
}

func renderFrame(surface *wgpu.Surface, device *wgpu.Device, queue *wgpu.Queue, pipeline *wgpu.RenderPipeline, bindGroup *wgpu.BindGroup) {
	nextTexture, err := surface.GetCurrentTexture()
	if err != nil {
		panic(err)
	}
	view, err := nextTexture.CreateView(nil)
	if err != nil {
		panic(err)
	}
	defer view.Release()

	encoder, err := device.CreateCommandEncoder(nil)
	if err != nil {
		panic(err)
	}
	defer encoder.Release()

	renderPass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       view,
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    wgpu.StoreOpStore,
				ClearValue: wgpu.Color{R: 0, G: 0, B: 0, A: 1},
			},
		},
	})
	defer renderPass.Release()

	renderPass.SetPipeline(pipeline)
	renderPass.SetBindGroup(0, bindGroup, nil)
	renderPass.Draw(3, 1, 0, 0)
	if err := renderPass.End(); err != nil {
		panic(err)
	}

	cmdBuffer, err := encoder.Finish(nil)
	if err != nil {
		panic(err)
	}
	defer cmdBuffer.Release()

	queue.Submit(cmdBuffer)
	surface.Present()
}
