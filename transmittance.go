package atmo

import (
	"fmt"
	"math"
	"runtime"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	DefaultLUTWidth  = 256
	DefaultLUTHeight = 64
	DefaultLUTSteps  = 40
)

// LUTOptions tunes a LUT generation pass. The zero value asks for the
// standard 256x64 grid, 40 integration steps and one worker per CPU. Small
// grids are valid and cheap, which is what the tests use.
type LUTOptions struct {
	Width  int
	Height int
	// Steps is the number of extinction samples per texel. 40 is generous;
	// the pass runs once per parameter change, not per frame.
	Steps   int
	Workers int
	Logger  Logger
}

func (opts LUTOptions) withDefaults() LUTOptions {
	if opts.Width <= 0 {
		opts.Width = DefaultLUTWidth
	}
	if opts.Height <= 0 {
		opts.Height = DefaultLUTHeight
	}
	if opts.Steps <= 0 {
		opts.Steps = DefaultLUTSteps
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	if opts.Logger == nil {
		opts.Logger = NewNopLogger()
	}
	return opts
}

// GenerateTransmittanceLUT precomputes, for every (altitude, zenith angle)
// texel, the fraction of light that survives the trip from that point to the
// edge of the atmosphere. Texels are fully independent, so rows are handed to
// a worker pool; each worker writes disjoint slices of the pixel buffer.
//
// Invalid parameters are the only failure mode and are rejected up front.
func GenerateTransmittanceLUT(params AtmosphereParameters, opts LUTOptions) (*TransmittanceLUT, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("transmittance LUT: %w", err)
	}
	opts = opts.withDefaults()
	logger := opts.Logger

	lut := newTransmittanceLUT(opts.Width, opts.Height)
	logger.Infof("generating %dx%d transmittance LUT, %d steps, %d workers",
		opts.Width, opts.Height, opts.Steps, opts.Workers)
	start := time.Now()

	rows := make(chan int, opts.Height)
	for y := 0; y < opts.Height; y++ {
		rows <- y
	}
	close(rows)

	var wg sync.WaitGroup
	wg.Add(opts.Workers)
	for i := 0; i < opts.Workers; i++ {
		go func() {
			defer wg.Done()
			for y := range rows {
				for x := 0; x < opts.Width; x++ {
					lut.writeTexel(x, y, transmittanceTexel(params, x, y, opts))
				}
				if logger.DebugEnabled() {
					logger.Debugf("transmittance row %d done", y)
				}
			}
		}()
	}
	wg.Wait()

	logger.Infof("transmittance LUT ready in %v", time.Since(start))
	return lut, nil
}

// transmittanceTexel evaluates one texel of the LUT.
func transmittanceTexel(params AtmosphereParameters, x, y int, opts LUTOptions) mgl64.Vec3 {
	// Sample at texel centers. Corner sampling would skew every decoded
	// altitude by half a texel and desync the LUT from its consumers.
	u := (float64(x) + 0.5) / float64(opts.Width)
	v := (float64(y) + 0.5) / float64(opts.Height)

	viewHeight, cosZenith := transmittanceUVToParams(params, u, v)
	return ComputeTransmittance(params, viewHeight, cosZenith, opts.Steps)
}

// ComputeTransmittance integrates the exact transmittance from a point at
// viewHeight along a direction with the given zenith cosine, without going
// through the LUT. The ray is built in the plane spanned by "up" and the view
// direction; by symmetry around the zenith axis that loses nothing.
func ComputeTransmittance(params AtmosphereParameters, viewHeight, cosZenith float64, steps int) mgl64.Vec3 {
	if steps <= 0 {
		steps = DefaultLUTSteps
	}
	sinZenith := math.Sqrt(math.Max(0, 1-cosZenith*cosZenith))
	origin := mgl64.Vec3{0, viewHeight, 0}
	dir := mgl64.Vec3{sinZenith, cosZenith, 0}

	hitAtmo, tNearAtmo, tFarAtmo := intersectSphere(origin, dir, params.AtmosphereRadius)
	if !hitAtmo {
		return mgl64.Vec3{1, 1, 1}
	}
	marchStart := math.Max(tNearAtmo, 0)
	marchDist := tFarAtmo - marchStart

	// The planet blocks the ray; integrating past the surface would count
	// atmosphere the light never reaches.
	if hitGround, tNearGround, _ := intersectSphere(origin, dir, params.GroundRadius); hitGround && tNearGround > 0 {
		marchDist = math.Min(marchDist, tNearGround-marchStart)
	}

	// Float noise at the outer boundary can decode to a ray that misses
	// everything; an empty path attenuates nothing.
	if marchDist <= 0 {
		return mgl64.Vec3{1, 1, 1}
	}

	opticalDepth := integrateOpticalDepth(params, origin, dir, marchStart, marchDist, steps)
	return mgl64.Vec3{
		math.Exp(-opticalDepth.X()),
		math.Exp(-opticalDepth.Y()),
		math.Exp(-opticalDepth.Z()),
	}
}

// integrateOpticalDepth accumulates extinction along [start, start+dist]
// with the midpoint rule, which halves the discretization bias of a
// one-sided Riemann sum at the same sample count.
func integrateOpticalDepth(params AtmosphereParameters, origin, dir mgl64.Vec3, start, dist float64, steps int) mgl64.Vec3 {
	stepSize := dist / float64(steps)

	var depth mgl64.Vec3
	for i := 0; i < steps; i++ {
		t := start + (float64(i)+0.5)*stepSize
		position := origin.Add(dir.Mul(t))
		depth = depth.Add(sampleExtinction(params, position).Mul(stepSize))
	}
	return depth
}
