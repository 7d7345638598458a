package atmo

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// sampleExtinction evaluates the total extinction coefficient at a world
// position (planet center at the origin, kilometers). Rayleigh and Mie
// densities fall off exponentially with altitude; ozone is a triangular
// layer peaking at OzoneCenterAltitude.
//
// Altitude can come out slightly negative from float noise at the ground
// boundary; the exponentials stay finite there so no clamp is needed.
func sampleExtinction(params AtmosphereParameters, position mgl64.Vec3) mgl64.Vec3 {
	altitude := position.Len() - params.GroundRadius

	rayleighDensity := math.Exp(-altitude / params.RayleighScaleHeight)
	mieDensity := math.Exp(-altitude / params.MieScaleHeight)
	ozoneDensity := math.Max(0, 1-math.Abs(altitude-params.OzoneCenterAltitude)/params.OzoneLayerWidth)

	extinction := params.RayleighScattering.Mul(rayleighDensity)
	extinction = extinction.Add(mgl64.Vec3{1, 1, 1}.Mul((params.MieScattering + params.MieAbsorption) * mieDensity))
	extinction = extinction.Add(params.OzoneAbsorption.Mul(ozoneDensity))
	return extinction
}
