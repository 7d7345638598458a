package atmo

import "math"

// The transmittance LUT does not use a linear (altitude, angle) grid. It uses
// the Bruneton mapping: v is the distance from the viewer to the ground
// tangent point, u is the travel distance to the atmosphere boundary, both
// normalized. This packs texels densely around the horizon, where
// transmittance changes fastest. The generator and every consumer of the LUT
// must use the exact same mapping or the lighting silently breaks.

// transmittanceUVToParams decodes a texel coordinate in [0,1]² into the
// physical ray query: distance from the planet center and cosine of the
// zenith angle.
func transmittanceUVToParams(params AtmosphereParameters, u, v float64) (viewHeight, cosZenith float64) {
	groundRadius2 := params.GroundRadius * params.GroundRadius
	// Longest possible sight line to the atmosphere edge, seen from the
	// ground tangent point.
	atmoH := math.Sqrt(params.AtmosphereRadius*params.AtmosphereRadius - groundRadius2)

	rho := atmoH * v
	viewHeight = math.Sqrt(rho*rho + groundRadius2)

	dMin := params.AtmosphereRadius - viewHeight
	dMax := rho + atmoH
	d := dMin + u*(dMax-dMin)

	denom := 2 * viewHeight * d
	if denom < 1e-6 {
		// Viewer sits on the atmosphere boundary looking straight up.
		return viewHeight, 1
	}
	cosZenith = (atmoH*atmoH - rho*rho - d*d) / denom
	cosZenith = math.Min(1, math.Max(-1, cosZenith))
	return viewHeight, cosZenith
}

// transmittanceParamsToUV is the algebraic inverse; sky passes use it to look
// up transmittance for an arbitrary ray.
func transmittanceParamsToUV(params AtmosphereParameters, viewHeight, cosZenith float64) (u, v float64) {
	groundRadius2 := params.GroundRadius * params.GroundRadius
	atmoRadius2 := params.AtmosphereRadius * params.AtmosphereRadius
	atmoH := math.Sqrt(atmoRadius2 - groundRadius2)

	// viewHeight can carry float noise on both shell boundaries; rho clamps
	// at the ground below and v clamps at the atmosphere edge above.
	rho := math.Sqrt(math.Max(0, viewHeight*viewHeight-groundRadius2))
	v = math.Min(1, rho/atmoH)

	// Distance along the ray to the atmosphere boundary, from the same
	// quadratic the generator marches against.
	disc := viewHeight*viewHeight*(cosZenith*cosZenith-1) + atmoRadius2
	d := math.Max(0, -viewHeight*cosZenith+math.Sqrt(math.Max(0, disc)))

	dMin := params.AtmosphereRadius - viewHeight
	dMax := rho + atmoH
	u = (d - dMin) / (dMax - dMin)
	u = math.Min(1, math.Max(0, u))
	return u, v
}
