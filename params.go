package atmo

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl64"
)

// AtmosphereParameters describes a planet's participating medium.
// All distances are in kilometers, all coefficients per kilometer.
// Scattering/absorption vectors are RGB, matched to the usual
// [650, 570, 475]nm wavelengths.
type AtmosphereParameters struct {
	GroundRadius     float64 `json:"ground_radius_km"`
	AtmosphereRadius float64 `json:"atmosphere_radius_km"`

	RayleighScattering  mgl64.Vec3 `json:"rayleigh_scattering"`
	RayleighScaleHeight float64    `json:"rayleigh_scale_height_km"`

	MieScattering  float64 `json:"mie_scattering"`
	MieAbsorption  float64 `json:"mie_absorption"`
	MieScaleHeight float64 `json:"mie_scale_height_km"`

	OzoneAbsorption     mgl64.Vec3 `json:"ozone_absorption"`
	OzoneCenterAltitude float64    `json:"ozone_center_altitude_km"`
	OzoneLayerWidth     float64    `json:"ozone_layer_width_km"`
}

// EarthAtmosphere returns the standard Earth model (Hillaire's coefficients,
// converted to per-kilometer units).
func EarthAtmosphere() AtmosphereParameters {
	return AtmosphereParameters{
		GroundRadius:     6360.0,
		AtmosphereRadius: 6460.0,

		RayleighScattering:  mgl64.Vec3{5.802e-3, 13.558e-3, 33.1e-3},
		RayleighScaleHeight: 8.0,

		MieScattering:  3.996e-3,
		MieAbsorption:  4.4e-3,
		MieScaleHeight: 1.2,

		OzoneAbsorption:     mgl64.Vec3{0.650e-3, 1.881e-3, 0.085e-3},
		OzoneCenterAltitude: 25.0,
		OzoneLayerWidth:     15.0,
	}
}

// Validate checks the geometric and density-profile constraints. A parameter
// set that fails validation would produce NaNs or negative optical depths in
// the generators, so this is the single place configuration errors surface.
func (p AtmosphereParameters) Validate() error {
	if p.GroundRadius <= 0 {
		return fmt.Errorf("ground radius must be positive, got %g km", p.GroundRadius)
	}
	if p.AtmosphereRadius <= p.GroundRadius {
		return fmt.Errorf("atmosphere radius (%g km) must exceed ground radius (%g km)",
			p.AtmosphereRadius, p.GroundRadius)
	}
	if p.RayleighScaleHeight <= 0 {
		return fmt.Errorf("rayleigh scale height must be positive, got %g km", p.RayleighScaleHeight)
	}
	if p.MieScaleHeight <= 0 {
		return fmt.Errorf("mie scale height must be positive, got %g km", p.MieScaleHeight)
	}
	if p.OzoneLayerWidth <= 0 {
		return fmt.Errorf("ozone layer width must be positive, got %g km", p.OzoneLayerWidth)
	}
	return nil
}

// SaveParams writes the parameter set as indented JSON.
func SaveParams(params AtmosphereParameters, filename string) error {
	bytes, err := json.MarshalIndent(params, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filename, bytes, 0644)
}

// LoadParams reads a parameter set back and validates it.
func LoadParams(filename string) (AtmosphereParameters, error) {
	var params AtmosphereParameters

	bytes, err := os.ReadFile(filename)
	if err != nil {
		return params, err
	}
	if err := json.Unmarshal(bytes, &params); err != nil {
		return params, fmt.Errorf("parsing %s: %w", filename, err)
	}
	if err := params.Validate(); err != nil {
		return params, fmt.Errorf("invalid atmosphere in %s: %w", filename, err)
	}
	return params, nil
}
