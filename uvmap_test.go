package atmo

import (
	"math"
	"testing"
)

func TestUVMap_GroundRow(t *testing.T) {
	params := EarthAtmosphere()

	// v=0 is the ground: rho=0, viewer on the surface.
	viewHeight, _ := transmittanceUVToParams(params, 0.5, 0)
	if math.Abs(viewHeight-params.GroundRadius) > 1e-9 {
		t.Errorf("v=0 should decode to ground radius, got %g", viewHeight)
	}

	// u=1 at ground level is the grazing horizon ray.
	_, cosZenith := transmittanceUVToParams(params, 1, 0)
	if math.Abs(cosZenith) > 1e-9 {
		t.Errorf("u=1 v=0 should look at the horizon (cos=0), got %g", cosZenith)
	}
}

func TestUVMap_TopRow(t *testing.T) {
	params := EarthAtmosphere()

	// v=1 is the atmosphere boundary; u=0 makes the path degenerate and the
	// mapping must fall back to looking straight up instead of dividing by ~0.
	viewHeight, cosZenith := transmittanceUVToParams(params, 0, 1)
	if math.Abs(viewHeight-params.AtmosphereRadius) > 1e-6 {
		t.Errorf("v=1 should decode to atmosphere radius, got %g", viewHeight)
	}
	if cosZenith < 1-1e-9 {
		t.Errorf("degenerate path must decode as straight up, got %g", cosZenith)
	}
}

func TestUVMap_CosZenithStaysInRange(t *testing.T) {
	params := EarthAtmosphere()
	for vi := 0; vi <= 32; vi++ {
		for ui := 0; ui <= 32; ui++ {
			u := float64(ui) / 32
			v := float64(vi) / 32
			viewHeight, cosZenith := transmittanceUVToParams(params, u, v)
			if cosZenith < -1 || cosZenith > 1 {
				t.Fatalf("cosZenith out of range at u=%g v=%g: %g", u, v, cosZenith)
			}
			if viewHeight < params.GroundRadius-1e-9 || viewHeight > params.AtmosphereRadius+1e-9 {
				t.Fatalf("viewHeight out of range at u=%g v=%g: %g", u, v, viewHeight)
			}
			if math.IsNaN(cosZenith) || math.IsNaN(viewHeight) {
				t.Fatalf("NaN at u=%g v=%g", u, v)
			}
		}
	}
}

func TestUVMap_RoundTrip(t *testing.T) {
	params := EarthAtmosphere()

	// Texel centers of the full-resolution grid; boundary exactness is not
	// part of the contract (u clamps, the degenerate corner pins cos to 1).
	for yi := 0; yi < DefaultLUTHeight; yi += 7 {
		for xi := 0; xi < DefaultLUTWidth; xi += 13 {
			u := (float64(xi) + 0.5) / DefaultLUTWidth
			v := (float64(yi) + 0.5) / DefaultLUTHeight

			viewHeight, cosZenith := transmittanceUVToParams(params, u, v)
			u2, v2 := transmittanceParamsToUV(params, viewHeight, cosZenith)

			if math.Abs(u2-u) > 1e-6 || math.Abs(v2-v) > 1e-6 {
				t.Errorf("round trip drift at (%g, %g): got (%g, %g)", u, v, u2, v2)
			}
		}
	}
}

func TestUVMap_InverseClampsAboveBoundary(t *testing.T) {
	params := EarthAtmosphere()

	// The same float noise the forward mapping defends against can leave a
	// viewHeight a hair above the outer shell; v must stay inside the grid.
	u, v := transmittanceParamsToUV(params, params.AtmosphereRadius+1e-9, 0)
	if math.IsNaN(u) || math.IsNaN(v) {
		t.Fatalf("inverse mapping produced NaN: u=%g v=%g", u, v)
	}
	if v > 1 {
		t.Errorf("above-boundary viewHeight should clamp to v=1, got %g", v)
	}
	if u < 0 || u > 1 {
		t.Errorf("u out of range: %g", u)
	}
}

func TestUVMap_InverseClampsBelowGround(t *testing.T) {
	params := EarthAtmosphere()

	// Float noise can hand the inverse a viewHeight a hair under the ground
	// radius; rho must clamp to 0 rather than go NaN.
	u, v := transmittanceParamsToUV(params, params.GroundRadius-1e-9, 1)
	if math.IsNaN(u) || math.IsNaN(v) {
		t.Fatalf("inverse mapping produced NaN: u=%g v=%g", u, v)
	}
	if v != 0 {
		t.Errorf("below-ground viewHeight should clamp to v=0, got %g", v)
	}
}
