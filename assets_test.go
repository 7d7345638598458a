package atmo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssets_CachesByParameters(t *testing.T) {
	server := NewSkyAssetServer(nil)
	opts := LUTOptions{Width: 16, Height: 8}

	id1, lut1, err := server.TransmittanceLUT(EarthAtmosphere(), opts)
	require.NoError(t, err)

	id2, lut2, err := server.TransmittanceLUT(EarthAtmosphere(), opts)
	require.NoError(t, err)

	assert.Equal(t, id1, id2)
	assert.Same(t, lut1, lut2)
}

func TestAssets_NewParametersNewAsset(t *testing.T) {
	server := NewSkyAssetServer(nil)
	opts := LUTOptions{Width: 16, Height: 8}

	id1, lut1, err := server.TransmittanceLUT(EarthAtmosphere(), opts)
	require.NoError(t, err)

	thicker := EarthAtmosphere()
	thicker.RayleighScaleHeight = 10

	id2, lut2, err := server.TransmittanceLUT(thicker, opts)
	require.NoError(t, err)

	assert.NotEqual(t, id1, id2)
	assert.NotSame(t, lut1, lut2)

	// The original asset survives untouched; regeneration never mutates.
	got, ok := server.Get(id1)
	require.True(t, ok)
	assert.Same(t, lut1, got)
}

func TestAssets_ResolutionIsPartOfTheKey(t *testing.T) {
	server := NewSkyAssetServer(nil)

	id1, _, err := server.TransmittanceLUT(EarthAtmosphere(), LUTOptions{Width: 16, Height: 8})
	require.NoError(t, err)
	id2, _, err := server.TransmittanceLUT(EarthAtmosphere(), LUTOptions{Width: 32, Height: 8})
	require.NoError(t, err)

	assert.NotEqual(t, id1, id2)
}

func TestAssets_InvalidParamsSurfaceError(t *testing.T) {
	server := NewSkyAssetServer(nil)
	params := EarthAtmosphere()
	params.AtmosphereRadius = params.GroundRadius

	_, _, err := server.TransmittanceLUT(params, LUTOptions{Width: 8, Height: 4})
	assert.Error(t, err)
}

func TestAssets_Drop(t *testing.T) {
	server := NewSkyAssetServer(nil)
	opts := LUTOptions{Width: 8, Height: 4}

	id, _, err := server.TransmittanceLUT(EarthAtmosphere(), opts)
	require.NoError(t, err)

	server.Drop(id)
	_, ok := server.Get(id)
	assert.False(t, ok)

	// A dropped asset regenerates under a fresh id.
	id2, _, err := server.TransmittanceLUT(EarthAtmosphere(), opts)
	require.NoError(t, err)
	assert.NotEqual(t, id, id2)
}
