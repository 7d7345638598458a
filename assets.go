package atmo

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

type AssetId string

func makeAssetId() AssetId {
	return AssetId(uuid.NewString())
}

// SkyAssetServer owns generated LUTs. Identical atmosphere parameters reuse
// the cached LUT instead of regenerating; a changed parameter set produces a
// fresh asset under a new id, the old LUT is never mutated in place.
type SkyAssetServer struct {
	mu     sync.Mutex
	luts   map[AssetId]*TransmittanceLUT
	byKey  map[string]AssetId
	logger Logger
}

func NewSkyAssetServer(logger Logger) *SkyAssetServer {
	if logger == nil {
		logger = NewNopLogger()
	}
	return &SkyAssetServer{
		luts:   make(map[AssetId]*TransmittanceLUT),
		byKey:  make(map[string]AssetId),
		logger: logger,
	}
}

// TransmittanceLUT returns a LUT for the given atmosphere, generating it on
// first request and serving the cached asset afterwards.
func (server *SkyAssetServer) TransmittanceLUT(params AtmosphereParameters, opts LUTOptions) (AssetId, *TransmittanceLUT, error) {
	key := lutCacheKey(params, opts)

	server.mu.Lock()
	if id, ok := server.byKey[key]; ok {
		lut := server.luts[id]
		server.mu.Unlock()
		server.logger.Debugf("transmittance LUT cache hit: %s", id)
		return id, lut, nil
	}
	server.mu.Unlock()

	// Generate outside the lock; the pass can take a while on big grids.
	opts.Logger = server.logger
	lut, err := GenerateTransmittanceLUT(params, opts)
	if err != nil {
		return "", nil, err
	}

	server.mu.Lock()
	defer server.mu.Unlock()
	// A concurrent request may have won the race; keep the first asset.
	if id, ok := server.byKey[key]; ok {
		return id, server.luts[id], nil
	}
	id := makeAssetId()
	server.luts[id] = lut
	server.byKey[key] = id
	return id, lut, nil
}

// Get looks up a previously generated LUT by id.
func (server *SkyAssetServer) Get(id AssetId) (*TransmittanceLUT, bool) {
	server.mu.Lock()
	defer server.mu.Unlock()
	lut, ok := server.luts[id]
	return lut, ok
}

// Drop removes an asset, typically after its GPU copy has been uploaded and
// the CPU-side buffer is no longer needed.
func (server *SkyAssetServer) Drop(id AssetId) {
	server.mu.Lock()
	defer server.mu.Unlock()
	if _, ok := server.luts[id]; ok {
		delete(server.luts, id)
		for key, cached := range server.byKey {
			if cached == id {
				delete(server.byKey, key)
				break
			}
		}
	}
}

func lutCacheKey(params AtmosphereParameters, opts LUTOptions) string {
	opts = opts.withDefaults()
	// Workers and logging do not affect the output; resolution and step
	// count do.
	return fmt.Sprintf("%+v/%dx%d/%d", params, opts.Width, opts.Height, opts.Steps)
}
