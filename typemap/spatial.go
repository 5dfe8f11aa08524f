package typemap

import (
	"reflect"
	"sync"

	schemakit "github.com/shibukawa/schemakit"
)

// Spatial type support is optional: geometry handling needs an external
// geometry package the application may not carry. Applications that want
// spatial columns register their geometry Go type (for example a WKB wrapper)
// together with each provider's native spelling; until then, spatial catalog
// types simply fail the ok=false way instead of erroring.

type spatialRegistration struct {
	goType      reflect.Type
	nativeNames map[schemakit.ProviderType]string
}

var (
	spatialMu       sync.RWMutex
	spatialTypes    []spatialRegistration
	spatialDetected *bool // cache-once detection result, resettable for tests
)

// RegisterSpatialType registers a Go type for spatial columns plus the native
// base type name it maps to on each provider.
func RegisterSpatialType(goType reflect.Type, nativeNames map[schemakit.ProviderType]string) {
	spatialMu.Lock()
	defer spatialMu.Unlock()

	spatialTypes = append(spatialTypes, spatialRegistration{goType: goType, nativeNames: nativeNames})
	spatialDetected = nil
}

// SpatialTypesAvailable lazily detects whether any spatial registration
// exists and caches the answer until reset.
func SpatialTypesAvailable() bool {
	spatialMu.RLock()
	if spatialDetected != nil {
		v := *spatialDetected
		spatialMu.RUnlock()
		return v
	}
	spatialMu.RUnlock()

	spatialMu.Lock()
	defer spatialMu.Unlock()

	v := len(spatialTypes) > 0
	spatialDetected = &v
	return v
}

// ResetSpatialDetection clears registrations and the cached detection result.
// Test isolation only.
func ResetSpatialDetection() {
	spatialMu.Lock()
	defer spatialMu.Unlock()

	spatialTypes = nil
	spatialDetected = nil
}

// spatialGoTypeFor resolves a catalog spatial base type to a registered Go
// type for one provider.
func spatialGoTypeFor(p schemakit.ProviderType, baseTypeName string) (reflect.Type, bool) {
	if !SpatialTypesAvailable() {
		return nil, false
	}

	spatialMu.RLock()
	defer spatialMu.RUnlock()

	for _, reg := range spatialTypes {
		if reg.nativeNames[p] == baseTypeName {
			return reg.goType, true
		}
	}
	return nil, false
}

// spatialSQLTypeFor resolves a registered spatial Go type to its native base
// type name for one provider.
func spatialSQLTypeFor(p schemakit.ProviderType, goType reflect.Type) (string, bool) {
	if !SpatialTypesAvailable() {
		return "", false
	}

	spatialMu.RLock()
	defer spatialMu.RUnlock()

	for _, reg := range spatialTypes {
		if reg.goType == goType {
			if name, ok := reg.nativeNames[p]; ok {
				return name, true
			}
		}
	}
	return "", false
}
