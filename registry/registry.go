// Package registry operates the global registry of trajectory factories and routes service
// requests to the factories a config asks for.
package registry

import (
	"context"
	"sort"
	"sync"

	"github.com/invopop/jsonschema"
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"go.viam.com/autopilot/config"
	"go.viam.com/autopilot/logging"
	"go.viam.com/autopilot/path"
)

// A Factory turns service requests into trajectories held by a path manager.
type Factory interface {
	// Name returns the model the factory was registered under.
	Name() string
	// Service returns the service name the factory answers on.
	Service() string
	// Handle decodes a request, acts on it and returns the encoded response.
	Handle(ctx context.Context, request []byte) ([]byte, error)
}

// A CreateFactory creates a factory from a given config.
type CreateFactory func(
	ctx context.Context,
	cfg config.Factory,
	manager *path.Manager,
	logger logging.Logger,
) (Factory, error)

var (
	factoryRegistryMu sync.RWMutex
	factoryRegistry   = map[string]CreateFactory{}
	schemaRegistry    = map[string]*jsonschema.Schema{}
)

// RegisterFactory registers a factory model to a creator.
func RegisterFactory(model string, creator CreateFactory) {
	factoryRegistryMu.Lock()
	defer factoryRegistryMu.Unlock()
	_, old := factoryRegistry[model]
	if old {
		panic(errors.Errorf("trying to register two factories with same model %s", model))
	}
	if creator == nil {
		panic(errors.Errorf("cannot register a nil constructor for model %s", model))
	}
	factoryRegistry[model] = creator
}

// FactoryLookup looks up a factory creator by the given model. nil is returned if
// there is no creator registered.
func FactoryLookup(model string) CreateFactory {
	factoryRegistryMu.RLock()
	defer factoryRegistryMu.RUnlock()
	return factoryRegistry[model]
}

// RegisteredFactories returns the registered factory models, sorted.
func RegisteredFactories() []string {
	factoryRegistryMu.RLock()
	defer factoryRegistryMu.RUnlock()
	models := lo.Keys(factoryRegistry)
	sort.Strings(models)
	return models
}

// RegisterRequestSchema records the JSON schema of the requests a factory model accepts.
func RegisterRequestSchema(model string, schema *jsonschema.Schema) {
	factoryRegistryMu.Lock()
	defer factoryRegistryMu.Unlock()
	if _, old := schemaRegistry[model]; old {
		panic(errors.Errorf("trying to register two request schemas for model %s", model))
	}
	schemaRegistry[model] = schema
}

// RequestSchemaLookup returns the request schema of a factory model, nil if none was registered.
func RequestSchemaLookup(model string) *jsonschema.Schema {
	factoryRegistryMu.RLock()
	defer factoryRegistryMu.RUnlock()
	return schemaRegistry[model]
}
