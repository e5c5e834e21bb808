package registry

import (
	"context"
	"fmt"
	"sort"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"go.uber.org/multierr"

	"go.viam.com/autopilot/config"
	"go.viam.com/autopilot/logging"
	"go.viam.com/autopilot/path"
)

// Router dispatches requests by service name to the factories built from a config.
type Router struct {
	logger    logging.Logger
	factories map[string]Factory
}

// NewRouter builds every factory named in cfg. All construction failures are reported together
// and no router is returned if any factory could not be built. A nil logger means the global one.
func NewRouter(ctx context.Context, cfg *config.Config, manager *path.Manager, logger logging.Logger) (*Router, error) {
	if logger == nil {
		logger = logging.Global().Sublogger("factory")
	}
	r := &Router{logger: logger, factories: map[string]Factory{}}

	var errs error
	for idx, fc := range cfg.Factories {
		factoryPath := fmt.Sprintf("factories.%d", idx)
		creator := FactoryLookup(fc.Type)
		if creator == nil {
			errs = multierr.Append(errs, errors.Errorf("%s: unknown factory type %q", factoryPath, fc.Type))
			continue
		}
		f, err := creator(ctx, fc, manager, logger.Sublogger(fc.Type))
		if err != nil {
			errs = multierr.Append(errs, errors.Wrapf(err, "%s: cannot build %q factory", factoryPath, fc.Type))
			continue
		}
		if existing, ok := r.factories[f.Service()]; ok {
			errs = multierr.Append(errs, errors.Errorf("%s: service %q already served by a %q factory",
				factoryPath, f.Service(), existing.Name()))
			continue
		}
		r.factories[f.Service()] = f
		logger.Debugw("factory ready", "type", f.Name(), "service", f.Service())
	}
	if errs != nil {
		return nil, errs
	}
	return r, nil
}

// Call hands request to the factory serving service and returns its response.
func (r *Router) Call(ctx context.Context, service string, request []byte) ([]byte, error) {
	f, ok := r.factories[service]
	if !ok {
		return nil, errors.Errorf("no factory serves %q", service)
	}
	return f.Handle(ctx, request)
}

// Services returns the served service names, sorted.
func (r *Router) Services() []string {
	services := lo.Keys(r.factories)
	sort.Strings(services)
	return services
}
