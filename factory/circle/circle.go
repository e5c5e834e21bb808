// Package circle implements the factory that turns add_circle requests into circle
// trajectories held by the path manager.
package circle

import (
	"context"
	"encoding/json"

	"github.com/golang/geo/r3"
	"github.com/invopop/jsonschema"
	"github.com/pkg/errors"
	"github.com/yosuke-furukawa/json5/encoding/json5"

	"go.viam.com/autopilot/config"
	"go.viam.com/autopilot/logging"
	"go.viam.com/autopilot/path"
	"go.viam.com/autopilot/registry"
	"go.viam.com/autopilot/trajectory"
	"go.viam.com/autopilot/utils"
)

const (
	// ModelName is the factory type used in configs.
	ModelName = trajectory.CircleKind
	// DefaultService is the service the factory answers on when the config names none.
	DefaultService = "path/add_circle"
	// DefaultSpeedAttribute names the optional speed used when a request carries no speed.
	DefaultSpeedAttribute = "default_speed"
)

func init() {
	registry.RegisterFactory(ModelName, NewFactory)
	registry.RegisterRequestSchema(ModelName, jsonschema.Reflect(&AddCircleRequest{}))
}

// SpeedProfile carries the speed parameters of a request. Only the first one is used by circles.
type SpeedProfile struct {
	Parameters []float64 `json:"parameters"`
}

// AddCircleRequest asks for a circle trajectory to be added to the path.
type AddCircleRequest struct {
	Center []float64    `json:"center"`
	Normal []float64    `json:"normal"`
	Radius float64      `json:"radius"`
	Speed  SpeedProfile `json:"speed"`
}

// AddCircleResponse reports whether the circle was added.
type AddCircleResponse struct {
	Success bool `json:"success"`
}

// Factory adds circles to a path manager.
type Factory struct {
	service      string
	defaultSpeed *float64
	manager      *path.Manager
	logger       logging.Logger
}

// NewFactory creates a circle factory from a given config.
func NewFactory(
	ctx context.Context,
	cfg config.Factory,
	manager *path.Manager,
	logger logging.Logger,
) (registry.Factory, error) {
	if manager == nil {
		return nil, errors.New("circle factory needs a path manager")
	}
	f := &Factory{
		service: cfg.Service,
		manager: manager,
		logger:  logger,
	}
	if f.service == "" {
		f.service = DefaultService
	}
	if cfg.Attributes.Has(DefaultSpeedAttribute) {
		speed, err := cfg.Attributes.Float64(DefaultSpeedAttribute, 0)
		if err != nil {
			return nil, err
		}
		if !utils.IsFinite(speed) {
			return nil, errors.Errorf("%s must be finite, got %v", DefaultSpeedAttribute, speed)
		}
		f.defaultSpeed = &speed
	}
	return f, nil
}

// Name returns ModelName.
func (f *Factory) Name() string {
	return ModelName
}

// Service returns the service name the factory answers on.
func (f *Factory) Service() string {
	return f.service
}

// Handle decodes a JSON5 AddCircleRequest and returns the JSON AddCircleResponse. The response
// is returned alongside any error so callers can still report success false.
func (f *Factory) Handle(ctx context.Context, request []byte) ([]byte, error) {
	var req AddCircleRequest
	if err := json5.Unmarshal(request, &req); err != nil {
		return encodeResponse(&AddCircleResponse{}, errors.Wrap(err, "malformed add_circle request"))
	}
	resp, err := f.AddCircle(ctx, &req)
	return encodeResponse(resp, err)
}

// AddCircle validates req, builds the circle and appends it to the path.
func (f *Factory) AddCircle(ctx context.Context, req *AddCircleRequest) (*AddCircleResponse, error) {
	if err := ctx.Err(); err != nil {
		return &AddCircleResponse{}, err
	}
	speed, err := f.speed(req)
	if err != nil {
		return &AddCircleResponse{}, err
	}
	center, err := toVector("center", req.Center)
	if err != nil {
		return &AddCircleResponse{}, err
	}
	normal, err := toVector("normal", req.Normal)
	if err != nil {
		return &AddCircleResponse{}, err
	}

	f.logger.Infow("adding circle trajectory",
		"speed", speed, "center", center, "normal", normal, "radius", req.Radius)

	if err := validate(center, normal, req.Radius, speed); err != nil {
		f.logger.Warnw("rejected circle trajectory", "error", err)
		return &AddCircleResponse{}, err
	}

	if _, err := f.manager.Add(trajectory.NewCircle(center, normal, req.Radius, speed)); err != nil {
		return &AddCircleResponse{}, err
	}
	return &AddCircleResponse{Success: true}, nil
}

func (f *Factory) speed(req *AddCircleRequest) (float64, error) {
	if len(req.Speed.Parameters) > 0 {
		return req.Speed.Parameters[0], nil
	}
	if f.defaultSpeed != nil {
		return *f.defaultSpeed, nil
	}
	return 0, errors.New("speed.parameters must hold at least one value")
}

func validate(center, normal r3.Vector, radius, speed float64) error {
	for _, field := range []struct {
		name  string
		value float64
	}{
		{"center.x", center.X}, {"center.y", center.Y}, {"center.z", center.Z},
		{"normal.x", normal.X}, {"normal.y", normal.Y}, {"normal.z", normal.Z},
		{"radius", radius}, {"speed", speed},
	} {
		if !utils.IsFinite(field.value) {
			return errors.Errorf("%s must be finite, got %v", field.name, field.value)
		}
	}
	if normal.Norm2() == 0 {
		return errors.New("normal must not be the zero vector")
	}
	if radius < 0 {
		return errors.Errorf("radius must not be negative, got %v", radius)
	}
	return nil
}

func toVector(field string, v []float64) (r3.Vector, error) {
	if len(v) != 3 {
		return r3.Vector{}, errors.Errorf("%s must hold exactly 3 values, got %d", field, len(v))
	}
	return r3.Vector{X: v[0], Y: v[1], Z: v[2]}, nil
}

func encodeResponse(resp *AddCircleResponse, err error) ([]byte, error) {
	out, encErr := json.Marshal(resp)
	if encErr != nil {
		return nil, encErr
	}
	return out, err
}
