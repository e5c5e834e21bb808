package config

import (
	"github.com/pkg/errors"
	"github.com/spf13/cast"

	"go.viam.com/autopilot/utils"
)

// AttributeMap is a free form set of attributes for a factory.
type AttributeMap map[string]interface{}

// Has returns whether the attribute is present.
func (am AttributeMap) Has(name string) bool {
	_, has := am[name]
	return has
}

// Float64 returns the attribute as a float64, def when absent. Numeric strings are accepted.
func (am AttributeMap) Float64(name string, def float64) (float64, error) {
	x, has := am[name]
	if !has {
		return def, nil
	}
	v, err := cast.ToFloat64E(x)
	if err != nil {
		return def, errors.Wrapf(err, "wanted a number for (%s)", name)
	}
	return v, nil
}

// String returns the attribute as a string, def when absent.
func (am AttributeMap) String(name, def string) (string, error) {
	x, has := am[name]
	if !has {
		return def, nil
	}
	if s, ok := x.(string); ok {
		return s, nil
	}
	return def, errors.Wrapf(utils.NewUnexpectedTypeError(def, x), "attribute %q", name)
}
