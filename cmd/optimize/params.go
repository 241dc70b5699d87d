// Package main searches for the predator setup that makes the prey last a
// chosen number of turns on average.
package main

import (
	"math"

	"github.com/pthm-cable/overrun/config"
)

// ParamSpec defines a single optimizable parameter. All parameters are
// integers in the config; the optimizer works on a continuous relaxation.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of optimizable parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "predators", Path: "population.predators", Min: 1, Max: 20, Default: 3},
			{Name: "predator_paces", Path: "movement.predator_paces", Min: 1, Max: 6, Default: 3},
			{Name: "prey_paces", Path: "movement.prey_paces", Min: 0, Max: 6, Default: 3},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Round clamps every value to its bounds and rounds it to the nearest integer.
func (pv *ParamVector) Round(v []float64) []float64 {
	rounded := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		rounded[i] = math.Round(math.Max(spec.Min, math.Min(spec.Max, v[i])))
	}
	return rounded
}

// ApplyToConfig applies parameter values to a Config struct.
// Order must match Specs order.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	r := pv.Round(values)
	cfg.Population.Predators = int(r[0])
	cfg.Movement.PredatorPaces = int(r[1])
	cfg.Movement.PreyPaces = int(r[2])
}

// ExtractFromConfig extracts current parameter values from a Config struct.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return []float64{
		float64(cfg.Population.Predators),
		float64(cfg.Movement.PredatorPaces),
		float64(cfg.Movement.PreyPaces),
	}
}
