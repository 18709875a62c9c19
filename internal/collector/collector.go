package collector

import (
	"context"

	"github.com/playok/healthmon/internal/model"
)

// Collector samples one health subsystem. Implementations tolerate partial
// failure: they return whatever metrics they could obtain, and an error only
// when nothing at all could be sampled.
type Collector interface {
	// ID returns the unique identifier for this collector.
	ID() string
	// Name returns the subsystem name used in check results and reports.
	Name() string
	// Collect gathers the subsystem's metrics.
	Collect(ctx context.Context) ([]model.Metric, error)
}

func metric(name string, value float64, unit model.Unit) model.Metric {
	return model.Metric{Name: name, Value: value, Unit: unit}
}

func labeled(name string, value float64, unit model.Unit, label string) model.Metric {
	return model.Metric{Name: name, Value: value, Unit: unit, Label: label}
}
