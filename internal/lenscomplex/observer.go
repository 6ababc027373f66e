package lenscomplex

import (
	"context"
	"log/slog"
)

type Category uint8

const (
	LayersComputed    Category = iota // distances assigned to every face
	FaceCalibrated                    // one face received its imaging element
	CalibrationFailed                 // calibration aborted, nothing committed
	ComplexCalibrated                 // all elements committed
)

func (c Category) String() string {
	switch c {
	case LayersComputed:
		return "layers-computed"
	case FaceCalibrated:
		return "face-calibrated"
	case CalibrationFailed:
		return "calibration-failed"
	case ComplexCalibrated:
		return "complex-calibrated"
	}
	return "unknown"
}

// Event is a calibration checkpoint. Face is -1 for complex-wide events.
type Event struct {
	Category Category
	Complex  string
	Face     int
	Distance int
	Kind     ElementKind
	Layers   int
	Err      error
}

// Observer receives checkpoints; it must not retain or mutate the complex.
type Observer interface {
	Observe(Event)
}

type ObserverFunc func(Event)

func (f ObserverFunc) Observe(e Event) { f(e) }

// MultiObserver fans an event out to every non-nil observer in order.
type MultiObserver []Observer

func (m MultiObserver) Observe(e Event) {
	for _, o := range m {
		if o != nil {
			o.Observe(e)
		}
	}
}

// SlogObserver writes events through a slog.Logger (slog.Default when nil).
// Per-face events go out at debug level, failures at error level.
type SlogObserver struct {
	Logger *slog.Logger
}

func (o SlogObserver) Observe(e Event) {
	l := o.Logger
	if l == nil {
		l = slog.Default()
	}
	attrs := []slog.Attr{slog.String("complex", e.Complex)}
	level := slog.LevelInfo
	switch e.Category {
	case LayersComputed:
		attrs = append(attrs, slog.Int("layers", e.Layers))
	case FaceCalibrated:
		level = slog.LevelDebug
		attrs = append(attrs, slog.Int("face", e.Face), slog.Int("distance", e.Distance), slog.String("kind", e.Kind.String()))
	case CalibrationFailed:
		level = slog.LevelError
		if e.Face >= 0 {
			attrs = append(attrs, slog.Int("face", e.Face))
		}
		attrs = append(attrs, slog.Any("err", e.Err))
	case ComplexCalibrated:
		attrs = append(attrs, slog.String("kind", e.Kind.String()))
	}
	l.LogAttrs(context.Background(), level, e.Category.String(), attrs...)
}

func notify(o Observer, e Event) {
	if o != nil {
		o.Observe(e)
	}
}
