package drag

import (
	"planner/internal/domain"
	"planner/internal/ports"
)

// Kind names a processor variant
type Kind int

const (
	KindNone Kind = iota
	KindStandard2D
	KindStandard3D
	KindFreeShape2D
	KindHoleProvider
)

func (k Kind) String() string {
	switch k {
	case KindStandard2D:
		return "standard-2d"
	case KindStandard3D:
		return "standard-3d"
	case KindFreeShape2D:
		return "free-shape-2d"
	case KindHoleProvider:
		return "hole-provider"
	default:
		return "none"
	}
}

// Select picks the processor variant for an object's flags in a mode.
// 3D mode refuses apertures and free shapes.
func Select(mode domain.EditMode, flags domain.ObjectFlags) Kind {
	if mode == domain.Mode3D {
		if flags.Has(domain.FlagHoleProvider) || flags.Has(domain.FlagFreeShape) {
			return KindNone
		}
		return KindStandard3D
	}
	switch {
	case flags.Has(domain.FlagHoleProvider):
		return KindHoleProvider
	case flags.Has(domain.FlagFreeShape):
		return KindFreeShape2D
	default:
		return KindStandard2D
	}
}

// Factory builds processors for the current edit mode
type Factory struct {
	deps Deps
	mode *domain.Property[domain.EditMode]
}

var _ ports.DragProcessorFactory = (*Factory)(nil)

func NewFactory(deps Deps, mode *domain.Property[domain.EditMode]) *Factory {
	return &Factory{deps: deps, mode: mode}
}

// Create returns the processor for obj, or nil with a notice when the mode refuses it
func (f *Factory) Create(obj *domain.ObjectDefinition) ports.DragProcessor {
	kind := Select(f.mode.Get(), obj.Flags)
	switch kind {
	case KindStandard2D:
		return NewStandard2D(f.deps)
	case KindStandard3D:
		return NewStandard3D(f.deps)
	case KindFreeShape2D:
		return NewFreeShape2D(f.deps)
	case KindHoleProvider:
		return NewHoleProvider(f.deps)
	}
	f.deps.Notifier.Notify(NoticeCannotAdd3D)
	f.deps.logger().Info("placement refused", "object", obj.ID, "mode", f.mode.Get())
	return nil
}
