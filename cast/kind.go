package cast

// DispatcherEnum classifies a conversion by the shapes of its source and destination.
type DispatcherEnum int

const (
	DispatcherUnknown DispatcherEnum = iota
	DispatcherPrimitive
	DispatcherInterface
	DispatcherSlice
	DispatcherMap
	DispatcherStruct
)

func (d DispatcherEnum) String() string {
	switch d {
	case DispatcherPrimitive:
		return "primitive"
	case DispatcherInterface:
		return "interface"
	case DispatcherSlice:
		return "slice"
	case DispatcherMap:
		return "map"
	case DispatcherStruct:
		return "struct"
	default:
		return "unknown"
	}
}
