package primitive

type number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// inRange reports whether lo <= v <= hi.
func inRange[T number](lo, v, hi T) bool {
	return lo <= v && v <= hi
}
