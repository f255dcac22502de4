package helpers

// IfElse returns valueIfTrue or valueIfFalse depending on isTrue.
func IfElse[V any](isTrue bool, valueIfTrue, valueIfFalse V) V {
	if isTrue {
		return valueIfTrue
	}
	return valueIfFalse
}

// SliceContains returns true if and only if the slice has an element that equals the value.
func SliceContains[V comparable](value V, slice []V) bool {
	for _, element := range slice {
		if element == value {
			return true
		}
	}
	return false
}

// AppendUnique appends each value that is not already in the slice, preserving order.
func AppendUnique[V comparable](slice []V, values ...V) []V {
	for _, v := range values {
		if !SliceContains(v, slice) {
			slice = append(slice, v)
		}
	}
	return slice
}
