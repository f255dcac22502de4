package framework

// Capabilities is a list of strings reported by a test service. For a JSON-LD processor these
// name the operations it implements ("expand", "compact", and so on).
type Capabilities []string

// Has returns true if the specified string appears in the list.
func (cs Capabilities) Has(name string) bool {
	for _, c := range cs {
		if c == name {
			return true
		}
	}
	return false
}

