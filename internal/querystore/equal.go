package querystore

// EqualShallow reports whether a and b hold the same key set with strictly
// equal values. Values are compared with ==, never recursively. A nil map
// equals an empty one.
func EqualShallow[M ~map[K]V, K, V comparable](a, b M) bool {
	if len(a) != len(b) {
		return false
	}
	for k, av := range a {
		bv, ok := b[k]
		if !ok || av != bv {
			return false
		}
	}
	return true
}
