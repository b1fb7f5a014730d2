package kv

// NotFoundError is returned when a key doesn't exist in the store.
type NotFoundError struct {
	Key string
}

func (e NotFoundError) Error() string {
	if e.Key == "" {
		return "key not found"
	}

	return "key not found: " + e.Key
}
