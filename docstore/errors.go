package docstore

import "errors"

// ErrNotFound is returned when a document lookup references an ID that is
// not present in the store.
var ErrNotFound = errors.New("not found")
