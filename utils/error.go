package utils

import (
	"errors"
	"sort"
	"strings"
)

var ErrorRecordNotFound = errors.New("record not found")

// ErrorUnauthorized marks role/ownership failures so handlers can answer 401
// instead of 404 (the resource may well exist).
var ErrorUnauthorized = errors.New("unauthorized")

// FieldErrors carries per-field validation messages, keyed by the JSON field
// name, and is returned to the client as the `Errors` map.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+fe[k])
	}
	return strings.Join(parts, "; ")
}

func ErrorPanic(err error) {
	if err != nil {
		panic(err)
	}
}
