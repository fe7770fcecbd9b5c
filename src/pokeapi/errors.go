package pokeapi

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNotFound      = errors.New("pokeapi: resource not found")
	ErrFetchInFlight = errors.New("pokeapi: page fetch already in flight")
	ErrNoMorePages   = errors.New("pokeapi: no more pages")
)

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Url        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("pokeapi: GET %s: %d %s", e.Url, e.StatusCode, http.StatusText(e.StatusCode))
}

func (e *StatusError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}
