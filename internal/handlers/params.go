package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/uuid"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

// pathID extracts and validates the named UUID path parameter.
func pathID(r *http.Request, name string) (string, error) {
	raw := r.PathValue(name)
	if _, err := uuid.Parse(raw); err != nil {
		return "", fmt.Errorf("invalid %s", name)
	}
	return raw, nil
}

// pagination parses the page and limit query parameters, applying defaults and
// rejecting non-positive or non-numeric input.
func pagination(r *http.Request) (page, limit int, err error) {
	page, err = positiveQueryInt(r, "page", defaultPage)
	if err != nil {
		return 0, 0, err
	}
	limit, err = positiveQueryInt(r, "limit", defaultLimit)
	if err != nil {
		return 0, 0, err
	}
	return page, limit, nil
}

func positiveQueryInt(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return 0, fmt.Errorf("%s must be a positive integer", name)
	}
	return value, nil
}
