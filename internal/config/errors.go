package config

import "errors"

// ErrConfigNotFound is returned by Load when knope.toml doesn't exist at
// the given path, distinct from a malformed file.
var ErrConfigNotFound = errors.New("knope.toml not found")
