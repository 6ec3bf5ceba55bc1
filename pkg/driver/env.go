package driver

import "os"

// Env reads named environment variables.
type Env interface {
	Lookup(name string) (string, bool)
}

// OSEnv reads the process environment.
type OSEnv struct{}

func (OSEnv) Lookup(name string) (string, bool) { return os.LookupEnv(name) }

// MapEnv serves variables from a fixed map.
type MapEnv map[string]string

func (m MapEnv) Lookup(name string) (string, bool) {
	v, ok := m[name]
	return v, ok
}
