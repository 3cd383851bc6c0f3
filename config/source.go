package config

import "os"

// Source supplies override values by key.
type Source interface {
	Lookup(key string) (string, bool)
}

// EnvSource reads overrides from environment variables. Empty values count
// as unset.
type EnvSource struct{}

func NewEnvSource() *EnvSource {
	return &EnvSource{}
}

func (s *EnvSource) Lookup(key string) (string, bool) {
	value := os.Getenv(key)
	if value == "" {
		return "", false
	}
	return value, true
}

// StaticSource serves fixed values, for tests and embedding.
type StaticSource struct {
	values map[string]string
}

func NewStaticSource(values map[string]string) *StaticSource {
	return &StaticSource{
		values: values,
	}
}

func (s *StaticSource) Lookup(key string) (string, bool) {
	value, ok := s.values[key]
	return value, ok
}
