package testutil

import (
	"bytes"
	"embed"

	"github.com/firefly-engineering/firefly-forage/packages/forage-routes/internal/routes"
)

//go:embed fixtures/*
var fixturesFS embed.FS

// LoadFixture loads a fixture file by name.
func LoadFixture(name string) ([]byte, error) {
	return fixturesFS.ReadFile("fixtures/" + name)
}

// NetworkLog returns the contents of a network log fixture.
func NetworkLog(name string) (string, error) {
	data, err := LoadFixture(name)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// LoadRouteFileFixture decodes a route file fixture.
func LoadRouteFileFixture(name string) (*routes.RouteFile, error) {
	data, err := LoadFixture(name)
	if err != nil {
		return nil, err
	}
	return routes.Decode(bytes.NewReader(data))
}
