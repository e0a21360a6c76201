package endpoints

import (
	"github.com/autopdf/autopdf/internal/api"
)

// All returns all endpoint instances.
func All() []api.Endpoint {
	return []api.Endpoint{
		// Health endpoints
		&HealthEndpoint{},
		&ReadyEndpoint{},
		&StatusEndpoint{},

		// Document endpoints
		&GenerateEndpoint{},
		&BatchEndpoint{},
		&LayoutEndpoint{},

		// Usage
		&StatsEndpoint{},

		// Swagger/OpenAPI endpoints
		&SwaggerEndpoint{},
		&SwaggerUIEndpoint{},
	}
}

// NewRegistry returns a registry holding every endpoint.
func NewRegistry() *api.Registry {
	reg := api.NewRegistry()
	for _, ep := range All() {
		reg.Register(ep)
	}
	return reg
}
