// Package docs holds the OpenAPI description of the autopdf server,
// generated by swag from the handler annotations.
//
//	@title			autopdf API
//	@version		1.0
//	@description	Flows plain text or structured records onto fixed-size pages and returns them as PDF.
//	@description	Every response that carries a document sets X-Document-Id and X-Page-Count.
//
//	@contact.name	autopdf maintainers
//	@contact.url	https://github.com/autopdf/autopdf/issues
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host		localhost:8080
//	@BasePath	/
//	@schemes	http https
//
//	@tag.name			generate
//	@tag.description	Render text, record batches and page layouts
//	@tag.name			health
//	@tag.description	Liveness, readiness and server status
//	@tag.name			stats
//	@tag.description	Persisted usage counters
package docs

//go:generate swag init --generalInfo doc.go --dir ./,../internal/server/endpoints --output . --outputTypes go,json --parseInternal --parseDependency
