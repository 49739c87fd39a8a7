package state

import "github.com/EckmanTechLLC/flux-go/pkg/property"

// Entity is a read-only copy of an entity as served by Flux.
type Entity struct {
	// ID is the entity identifier, globally unique within one service
	// instance. IDs are opaque to the client; a "namespace/entity"
	// prefix, when present, is a server-side concern.
	ID string `json:"id"`

	// Properties is the complete current property set.
	Properties property.Map `json:"properties"`

	// LastUpdated is the absolute update time, kept verbatim as the
	// service sent it (ISO-8601).
	LastUpdated string `json:"lastUpdated"`
}
