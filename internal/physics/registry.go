// Package physics implements the advisory physics-sanity scans of
// spec.md §4.10: collision bounce response, static-body immobility,
// and tunneling detection, each driven by a small per-entity registry
// of body configuration.
package physics

import "github.com/lox/nomai-verify/internal/manifest"

// BodyType distinguishes entities the scans treat as movable from
// those expected to never change position or velocity.
type BodyType string

const (
	BodyDynamic BodyType = "dynamic"
	BodyStatic  BodyType = "static"
)

// BodyConfig is the per-entity physics metadata the scans consult.
type BodyConfig struct {
	BodyType      BodyType
	Restitution   float64
	ColliderShape string
}

// Registry maps an entity to its physics configuration.
type Registry map[manifest.EntityId]BodyConfig

// DefaultTickDT is the fallback simulation timestep used by the
// tunneling scan when Scan is given a non-positive dt.
const DefaultTickDT = 1.0 / 60.0
