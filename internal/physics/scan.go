package physics

import (
	"fmt"
	"math"
	"reflect"

	"github.com/lox/nomai-verify/internal/compare"
	"github.com/lox/nomai-verify/internal/manifest"
)

// Finding is a physics-sanity failure. The scans are silent on pass
// (spec.md §4.10); Name is self-describing, matching the
// "physics_sanity:<check>(entity_N)" convention so suggested_fixes()
// in internal/report can classify it like any other intent failure.
type Finding struct {
	Name     string
	Reason   string
	Tick     manifest.Tick
	Evidence []manifest.ComponentChange
}

type vec2 struct {
	x, y float64
	ok   bool
}

func vecOf(value any, fieldX, fieldY string) vec2 {
	x, xok := compare.AsFloat64(compare.Field(value, fieldX))
	y, yok := compare.AsFloat64(compare.Field(value, fieldY))
	return vec2{x: x, y: y, ok: xok && yok}
}

func (v vec2) magnitude() float64 {
	return math.Hypot(v.x, v.y)
}

// Scan runs all three physics-sanity checks over the manifest
// sequence and returns only the failures.
func Scan(manifests []manifest.TickManifest, reg Registry, dt float64) []Finding {
	if dt <= 0 {
		dt = DefaultTickDT
	}
	var findings []Finding
	findings = append(findings, scanBounceResponse(manifests, reg)...)
	findings = append(findings, scanStaticImmobility(manifests, reg)...)
	findings = append(findings, scanTunneling(manifests, reg, dt)...)
	return findings
}

// scanBounceResponse requires a velocity sign flip within 3 ticks
// (inclusive of the collision tick) for every collision involving a
// dynamic, restitutive entity.
func scanBounceResponse(manifests []manifest.TickManifest, reg Registry) []Finding {
	var findings []Finding
	for i, m := range manifests {
		for _, ev := range m.EventsOfType("collision") {
			for _, id := range ev.InvolvedEntities {
				cfg, ok := reg[id]
				if !ok || cfg.BodyType != BodyDynamic || cfg.Restitution <= 0 {
					continue
				}
				if !bounced(manifests, i, id) {
					findings = append(findings, Finding{
						Name:   fmt.Sprintf("physics_sanity:bounce_response(entity_%d)", id),
						Reason: "no velocity sign flip within 3 ticks of collision",
						Tick:   m.Tick,
					})
				}
			}
		}
	}
	return findings
}

func bounced(manifests []manifest.TickManifest, collisionIdx int, id manifest.EntityId) bool {
	end := collisionIdx + 3
	if end >= len(manifests) {
		end = len(manifests) - 1
	}
	for i := collisionIdx; i <= end; i++ {
		for _, c := range manifests[i].ChangesForComponent("velocity") {
			if c.EntityId != id || c.OldValue == nil || c.NewValue == nil {
				continue
			}
			oldV := vecOf(c.OldValue, "dx", "dy")
			newV := vecOf(c.NewValue, "dx", "dy")
			if !oldV.ok || !newV.ok {
				continue
			}
			if oldV.x*newV.x < 0 || oldV.y*newV.y < 0 {
				return true
			}
		}
	}
	return false
}

// scanStaticImmobility fails any non-trivial position or velocity
// change on a body registered as static.
func scanStaticImmobility(manifests []manifest.TickManifest, reg Registry) []Finding {
	var findings []Finding
	for _, m := range manifests {
		for _, c := range m.ComponentChanges {
			if c.Component != "position" && c.Component != "velocity" {
				continue
			}
			cfg, ok := reg[c.EntityId]
			if !ok || cfg.BodyType != BodyStatic {
				continue
			}
			if c.OldValue == nil || reflect.DeepEqual(c.OldValue, c.NewValue) {
				continue
			}
			findings = append(findings, Finding{
				Name:     fmt.Sprintf("physics_sanity:static_immobility(entity_%d)", c.EntityId),
				Reason:   fmt.Sprintf("static entity moved: %s changed", c.Component),
				Tick:     m.Tick,
				Evidence: []manifest.ComponentChange{c},
			})
		}
	}
	return findings
}

// scanTunneling fails a position jump larger than 2*|v|*dt, using the
// last known velocity observed for that entity.
func scanTunneling(manifests []manifest.TickManifest, reg Registry, dt float64) []Finding {
	var findings []Finding
	lastVelocity := map[manifest.EntityId]vec2{}

	for _, m := range manifests {
		for _, c := range m.ComponentChanges {
			if c.Component == "velocity" && c.NewValue != nil {
				if v := vecOf(c.NewValue, "dx", "dy"); v.ok {
					lastVelocity[c.EntityId] = v
				}
			}
		}

		for _, c := range m.ComponentChanges {
			if c.Component != "position" {
				continue
			}
			cfg, ok := reg[c.EntityId]
			if !ok || cfg.BodyType != BodyDynamic {
				continue
			}
			if c.OldValue == nil || c.NewValue == nil {
				continue
			}
			oldP := vecOf(c.OldValue, "x", "y")
			newP := vecOf(c.NewValue, "x", "y")
			if !oldP.ok || !newP.ok {
				continue
			}
			delta := math.Hypot(newP.x-oldP.x, newP.y-oldP.y)
			v, known := lastVelocity[c.EntityId]
			if !known {
				continue
			}
			limit := 2 * v.magnitude() * dt
			if delta > limit {
				findings = append(findings, Finding{
					Name:     fmt.Sprintf("physics_sanity:no_tunneling(entity_%d)", c.EntityId),
					Reason:   fmt.Sprintf("position jumped %.4f, exceeding tunneling bound %.4f", delta, limit),
					Tick:     m.Tick,
					Evidence: []manifest.ComponentChange{c},
				})
			}
		}

		for _, c := range m.ComponentChanges {
			if c.Component == "velocity" && c.NewValue == nil {
				delete(lastVelocity, c.EntityId)
			}
		}
	}
	return findings
}
