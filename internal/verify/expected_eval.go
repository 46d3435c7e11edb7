package verify

import (
	"math"
	"reflect"
	"strconv"

	"github.com/lox/nomai-verify/internal/compare"
	"github.com/lox/nomai-verify/internal/intent"
	"github.com/lox/nomai-verify/internal/manifest"
)

// evalExpected is the single-manifest predicate for an Expected
// variant (spec.md §4.5). On a pass it also returns the matching
// change(s) as evidence.
func evalExpected(e intent.Expected, m manifest.TickManifest) (bool, []manifest.ComponentChange) {
	switch e.Kind {
	case intent.ExpectedComponentChanged:
		for _, c := range matchingChanges(m, e.Entity, e.Component) {
			if componentChangedSatisfies(c, e) {
				return true, []manifest.ComponentChange{c}
			}
		}
		return false, nil

	case intent.ExpectedEntityDespawned:
		if len(m.EntityDespawns) == 0 {
			return false, nil
		}
		if entityDespawnEvidence(m, e.Entity) {
			return true, nil
		}
		return false, nil

	case intent.ExpectedAggregateChanged:
		count := m.Aggregates.TypeCount(e.AggregateType)
		target, ok := compare.AsFloat64(e.Value)
		if !ok {
			return false, nil
		}
		return compare.Numeric(count, e.Op, target), nil

	case intent.ExpectedInState:
		// InState(_, c, s) is deliberately entity-blind (spec.md's table
		// elides the entity position for this row, unlike ComponentChanged):
		// filtering via compare.MatchesEntity would produce false negatives
		// whenever reason_detail happens not to mention the entity name.
		for _, c := range m.ChangesForComponent(e.Component) {
			if s, ok := c.NewValue.(string); ok && s == e.State {
				return true, []manifest.ComponentChange{c}
			}
		}
		return false, nil

	case intent.ExpectedEventEmitted:
		for _, ev := range m.EventsOfType(e.EventType) {
			if len(e.Involving) == 0 {
				return true, nil
			}
			haystack := ev.Description + " " + ev.ReasonDetail()
			if allInvolved(haystack, e.Involving) {
				return true, nil
			}
		}
		return false, nil

	case intent.ExpectedValueRelation:
		for _, c := range matchingChanges(m, e.Entity, e.Component) {
			oldV, oldOK := compare.AsFloat64(compare.Field(c.OldValue, e.Field))
			newV, newOK := compare.AsFloat64(compare.Field(c.NewValue, e.Field))
			if !oldOK || !newOK {
				continue
			}
			if valueRelationHolds(e.Relation, oldV, newV, e.Tolerance) {
				return true, []manifest.ComponentChange{c}
			}
		}
		return false, nil

	case intent.ExpectedAll:
		var evidence []manifest.ComponentChange
		for _, child := range e.Children {
			ok, ev := evalExpected(child, m)
			if !ok {
				return false, nil
			}
			evidence = append(evidence, ev...)
		}
		return len(e.Children) > 0, evidence

	case intent.ExpectedAny:
		for _, child := range e.Children {
			if ok, ev := evalExpected(child, m); ok {
				return true, ev
			}
		}
		return false, nil

	default:
		return false, nil
	}
}

func matchingChanges(m manifest.TickManifest, entity, component string) []manifest.ComponentChange {
	var out []manifest.ComponentChange
	for _, c := range m.ChangesForComponent(component) {
		if entity != "" && !compare.MatchesEntity(c, entity) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// componentChangedSatisfies implements the ComponentChanged delta
// check (spec.md §4.5, §8 "Delta check"): without it, any
// set_component(x, same value) would spuriously satisfy a bounce
// intent.
func componentChangedSatisfies(c manifest.ComponentChange, e intent.Expected) bool {
	if e.Field != "" {
		newF := compare.Field(c.NewValue, e.Field)
		if newF == nil {
			return false
		}
		oldF := compare.Field(c.OldValue, e.Field)
		if oldF != nil && reflect.DeepEqual(oldF, newF) {
			return false
		}
		if e.HasValue {
			return newF == e.Value || looseNumericEqual(newF, e.Value)
		}
		return true
	}

	if e.HasValue {
		return c.NewValue == e.Value || looseNumericEqual(c.NewValue, e.Value)
	}

	if c.OldValue == nil {
		return true
	}
	return !reflect.DeepEqual(c.OldValue, c.NewValue)
}

// looseNumericEqual compares two any values as floats when both are
// numeric, since JSON decoding and Go literals can disagree on the
// concrete numeric type (float64 vs int) for the same logical value.
func looseNumericEqual(a, b any) bool {
	af, aok := compare.AsFloat64(a)
	bf, bok := compare.AsFloat64(b)
	return aok && bok && af == bf
}

// entityDespawnEvidence links a despawn in this tick to the expected
// entity name via any of the four kinds of evidence spec.md §4.5
// names: a change on a despawned entity whose new role/type matches
// (or, for a removal, whose old role/type matches), a matching event
// mentioning the name, a reason_detail mention, or the despawn id's
// string form equalling the name.
func entityDespawnEvidence(m manifest.TickManifest, entity string) bool {
	for _, c := range m.ComponentChanges {
		despawned := false
		for _, d := range m.EntityDespawns {
			if d == c.EntityId {
				despawned = true
				break
			}
		}
		if !despawned {
			continue
		}
		if identityMatchesRole(c.NewValue, entity) || (c.IsRemoval() && identityMatchesRole(c.OldValue, entity)) {
			return true
		}
		if compare.ContainsFold(c.ReasonDetail(), entity) {
			return true
		}
	}

	for _, ev := range m.Events {
		if compare.ContainsFold(ev.Description+" "+ev.ReasonDetail(), entity) {
			for _, inv := range ev.InvolvedEntities {
				for _, d := range m.EntityDespawns {
					if inv == d {
						return true
					}
				}
			}
		}
	}

	for _, d := range m.EntityDespawns {
		if strconv.FormatUint(uint64(d), 10) == entity {
			return true
		}
	}
	return false
}

func identityMatchesRole(value any, entity string) bool {
	m, ok := value.(map[string]any)
	if !ok {
		return false
	}
	if role, ok := m["role"].(string); ok && role == entity {
		return true
	}
	if typ, ok := m["entity_type"].(string); ok && typ == entity {
		return true
	}
	return false
}

func valueRelationHolds(rel intent.Relation, oldV, newV, tolerance float64) bool {
	switch rel {
	case intent.RelationSignFlipped:
		return oldV*newV < 0
	case intent.RelationMagnitudePreserved:
		if oldV == 0 {
			return false
		}
		return math.Abs(newV-oldV)/math.Abs(oldV) <= tolerance
	case intent.RelationIncreased:
		return newV > oldV
	case intent.RelationDecreased:
		return newV < oldV
	case intent.RelationChangedByMoreThan:
		return math.Abs(newV-oldV) > tolerance
	default:
		return false
	}
}
