package verify

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/lox/nomai-verify/internal/compare"
	"github.com/lox/nomai-verify/internal/intent"
	"github.com/lox/nomai-verify/internal/manifest"
)

type conditionKind int

const (
	condFreeform conditionKind = iota
	condAggregate
	condEntityCount
	condComponentRange
	condDegenerateGuard
)

type parsedCondition struct {
	kind      conditionKind
	aggType   string
	op        string
	value     float64
	entity    string
	component string
	field     string
	min       float64
	max       float64
	raw       string
}

var (
	aggregateRe      = regexp.MustCompile(`^aggregate:(\S+) (==|!=|<=|>=|<|>) (-?\d+(?:\.\d+)?)$`)
	entityCountRe    = regexp.MustCompile(`^entity_count (==|!=|<=|>=|<|>) (-?\d+(?:\.\d+)?)$`)
	componentRangeRe = regexp.MustCompile(`^component_range:([^.]+)\.([^.]+)\.([^ ]+) in \[(-?\d+(?:\.\d+)?), (-?\d+(?:\.\d+)?)\]$`)
	degenerateRe     = regexp.MustCompile(`^degenerate_guard:([^.]+)\.([^.]+)\.([^ ]+) != (-?\d+(?:\.\d+)?)$`)
)

// parseCondition parses the invariant micro-grammar of spec.md §6.5.
// Malformed inputs that resemble a recognized prefix but fail to
// parse return an error; everything else is accepted as free-form.
func parseCondition(s string) (parsedCondition, error) {
	if m := aggregateRe.FindStringSubmatch(s); m != nil {
		v, err := strconv.ParseFloat(m[3], 64)
		if err != nil {
			return parsedCondition{}, err
		}
		return parsedCondition{kind: condAggregate, aggType: m[1], op: m[2], value: v, raw: s}, nil
	}
	if m := entityCountRe.FindStringSubmatch(s); m != nil {
		v, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			return parsedCondition{}, err
		}
		return parsedCondition{kind: condEntityCount, op: m[1], value: v, raw: s}, nil
	}
	if m := componentRangeRe.FindStringSubmatch(s); m != nil {
		min, err := strconv.ParseFloat(m[4], 64)
		if err != nil {
			return parsedCondition{}, err
		}
		max, err := strconv.ParseFloat(m[5], 64)
		if err != nil {
			return parsedCondition{}, err
		}
		return parsedCondition{kind: condComponentRange, entity: m[1], component: m[2], field: m[3], min: min, max: max, raw: s}, nil
	}
	if m := degenerateRe.FindStringSubmatch(s); m != nil {
		v, err := strconv.ParseFloat(m[4], 64)
		if err != nil {
			return parsedCondition{}, err
		}
		return parsedCondition{kind: condDegenerateGuard, entity: m[1], component: m[2], field: m[3], value: v, raw: s}, nil
	}

	// A string that merely starts with a recognized prefix but doesn't
	// match the grammar is a malformed structured condition, not a
	// free-form one — it fails loudly with "invalid condition" rather
	// than silently passing.
	for _, prefix := range []string{"aggregate:", "entity_count", "component_range:", "degenerate_guard:"} {
		if strings.HasPrefix(s, prefix) {
			return parsedCondition{}, fmt.Errorf("malformed condition %q", s)
		}
	}

	return parsedCondition{kind: condFreeform, raw: s}, nil
}

// evalInvariant scans every manifest for a violation of the parsed
// condition. Free-form conditions are recorded and pass trivially
// (spec.md §9 — suite authors are expected to avoid free-form for
// real verification).
func evalInvariant(spec intent.IntentSpec, manifests []manifest.TickManifest) IntentResult {
	cond, err := parseCondition(spec.Condition)
	if err != nil {
		return fail(spec.Name, string(intent.KindInvariant), fmt.Sprintf("invalid condition: %v", err))
	}

	switch cond.kind {
	case condFreeform:
		return pass(spec.Name, string(intent.KindInvariant))

	case condAggregate:
		for _, m := range manifests {
			count := m.Aggregates.TypeCount(cond.aggType)
			if !compare.Numeric(count, cond.op, cond.value) {
				return invariantFailure(spec.Name, m.Tick, fmt.Sprintf("aggregate %s=%v violates %s %v", cond.aggType, count, cond.op, cond.value))
			}
		}

	case condEntityCount:
		for _, m := range manifests {
			total := float64(m.Aggregates.TotalEntityCount)
			if !compare.Numeric(total, cond.op, cond.value) {
				return invariantFailure(spec.Name, m.Tick, fmt.Sprintf("entity_count=%v violates %s %v", total, cond.op, cond.value))
			}
		}

	case condComponentRange, condDegenerateGuard:
		lo, hi := cond.min, cond.max
		if cond.kind == condDegenerateGuard {
			lo, hi = cond.value, cond.value // unused: the guard branch below compares against cond.value directly
		}
		for _, m := range manifests {
			for _, c := range m.ChangesForComponent(cond.component) {
				if cond.entity != "" && !compare.MatchesEntity(c, cond.entity) {
					continue
				}
				val, ok := compare.AsFloat64(compare.Field(c.NewValue, cond.field))
				if !ok {
					continue
				}
				if cond.kind == condDegenerateGuard {
					if val == cond.value {
						return invariantFailure(spec.Name, m.Tick, fmt.Sprintf("%s.%s.%s == %v (forbidden)", cond.entity, cond.component, cond.field, cond.value))
					}
					continue
				}
				if val < lo || val > hi {
					return invariantFailure(spec.Name, m.Tick, fmt.Sprintf("%s.%s.%s=%v out of range [%v,%v]", cond.entity, cond.component, cond.field, val, lo, hi))
				}
			}
		}
	}

	return pass(spec.Name, string(intent.KindInvariant))
}

func invariantFailure(name string, tick manifest.Tick, reason string) IntentResult {
	result := fail(name, string(intent.KindInvariant), reason)
	result.TriggerTick = &tick
	return result
}
