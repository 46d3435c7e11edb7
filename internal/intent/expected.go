package intent

// ExpectedKind names an Expected variant.
type ExpectedKind string

const (
	ExpectedComponentChanged ExpectedKind = "ComponentChanged"
	ExpectedEntityDespawned  ExpectedKind = "EntityDespawned"
	ExpectedAggregateChanged ExpectedKind = "AggregateChanged"
	ExpectedInState          ExpectedKind = "InState"
	ExpectedEventEmitted     ExpectedKind = "EventEmitted"
	ExpectedValueRelation    ExpectedKind = "ValueRelation"
	ExpectedAll              ExpectedKind = "All"
	ExpectedAny              ExpectedKind = "Any"
)

// Relation names a ValueRelation check.
type Relation string

const (
	RelationSignFlipped       Relation = "sign_flipped"
	RelationMagnitudePreserved Relation = "magnitude_preserved"
	RelationIncreased         Relation = "increased"
	RelationDecreased         Relation = "decreased"
	RelationChangedByMoreThan Relation = "changed_by_more_than"
)

// Expected is a tagged tree describing the postcondition that must
// hold within a behavior's timeout window.
type Expected struct {
	Kind ExpectedKind

	// ComponentChanged / InState / ValueRelation / AggregateChanged
	Entity    string
	Component string
	Field     string

	// ComponentChanged: optional expected new-field/new-value
	HasValue bool
	Value    any

	// InState
	State string

	// AggregateChanged
	AggregateType string
	Op            string

	// EventEmitted
	EventType string
	Involving []string

	// ValueRelation
	Relation  Relation
	Tolerance float64

	// All / Any
	Children []Expected
}

// ComponentChanged builds a ComponentChanged(entity, comp, field?, value?) expected.
func ComponentChanged(entity, comp string) Expected {
	return Expected{Kind: ExpectedComponentChanged, Entity: entity, Component: comp}
}

// WithField returns a copy with Field set.
func (e Expected) WithField(field string) Expected {
	e.Field = field
	return e
}

// WithValue returns a copy with an expected value set.
func (e Expected) WithValue(v any) Expected {
	e.HasValue = true
	e.Value = v
	return e
}

// EntityDespawned builds an EntityDespawned(entity) expected.
func EntityDespawned(entity string) Expected {
	return Expected{Kind: ExpectedEntityDespawned, Entity: entity}
}

// AggregateChanged builds an AggregateChanged(type, op, value) expected.
func AggregateChanged(aggType, op string, value any) Expected {
	return Expected{Kind: ExpectedAggregateChanged, AggregateType: aggType, Op: op, Value: value}
}

// InState builds an InState(entity, comp, state) expected.
func InState(entity, comp, state string) Expected {
	return Expected{Kind: ExpectedInState, Entity: entity, Component: comp, State: state}
}

// EventEmitted builds an EventEmitted(type, involving?) expected.
func EventEmitted(eventType string, involving ...string) Expected {
	return Expected{Kind: ExpectedEventEmitted, EventType: eventType, Involving: involving}
}

// ValueRelation builds a ValueRelation(entity, comp, field, relation, tolerance) expected.
func ValueRelation(entity, comp, field string, relation Relation, tolerance float64) Expected {
	return Expected{Kind: ExpectedValueRelation, Entity: entity, Component: comp, Field: field, Relation: relation, Tolerance: tolerance}
}

// All builds an All([...]) composite expected.
func All(children ...Expected) Expected {
	return Expected{Kind: ExpectedAll, Children: children}
}

// Any builds an Any([...]) composite expected.
func Any(children ...Expected) Expected {
	return Expected{Kind: ExpectedAny, Children: children}
}
