package intent

import "encoding/json"

// Kind is one of the four intent kinds.
type Kind string

const (
	KindEntity    Kind = "entity"
	KindBehavior  Kind = "behavior"
	KindMetric    Kind = "metric"
	KindInvariant Kind = "invariant"
)

// DefaultTimeoutTicks is the default Behavior.TimeoutTicks.
const DefaultTimeoutTicks = 600

// Range is a Metric intent's [Min, Max] bound. Min must be <= Max.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains reports whether v lies within [Min, Max] inclusive — the
// metric boundary property from spec.md §8: a value equal to Min or
// Max passes.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// IntentSpec is a single declarative claim to verify, carrying the
// fields relevant to its Kind.
type IntentSpec struct {
	Name        string
	Kind        Kind
	Description string

	// Entity
	EntityType         string
	EntityRole         string
	MustExist          bool
	MustBeVisible      bool
	RequiredComponents []string

	// Behavior
	Trigger      Trigger
	Expected     Expected
	TimeoutTicks int

	// Metric
	MetricEntity    string
	MetricComponent string
	MetricField     string
	MetricRange     Range

	// Invariant
	Condition string
}

// EffectiveTimeout returns TimeoutTicks, defaulting to
// DefaultTimeoutTicks when unset.
func (s IntentSpec) EffectiveTimeout() int {
	if s.TimeoutTicks <= 0 {
		return DefaultTimeoutTicks
	}
	return s.TimeoutTicks
}

// wireIntentSpec is the on-disk shape: Trigger/Expected serialize
// through their own ToWire/FromWire wire-node codec (§6.2), not plain
// struct reflection, so the DSL's variant tagging survives the trip.
type wireIntentSpec struct {
	Name        string `json:"name"`
	Kind        Kind   `json:"kind"`
	Description string `json:"description,omitempty"`

	EntityType         string   `json:"entity_type,omitempty"`
	EntityRole         string   `json:"entity_role,omitempty"`
	MustExist          bool     `json:"must_exist,omitempty"`
	MustBeVisible      bool     `json:"must_be_visible,omitempty"`
	RequiredComponents []string `json:"required_components,omitempty"`

	Trigger      json.RawMessage `json:"trigger,omitempty"`
	Expected     json.RawMessage `json:"expected,omitempty"`
	TimeoutTicks int             `json:"timeout_ticks,omitempty"`

	MetricEntity    string   `json:"metric_entity,omitempty"`
	MetricComponent string   `json:"metric_component,omitempty"`
	MetricField     string   `json:"metric_field,omitempty"`
	MetricRange     *[2]float64 `json:"metric_range,omitempty"`

	Condition string `json:"condition,omitempty"`
}

// MarshalJSON writes the wire form described in spec.md §6.2.
func (s IntentSpec) MarshalJSON() ([]byte, error) {
	w := wireIntentSpec{
		Name: s.Name, Kind: s.Kind, Description: s.Description,
		EntityType: s.EntityType, EntityRole: s.EntityRole,
		MustExist: s.MustExist, MustBeVisible: s.MustBeVisible,
		RequiredComponents: s.RequiredComponents,
		TimeoutTicks:       s.TimeoutTicks,
		MetricEntity:       s.MetricEntity, MetricComponent: s.MetricComponent,
		MetricField: s.MetricField,
		Condition:   s.Condition,
	}
	if s.Kind == KindBehavior {
		tw, err := s.Trigger.ToWire()
		if err != nil {
			return nil, err
		}
		ew, err := s.Expected.ToWire()
		if err != nil {
			return nil, err
		}
		w.Trigger = tw
		w.Expected = ew
	}
	if s.Kind == KindMetric {
		w.MetricRange = &[2]float64{s.MetricRange.Min, s.MetricRange.Max}
	}
	return json.Marshal(w)
}

// UnmarshalJSON reads the wire form described in spec.md §6.2.
func (s *IntentSpec) UnmarshalJSON(data []byte) error {
	var w wireIntentSpec
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*s = IntentSpec{
		Name: w.Name, Kind: w.Kind, Description: w.Description,
		EntityType: w.EntityType, EntityRole: w.EntityRole,
		MustExist: w.MustExist, MustBeVisible: w.MustBeVisible,
		RequiredComponents: w.RequiredComponents,
		TimeoutTicks:       w.TimeoutTicks,
		MetricEntity:       w.MetricEntity, MetricComponent: w.MetricComponent,
		MetricField: w.MetricField,
		Condition:   w.Condition,
	}
	if len(w.Trigger) > 0 {
		t, err := TriggerFromWire(w.Trigger)
		if err != nil {
			return err
		}
		s.Trigger = t
	}
	if len(w.Expected) > 0 {
		e, err := ExpectedFromWire(w.Expected)
		if err != nil {
			return err
		}
		s.Expected = e
	}
	if w.MetricRange != nil {
		s.MetricRange = Range{Min: w.MetricRange[0], Max: w.MetricRange[1]}
	}
	return nil
}
