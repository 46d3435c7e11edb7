package manifest

import "encoding/json"

// EngineSnapshot is an opaque pass-through payload from the simulation
// kernel. The core inspects only the advertised subset of top-level
// fields (TickCounter, FixedDT, Hash) and forwards RawJSON verbatim —
// it never interprets the rest of the snapshot's schema, which keeps
// the verifier forward-compatible with simulator-internal changes.
type EngineSnapshot struct {
	TickCounter Tick            `json:"tick_counter"`
	FixedDT     float64         `json:"fixed_dt"`
	Hash        string          `json:"hash"` // 64-char lowercase hex
	RawJSON     json.RawMessage `json:"-"`
}

// UnmarshalJSON decodes the advertised fields while preserving the
// entire payload in RawJSON for opaque forwarding.
func (s *EngineSnapshot) UnmarshalJSON(data []byte) error {
	type advertised struct {
		TickCounter Tick    `json:"tick_counter"`
		FixedDT     float64 `json:"fixed_dt"`
		Hash        string  `json:"hash"`
	}
	var a advertised
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	s.TickCounter = a.TickCounter
	s.FixedDT = a.FixedDT
	s.Hash = a.Hash
	s.RawJSON = append(json.RawMessage(nil), data...)
	return nil
}

// MarshalJSON returns RawJSON verbatim when present, otherwise encodes
// the advertised fields only.
func (s EngineSnapshot) MarshalJSON() ([]byte, error) {
	if len(s.RawJSON) > 0 {
		return s.RawJSON, nil
	}
	type advertised struct {
		TickCounter Tick    `json:"tick_counter"`
		FixedDT     float64 `json:"fixed_dt"`
		Hash        string  `json:"hash"`
	}
	return json.Marshal(advertised{s.TickCounter, s.FixedDT, s.Hash})
}

// ReplayLog is an opaque pass-through payload describing a recorded
// replay. The core inspects only TotalTicks.
type ReplayLog struct {
	TotalTicks Tick            `json:"total_ticks"`
	RawJSON    json.RawMessage `json:"-"`
}

// UnmarshalJSON decodes TotalTicks while preserving the full payload.
func (r *ReplayLog) UnmarshalJSON(data []byte) error {
	type advertised struct {
		TotalTicks Tick `json:"total_ticks"`
	}
	var a advertised
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	r.TotalTicks = a.TotalTicks
	r.RawJSON = append(json.RawMessage(nil), data...)
	return nil
}

// MarshalJSON returns RawJSON verbatim when present.
func (r ReplayLog) MarshalJSON() ([]byte, error) {
	if len(r.RawJSON) > 0 {
		return r.RawJSON, nil
	}
	type advertised struct {
		TotalTicks Tick `json:"total_ticks"`
	}
	return json.Marshal(advertised{r.TotalTicks})
}

// Divergence describes the first tick at which a replay's hash
// disagreed with the recorded expectation.
type Divergence struct {
	Tick         Tick   `json:"tick"`
	ExpectedHash string `json:"expected_hash"`
	ActualHash   string `json:"actual_hash"`
}

// KernelReplayResult is the simulation kernel's own replay-completion
// report, distinct from regression.ReplayResult (which compares two
// verification runs, not two simulation runs).
type KernelReplayResult struct {
	Completed       bool        `json:"completed"`
	TicksReplayed   Tick        `json:"ticks_replayed"`
	FirstDivergence *Divergence `json:"first_divergence,omitempty"`
}
