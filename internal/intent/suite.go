package intent

// VerificationSuite is a named, ordered collection of intents.
// Intents are evaluated in declaration order (spec.md §5).
type VerificationSuite struct {
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Intents     []IntentSpec `json:"intents"`
}
