package models

// DetectedState classifies a target directory relative to the chosen build tool.
// It is derived from file presence checks at execution time and never persisted.
type DetectedState int

const (
	// StateEmpty means the root does not exist or has no entries.
	StateEmpty DetectedState = iota

	// StateHasDescriptor means a descriptor for the chosen tool is present.
	StateHasDescriptor

	// StateForeignOrNoDescriptor means the root has content but no descriptor
	// for the chosen tool.
	StateForeignOrNoDescriptor
)

// String returns a human-readable name for the state.
func (s DetectedState) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateHasDescriptor:
		return "has-descriptor"
	case StateForeignOrNoDescriptor:
		return "foreign-or-no-descriptor"
	}
	return "unknown"
}
