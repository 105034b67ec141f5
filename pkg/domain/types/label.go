package types

import "fmt"

// Label is the outcome of evaluating an observed disposal behavior
type Label string

const (
	LabelAppropriate          Label = "A"
	LabelPartiallyAppropriate Label = "PA"
	LabelInappropriate        Label = "IA"
)

// AllLabels returns all valid labels
func AllLabels() []Label {
	return []Label{
		LabelAppropriate,
		LabelPartiallyAppropriate,
		LabelInappropriate,
	}
}

// IsValid checks if the label is valid
func (l Label) IsValid() bool {
	switch l {
	case LabelAppropriate,
		LabelPartiallyAppropriate,
		LabelInappropriate:
		return true
	default:
		return false
	}
}

// Description returns a human readable name of the label
func (l Label) Description() string {
	switch l {
	case LabelAppropriate:
		return "Appropriate"
	case LabelPartiallyAppropriate:
		return "Partially Appropriate"
	case LabelInappropriate:
		return "Inappropriate"
	default:
		return "Unknown"
	}
}

// String returns the string representation of the label
func (l Label) String() string {
	return string(l)
}

// ParseLabel parses a string into a Label
func ParseLabel(s string) (Label, error) {
	label := Label(s)
	if !label.IsValid() {
		return "", fmt.Errorf("invalid label: %s", s)
	}
	return label, nil
}
