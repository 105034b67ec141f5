package types

import "fmt"

// SolutionCategory groups UX interventions applied to a case
type SolutionCategory string

const (
	SolutionCategoryTUX SolutionCategory = "TUX"
	SolutionCategorySUX SolutionCategory = "SUX"
	SolutionCategoryBUX SolutionCategory = "BUX"
)

// AllSolutionCategories returns all valid solution categories
func AllSolutionCategories() []SolutionCategory {
	return []SolutionCategory{
		SolutionCategoryTUX,
		SolutionCategorySUX,
		SolutionCategoryBUX,
	}
}

// IsValid checks if the solution category is valid
func (c SolutionCategory) IsValid() bool {
	switch c {
	case SolutionCategoryTUX,
		SolutionCategorySUX,
		SolutionCategoryBUX:
		return true
	default:
		return false
	}
}

// String returns the string representation of the solution category
func (c SolutionCategory) String() string {
	return string(c)
}

// ParseSolutionCategory parses a string into a SolutionCategory
func ParseSolutionCategory(s string) (SolutionCategory, error) {
	c := SolutionCategory(s)
	if !c.IsValid() {
		return "", fmt.Errorf("invalid solution category: %s", s)
	}
	return c, nil
}
