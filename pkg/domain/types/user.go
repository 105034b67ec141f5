package types

import "fmt"

// InteractionType is the category of a park user
type InteractionType string

const (
	InteractionRecreational      InteractionType = "RU"
	InteractionSpecialInterest   InteractionType = "SIU"
	InteractionEventParticipant  InteractionType = "EP"
	InteractionCulturalEducation InteractionType = "CEU"
	InteractionOperationalStaff  InteractionType = "OS"
	InteractionSupportServices   InteractionType = "SS"
)

var interactionTypeDescriptions = map[InteractionType]string{
	InteractionRecreational:      "Recreational Users",
	InteractionSpecialInterest:   "Special Interest Users",
	InteractionEventParticipant:  "Event Participants",
	InteractionCulturalEducation: "Cultural & Educational Users",
	InteractionOperationalStaff:  "Operational Staff",
	InteractionSupportServices:   "Support Services",
}

// AllInteractionTypes returns all valid interaction types in display order
func AllInteractionTypes() []InteractionType {
	return []InteractionType{
		InteractionRecreational,
		InteractionSpecialInterest,
		InteractionEventParticipant,
		InteractionCulturalEducation,
		InteractionOperationalStaff,
		InteractionSupportServices,
	}
}

// IsValid checks if the interaction type is valid
func (t InteractionType) IsValid() bool {
	_, ok := interactionTypeDescriptions[t]
	return ok
}

// Description returns a human readable name, or empty for unknown types
func (t InteractionType) Description() string {
	return interactionTypeDescriptions[t]
}

// String returns the string representation of the interaction type
func (t InteractionType) String() string {
	return string(t)
}

// ParseInteractionType parses a string into an InteractionType
func ParseInteractionType(s string) (InteractionType, error) {
	t := InteractionType(s)
	if !t.IsValid() {
		return "", fmt.Errorf("invalid interaction type: %s", s)
	}
	return t, nil
}

// Scenario is the activity the user was engaged in
type Scenario string

const (
	ScenarioExploringTrails  Scenario = "ET"
	ScenarioEnjoyingPicnics  Scenario = "EP"
	ScenarioEngagingInPlay   Scenario = "EIP"
	ScenarioPlayingSports    Scenario = "PS"
	ScenarioAttendingEvents  Scenario = "AE"
	ScenarioObservingNature  Scenario = "ON"
	ScenarioRelaxingSolitude Scenario = "RS"
)

var scenarioDescriptions = map[Scenario]string{
	ScenarioExploringTrails:  "Exploring Trails",
	ScenarioEnjoyingPicnics:  "Enjoying Picnics",
	ScenarioEngagingInPlay:   "Engaging in Play",
	ScenarioPlayingSports:    "Participating in Sports",
	ScenarioAttendingEvents:  "Attending Events",
	ScenarioObservingNature:  "Observing Nature",
	ScenarioRelaxingSolitude: "Relaxing in Solitude",
}

// AllScenarios returns all valid scenarios in display order
func AllScenarios() []Scenario {
	return []Scenario{
		ScenarioExploringTrails,
		ScenarioEnjoyingPicnics,
		ScenarioEngagingInPlay,
		ScenarioPlayingSports,
		ScenarioAttendingEvents,
		ScenarioObservingNature,
		ScenarioRelaxingSolitude,
	}
}

// IsValid checks if the scenario is valid
func (s Scenario) IsValid() bool {
	_, ok := scenarioDescriptions[s]
	return ok
}

// Description returns a human readable name, or empty for unknown scenarios
func (s Scenario) Description() string {
	return scenarioDescriptions[s]
}

// String returns the string representation of the scenario
func (s Scenario) String() string {
	return string(s)
}

// ParseScenario parses a string into a Scenario
func ParseScenario(s string) (Scenario, error) {
	sc := Scenario(s)
	if !sc.IsValid() {
		return "", fmt.Errorf("invalid scenario: %s", s)
	}
	return sc, nil
}
