package status

import "fmt"

// SectionType represents the semantic type of a section header.
// the web layer uses these types to emit scenario boundary events.
type SectionType int

const (
	// SectionGeneric is a static section header, e.g. "assertions".
	SectionGeneric SectionType = iota
	// SectionScenario starts a scenario; Index is its 1-based position in the run.
	SectionScenario
	// SectionSummary closes the run.
	SectionSummary
)

// Section carries structured information about a section header.
// use the constructors to keep Type/Index/Label consistent.
type Section struct {
	Type  SectionType
	Index int    // 0 for non-scenario sections
	Name  string // scenario name, empty for generic sections
	Label string // human-readable display text
}

// NewScenarioSection creates a section header for the scenario at position index of total.
func NewScenarioSection(index, total int, name string) Section {
	return Section{
		Type:  SectionScenario,
		Index: index,
		Name:  name,
		Label: fmt.Sprintf("scenario %d/%d: %s", index, total, name),
	}
}

// NewGenericSection creates a static section header.
func NewGenericSection(label string) Section {
	return Section{Type: SectionGeneric, Label: label}
}

// NewSummarySection creates the closing section of a run.
func NewSummarySection(passed, failed, skipped int) Section {
	return Section{
		Type:  SectionSummary,
		Label: fmt.Sprintf("summary: %d passed, %d failed, %d skipped", passed, failed, skipped),
	}
}
