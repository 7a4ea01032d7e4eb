package tui

import (
	"github.com/rgehrsitz/claimtrend/internal/compare"
	"github.com/rgehrsitz/claimtrend/internal/domain"
)

// Scene represents different screens in the TUI
type Scene int

const (
	SceneSummary Scene = iota
	SceneRecords
	SceneForward
	SceneChart
	SceneHelp
)

// String returns a human-readable name for a scene
func (s Scene) String() string {
	switch s {
	case SceneSummary:
		return "Summary"
	case SceneRecords:
		return "Trended Records"
	case SceneForward:
		return "Forward Projection"
	case SceneChart:
		return "Chart"
	case SceneHelp:
		return "Help"
	default:
		return "Unknown"
	}
}

// Message types for the Bubble Tea update cycle

// NavigateMsg switches to a different scene
type NavigateMsg struct {
	Scene Scene
}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}

// DataLoadedMsg carries the parsed records and the finished scenario comparison
type DataLoadedMsg struct {
	Records []domain.ClaimsRecord
	CompSet *compare.ComparisonSet
}
