package models

import (
	"time"
)

// Surface identifies the court type a match was played on
type Surface string

const (
	SurfaceHard    Surface = "Hard"
	SurfaceClay    Surface = "Clay"
	SurfaceGrass   Surface = "Grass"
	SurfaceCarpet  Surface = "Carpet"
	SurfaceUnknown Surface = "Unknown"
)

// ParseSurface maps provider surface strings to a canonical Surface
func ParseSurface(s string) Surface {
	switch s {
	case "Hard", "hard", "HARD":
		return SurfaceHard
	case "Clay", "clay", "CLAY":
		return SurfaceClay
	case "Grass", "grass", "GRASS":
		return SurfaceGrass
	case "Carpet", "carpet", "CARPET":
		return SurfaceCarpet
	default:
		return SurfaceUnknown
	}
}

// WinnerSide indicates which player won a match
type WinnerSide int

const (
	// WinnerUnknown marks a result with a missing or unparseable winner
	WinnerUnknown WinnerSide = iota
	// WinnerA marks player A as the winner
	WinnerA
	// WinnerB marks player B as the winner
	WinnerB
)

// MatchResult represents one completed match from a results source.
// Immutable once ingested.
type MatchResult struct {
	Date       time.Time  `db:"match_date" json:"date" validate:"required"`
	Tournament string     `db:"tournament" json:"tournament"`
	Level      string     `db:"level" json:"level"`
	Round      string     `db:"round" json:"round"`
	Surface    Surface    `db:"surface" json:"surface"`
	PlayerA    string     `db:"player_a" json:"player_a" validate:"required"`
	PlayerB    string     `db:"player_b" json:"player_b" validate:"required"`
	Winner     WinnerSide `db:"winner" json:"winner"`
	Score      string     `db:"score" json:"score"`
}

// HasWinner reports whether the result carries a definite outcome
func (m *MatchResult) HasWinner() bool {
	return m.Winner == WinnerA || m.Winner == WinnerB
}

// WinnerName returns the winning player's name, or "" when unknown
func (m *MatchResult) WinnerName() string {
	switch m.Winner {
	case WinnerA:
		return m.PlayerA
	case WinnerB:
		return m.PlayerB
	}
	return ""
}

// LoserName returns the losing player's name, or "" when unknown
func (m *MatchResult) LoserName() string {
	switch m.Winner {
	case WinnerA:
		return m.PlayerB
	case WinnerB:
		return m.PlayerA
	}
	return ""
}
