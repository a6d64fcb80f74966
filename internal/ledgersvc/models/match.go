package models

import (
	"strings"
	"time"
)

// Outcome classifies one team's result relative to the other teams.
type Outcome int

const (
	OutcomeLost Outcome = iota
	OutcomeWon
	OutcomeTied
)

// OutcomeFromScore maps a submitted team score to an outcome.
// 1 means the team won, 0 means it lost, anything else is a tie
// (half points produce scores like 0.5 upstream, submitted here as
// any non 0/1 integer code).
func OutcomeFromScore(score int) Outcome {
	switch score {
	case 1:
		return OutcomeWon
	case 0:
		return OutcomeLost
	default:
		return OutcomeTied
	}
}

// Verb renders the outcome the way history entries phrase it.
func (o Outcome) Verb() string {
	switch o {
	case OutcomeWon:
		return "beat"
	case OutcomeLost:
		return "lost to"
	default:
		return "tied"
	}
}

// MatchSubmission is one recorded outcome: two or more teams, a score
// code per team and an elo delta per player, shaped exactly like Teams.
type MatchSubmission struct {
	GameName   string     `json:"game"`
	Teams      [][]string `json:"teams"`
	TeamScores []int      `json:"team_scores"`
	EloDeltas  [][]int    `json:"team_elo_deltas"`
	Timestamp  time.Time  `json:"timestamp"`
}

// Validate checks the submission shape: parallel team/score/delta
// lists, at least two teams, no empty teams.
func (m *MatchSubmission) Validate() *ValidationError {
	if m.GameName == "" {
		return NewValidationError("game name is required")
	}
	if len(m.Teams) < 2 {
		return NewValidationError("a match needs at least two teams, got %d", len(m.Teams))
	}
	if len(m.TeamScores) != len(m.Teams) {
		return NewValidationError("got %d team scores for %d teams", len(m.TeamScores), len(m.Teams))
	}
	if len(m.EloDeltas) != len(m.Teams) {
		return NewValidationError("got %d delta lists for %d teams", len(m.EloDeltas), len(m.Teams))
	}
	for i, team := range m.Teams {
		if len(team) == 0 {
			return NewValidationError("team %d is empty", i)
		}
		if len(m.EloDeltas[i]) != len(team) {
			return NewValidationError("team %d has %d players but %d deltas", i, len(team), len(m.EloDeltas[i]))
		}
		for _, name := range team {
			if name == "" {
				return NewValidationError("team %d contains an empty player name", i)
			}
		}
	}
	return nil
}

// Opponents returns every team except the one at index i, in the
// original submission order.
func (m *MatchSubmission) Opponents(i int) [][]string {
	opponents := make([][]string, 0, len(m.Teams)-1)
	for j, team := range m.Teams {
		if j == i {
			continue
		}
		opponents = append(opponents, team)
	}
	return opponents
}

// RenderHistory composes the history line for one team of a match,
// e.g. ['Alice'] beat [['Bob']] at Chess. The roster formatting is
// kept byte-compatible with what clients already store and display.
func RenderHistory(team []string, outcome Outcome, opponents [][]string, gameName string) string {
	var b strings.Builder
	b.WriteString(formatTeam(team))
	b.WriteByte(' ')
	b.WriteString(outcome.Verb())
	b.WriteByte(' ')
	b.WriteString(formatTeams(opponents))
	b.WriteString(" at ")
	b.WriteString(gameName)
	return b.String()
}

func formatTeam(team []string) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, name := range team {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('\'')
		b.WriteString(name)
		b.WriteByte('\'')
	}
	b.WriteByte(']')
	return b.String()
}

func formatTeams(teams [][]string) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, team := range teams {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(formatTeam(team))
	}
	b.WriteByte(']')
	return b.String()
}
