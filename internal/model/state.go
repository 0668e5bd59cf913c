package model

import "time"

// DayLayout formats the calendar day used as the reconciliation marker.
const DayLayout = "2006-01-02"

func DayKey(t time.Time) string {
	return t.Local().Format(DayLayout)
}

// State is everything the app persists for one install.
type State struct {
	Goals         []Goal
	CustomRewards []Reward
	Budget        Budget
	Stats         UserStats
	LastReset     string
}

func (s State) Clone() State {
	out := State{
		Goals:         append([]Goal(nil), s.Goals...),
		CustomRewards: append([]Reward(nil), s.CustomRewards...),
		Budget:        s.Budget.Clone(),
		Stats:         s.Stats.Clone(),
		LastReset:     s.LastReset,
	}
	if out.Goals == nil {
		out.Goals = []Goal{}
	}
	if out.CustomRewards == nil {
		out.CustomRewards = []Reward{}
	}
	return out
}
