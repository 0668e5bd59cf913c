package model

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidRewardEffect = errors.New("model: invalid reward effect")

type RewardEffect string

const (
	EffectNone    RewardEffect = ""
	EffectRestDay RewardEffect = "rest_day"
)

func (e RewardEffect) IsValid() bool {
	switch e {
	case EffectNone, EffectRestDay:
		return true
	default:
		return false
	}
}

type Reward struct {
	ID     string       `json:"id"`
	Title  string       `json:"title"`
	Cost   int          `json:"cost"`
	Icon   string       `json:"icon"`
	Effect RewardEffect `json:"specialEffect,omitempty"`
}

func (r Reward) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return errors.New("model: reward id is required")
	}
	if strings.TrimSpace(r.Title) == "" {
		return errors.New("model: reward title is required")
	}
	if r.Cost <= 0 {
		return errors.New("model: reward cost must be positive")
	}
	if !r.Effect.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidRewardEffect, r.Effect)
	}
	return nil
}

// Custom reward pricing bounds and the price used when pricing fails.
const (
	MinRewardCost     = 50
	MaxRewardCost     = 2000
	DefaultRewardCost = 200
	CustomRewardIcon  = "tag"
)

// ClampRewardCost keeps a suggested price inside [MinRewardCost, MaxRewardCost].
func ClampRewardCost(cost int) int {
	switch {
	case cost < MinRewardCost:
		return MinRewardCost
	case cost > MaxRewardCost:
		return MaxRewardCost
	default:
		return cost
	}
}

var builtinRewards = []Reward{
	{ID: "1", Title: "One hour of video games", Cost: 100, Icon: "gamepad"},
	{ID: "2", Title: "30 minute coffee break", Cost: 50, Icon: "coffee"},
	{ID: "3", Title: "Watch a series episode", Cost: 80, Icon: "target"},
	{ID: "4", Title: "Full rest day (postpone tasks)", Cost: 400, Icon: "bed", Effect: EffectRestDay},
}

func BuiltinRewards() []Reward {
	out := make([]Reward, len(builtinRewards))
	copy(out, builtinRewards)
	return out
}

func IsBuiltinReward(id string) bool {
	for _, r := range builtinRewards {
		if r.ID == id {
			return true
		}
	}
	return false
}
