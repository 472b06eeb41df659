package core

import (
	"errors"
	"fmt"
)

const (
	DefaultTargetCalories = 2000
	MinTargetCalories     = 100
	MaxTargetCalories     = 5000

	DefaultTargetExpense = 500
	MinTargetExpense     = 0
	MaxTargetExpense     = 100000
)

var ErrInvalidGoal = errors.New("invalid goal")

// GoalSettings are the daily targets of one session. They are never persisted.
type GoalSettings struct {
	TargetCalories int
	TargetExpense  int
}

func DefaultGoals() GoalSettings {
	return GoalSettings{
		TargetCalories: DefaultTargetCalories,
		TargetExpense:  DefaultTargetExpense,
	}
}

func (g GoalSettings) Validate() error {
	if g.TargetCalories < MinTargetCalories || g.TargetCalories > MaxTargetCalories {
		return fmt.Errorf("%w: calorie target %d must be between %d and %d",
			ErrInvalidGoal, g.TargetCalories, MinTargetCalories, MaxTargetCalories)
	}
	if g.TargetExpense < MinTargetExpense || g.TargetExpense > MaxTargetExpense {
		return fmt.Errorf("%w: expense target %d must be between %d and %d",
			ErrInvalidGoal, g.TargetExpense, MinTargetExpense, MaxTargetExpense)
	}
	return nil
}
