// Package commands parses palette input into typed commands and dispatches
// them to handlers.
package commands

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/sandeepkv93/enjaz/internal/model"
)

type Type string

const (
	TypeAdd          Type = "add"
	TypePlan         Type = "plan"
	TypeToggle       Type = "done"
	TypeDelete       Type = "delete"
	TypeBuy          Type = "buy"
	TypeReward       Type = "reward"
	TypeRemoveReward Type = "unreward"
	TypeSpend        Type = "spend"
	TypeRefund       Type = "refund"
	TypeAdvise       Type = "advise"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func invalid(format string, args ...any) error {
	return &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf(format, args...)}
}

type AddArgs struct {
	TimeFrame model.TimeFrame
	Title     string
}

type PlanArgs struct {
	Goal string
}

type TargetArgs struct {
	ID string
}

type DeleteArgs struct {
	GoalID  string
	Cascade bool
}

type RewardArgs struct {
	Title string
}

type SpendArgs struct {
	Amount      decimal.Decimal
	Description string
}

type Command struct {
	Type   Type
	Raw    string
	Add    *AddArgs
	Plan   *PlanArgs
	Target *TargetArgs
	Delete *DeleteArgs
	Reward *RewardArgs
	Spend  *SpendArgs
}

// Usage lists the palette syntax, one command per line.
func Usage() []string {
	return []string{
		"/add [daily|weekly|monthly|yearly] <title>",
		"/plan <yearly goal>",
		"/done <goal-id>",
		"/delete <goal-id> [--cascade]",
		"/buy <reward-id>",
		"/reward <title>",
		"/unreward <reward-id>",
		"/spend <amount> [description]",
		"/refund <expense-id>",
		"/advise",
	}
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeAdd:
		return parseAdd(input, args)
	case TypePlan:
		return parsePlan(input, args)
	case TypeToggle, TypeBuy, TypeRemoveReward, TypeRefund:
		return parseTarget(input, Type(head), args)
	case TypeDelete:
		return parseDelete(input, args)
	case TypeReward:
		return parseReward(input, args)
	case TypeSpend:
		return parseSpend(input, args)
	case TypeAdvise:
		if len(args) > 0 {
			return Command{}, invalid("advise takes no arguments")
		}
		return Command{Type: TypeAdvise, Raw: input}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseAdd(raw string, args []string) (Command, error) {
	tf := model.TimeFrameDaily
	if len(args) > 0 {
		if parsed, ok := model.ParseTimeFrame(args[0]); ok {
			tf = parsed
			args = args[1:]
		}
	}
	title := strings.TrimSpace(strings.Join(args, " "))
	if title == "" {
		return Command{}, invalid("add requires a title")
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &AddArgs{TimeFrame: tf, Title: title}}, nil
}

func parsePlan(raw string, args []string) (Command, error) {
	goal := strings.TrimSpace(strings.Join(args, " "))
	if goal == "" {
		return Command{}, invalid("plan requires a goal")
	}
	return Command{Type: TypePlan, Raw: raw, Plan: &PlanArgs{Goal: goal}}, nil
}

func parseTarget(raw string, typ Type, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, invalid("%s requires exactly one id", typ)
	}
	return Command{Type: typ, Raw: raw, Target: &TargetArgs{ID: args[0]}}, nil
}

func parseDelete(raw string, args []string) (Command, error) {
	var id string
	cascade := false
	for _, arg := range args {
		switch strings.ToLower(arg) {
		case "--cascade", "-r":
			cascade = true
		default:
			if id != "" {
				return Command{}, invalid("delete takes one goal id")
			}
			id = arg
		}
	}
	if id == "" {
		return Command{}, invalid("delete requires a goal id")
	}
	return Command{Type: TypeDelete, Raw: raw, Delete: &DeleteArgs{GoalID: id, Cascade: cascade}}, nil
}

func parseReward(raw string, args []string) (Command, error) {
	title := strings.TrimSpace(strings.Join(args, " "))
	if title == "" {
		return Command{}, invalid("reward requires a title")
	}
	return Command{Type: TypeReward, Raw: raw, Reward: &RewardArgs{Title: title}}, nil
}

func parseSpend(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, invalid("spend requires an amount")
	}
	amount, err := decimal.NewFromString(args[0])
	if err != nil {
		return Command{}, invalid("invalid amount %q", args[0])
	}
	if !amount.IsPositive() {
		return Command{}, invalid("amount must be positive")
	}
	return Command{Type: TypeSpend, Raw: raw, Spend: &SpendArgs{
		Amount:      amount,
		Description: strings.TrimSpace(strings.Join(args[1:], " ")),
	}}, nil
}
