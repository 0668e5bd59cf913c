package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Add          func(AddArgs) (Result, error)
	Plan         func(PlanArgs) (Result, error)
	Toggle       func(TargetArgs) (Result, error)
	Delete       func(DeleteArgs) (Result, error)
	Buy          func(TargetArgs) (Result, error)
	Reward       func(RewardArgs) (Result, error)
	RemoveReward func(TargetArgs) (Result, error)
	Spend        func(SpendArgs) (Result, error)
	Refund       func(TargetArgs) (Result, error)
	Advise       func() (Result, error)
}

func missing(t Type) error {
	return &CommandError{Code: ErrCodeHandlerMissing, Message: fmt.Sprintf("%s handler not configured", t)}
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeAdd:
		if handlers.Add == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Add(*cmd.Add)
	case TypePlan:
		if handlers.Plan == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Plan(*cmd.Plan)
	case TypeToggle:
		if handlers.Toggle == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Toggle(*cmd.Target)
	case TypeDelete:
		if handlers.Delete == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Delete(*cmd.Delete)
	case TypeBuy:
		if handlers.Buy == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Buy(*cmd.Target)
	case TypeReward:
		if handlers.Reward == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Reward(*cmd.Reward)
	case TypeRemoveReward:
		if handlers.RemoveReward == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.RemoveReward(*cmd.Target)
	case TypeSpend:
		if handlers.Spend == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Spend(*cmd.Spend)
	case TypeRefund:
		if handlers.Refund == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Refund(*cmd.Target)
	case TypeAdvise:
		if handlers.Advise == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Advise()
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}
