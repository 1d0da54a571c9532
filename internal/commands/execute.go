package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Add       func(AddArgs) (Result, error)
	Done      func(IDArgs) (Result, error)
	Remove    func(IDArgs) (Result, error)
	Buy       func(IDArgs) (Result, error)
	Name      func(NameArgs) (Result, error)
	Reward    func(RewardArgs) (Result, error)
	Milestone func(MilestoneArgs) (Result, error)
	Step      func(IDArgs) (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeAdd:
		if handlers.Add == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Add(*cmd.Add)
	case TypeDone:
		if handlers.Done == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Done(*cmd.Target)
	case TypeRemove:
		if handlers.Remove == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Remove(*cmd.Target)
	case TypeBuy:
		if handlers.Buy == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Buy(*cmd.Target)
	case TypeName:
		if handlers.Name == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Name(*cmd.Name)
	case TypeReward:
		if handlers.Reward == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Reward(*cmd.Reward)
	case TypeMilestone:
		if handlers.Milestone == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Milestone(*cmd.Milestone)
	case TypeStep:
		if handlers.Step == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Step(*cmd.Target)
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}

func missing(t Type) error {
	return &CommandError{Code: ErrCodeHandlerMissing, Message: fmt.Sprintf("%s handler not configured", t)}
}
