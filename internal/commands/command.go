package commands

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sandeepkv93/taskquest/internal/model"
)

type Type string

const (
	TypeAdd       Type = "add"
	TypeDone      Type = "done"
	TypeRemove    Type = "rm"
	TypeBuy       Type = "buy"
	TypeName      Type = "name"
	TypeReward    Type = "reward"
	TypeMilestone Type = "milestone"
	TypeStep      Type = "step"
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

// AddArgs holds a parsed add command. Options are written as key:value tokens
// anywhere after the title words, e.g. "/add stretch at:18:30 every:daily gold:20".
type AddArgs struct {
	Title      string
	At         string
	For        time.Duration
	Recurrence string
	ExpReward  *int
	GoldReward *int
}

type IDArgs struct {
	ID int64
}

type NameArgs struct {
	Name string
}

type RewardArgs struct {
	Title string
	Cost  int
}

type MilestoneArgs struct {
	Title  string
	Target int
}

type Command struct {
	Type      Type
	Raw       string
	Add       *AddArgs
	Target    *IDArgs
	Name      *NameArgs
	Reward    *RewardArgs
	Milestone *MilestoneArgs
}

var aliases = map[string]Type{
	"new":      TypeAdd,
	"complete": TypeDone,
	"delete":   TypeRemove,
	"del":      TypeRemove,
	"rename":   TypeName,
	"ms":       TypeMilestone,
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
	typ := Type(head)
	if alias, ok := aliases[head]; ok {
		typ = alias
	}

	switch typ {
	case TypeAdd:
		return parseAdd(input, args)
	case TypeDone, TypeRemove, TypeBuy, TypeStep:
		return parseID(input, typ, args)
	case TypeName:
		return parseName(input, args)
	case TypeReward:
		return parseReward(input, args)
	case TypeMilestone:
		return parseMilestone(input, args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseAdd(raw string, args []string) (Command, error) {
	out := AddArgs{}
	words := make([]string, 0, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, ":")
		if !ok || value == "" {
			words = append(words, arg)
			continue
		}
		switch strings.ToLower(key) {
		case "at":
			out.At = value
		case "for":
			d, err := time.ParseDuration(value)
			if err != nil || d <= 0 {
				return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid duration %q", value)}
			}
			out.For = d
		case "every":
			rule, err := parseEvery(value)
			if err != nil {
				return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: err.Error()}
			}
			out.Recurrence = rule
		case "exp", "xp":
			n, err := parseNonNegative(value)
			if err != nil {
				return Command{}, err
			}
			out.ExpReward = &n
		case "gold":
			n, err := parseNonNegative(value)
			if err != nil {
				return Command{}, err
			}
			out.GoldReward = &n
		default:
			words = append(words, arg)
		}
	}
	out.Title = strings.TrimSpace(strings.Join(words, " "))
	if out.Title == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a title"}
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &out}, nil
}

// parseEvery accepts "daily", "weekly/2" and similar.
func parseEvery(value string) (string, error) {
	label, n, hasInterval := strings.Cut(value, "/")
	interval := 1
	if hasInterval {
		v, err := strconv.Atoi(n)
		if err != nil || v <= 0 {
			return "", fmt.Errorf("invalid interval %q", n)
		}
		interval = v
	}
	return model.RecurrenceFromLabel(label, interval)
}

func parseNonNegative(value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return 0, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid amount %q", value)}
	}
	return n, nil
}

func parseID(raw string, typ Type, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s requires exactly one id", typ)}
	}
	id, err := strconv.ParseInt(strings.TrimPrefix(args[0], "#"), 10, 64)
	if err != nil || id <= 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid id %q", args[0])}
	}
	return Command{Type: typ, Raw: raw, Target: &IDArgs{ID: id}}, nil
}

func parseName(raw string, args []string) (Command, error) {
	name := strings.TrimSpace(strings.Join(args, " "))
	if name == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "name requires a value"}
	}
	return Command{Type: TypeName, Raw: raw, Name: &NameArgs{Name: name}}, nil
}

func parseReward(raw string, args []string) (Command, error) {
	if len(args) < 2 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "reward requires cost and title"}
	}
	cost, err := strconv.Atoi(args[0])
	if err != nil || cost <= 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid cost %q", args[0])}
	}
	return Command{Type: TypeReward, Raw: raw, Reward: &RewardArgs{Title: strings.Join(args[1:], " "), Cost: cost}}, nil
}

func parseMilestone(raw string, args []string) (Command, error) {
	out := MilestoneArgs{}
	words := make([]string, 0, len(args))
	for _, arg := range args {
		if v, ok := strings.CutPrefix(strings.ToLower(arg), "target:"); ok {
			n, err := strconv.Atoi(v)
			if err != nil || n <= 0 {
				return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid target %q", v)}
			}
			out.Target = n
			continue
		}
		words = append(words, arg)
	}
	out.Title = strings.TrimSpace(strings.Join(words, " "))
	if out.Title == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "milestone requires a title"}
	}
	return Command{Type: TypeMilestone, Raw: raw, Milestone: &out}, nil
}
