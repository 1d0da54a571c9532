// Package reward turns task rewards into profile progression.
package reward

import (
	"fmt"

	"github.com/sandeepkv93/taskquest/internal/model"
)

// Apply adds exp and gold to p and normalizes experience into levels.
// Negative inputs are treated as zero.
func Apply(p model.Profile, exp, gold int) model.Profile {
	if exp < 0 {
		exp = 0
	}
	if gold < 0 {
		gold = 0
	}
	if p.Level < 1 {
		p.Level = 1
	}
	p.Gold += gold
	p.Experience += exp
	for p.Experience >= model.ExpPerLevel {
		p.Level++
		p.Experience -= model.ExpPerLevel
	}
	return p
}

// InsufficientGoldError reports a purchase the balance cannot cover.
type InsufficientGoldError struct {
	Balance int
	Cost    int
}

func (e *InsufficientGoldError) Error() string {
	return fmt.Sprintf("reward: insufficient gold: have %d, need %d", e.Balance, e.Cost)
}

// Purchase returns the balance left after paying cost.
func Purchase(balance, cost int) (int, error) {
	if cost <= 0 {
		return balance, model.ErrInvalidCost
	}
	if balance < cost {
		return balance, &InsufficientGoldError{Balance: balance, Cost: cost}
	}
	return balance - cost, nil
}

// Progress is the share of the current level already earned, in [0,1).
func Progress(p model.Profile) float64 {
	if p.Experience <= 0 {
		return 0
	}
	return float64(p.Experience) / float64(model.ExpPerLevel)
}
