// Package trade computes a trade's profit/loss and keeps the structured
// breakdown of how it was realized.
package trade

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Result is how a trade ended.
type Result int

const (
	Loss Result = iota
	BreakEven
	Win
)

func (r Result) String() string {
	switch r {
	case Loss:
		return "loss"
	case BreakEven:
		return "be"
	case Win:
		return "win"
	default:
		return fmt.Sprintf("Result(%d)", int(r))
	}
}

// ParseResult accepts "loss", "be"/"breakeven" and "win".
func ParseResult(s string) (Result, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "loss", "sl":
		return Loss, nil
	case "be", "breakeven", "break-even":
		return BreakEven, nil
	case "win", "tp":
		return Win, nil
	}
	return 0, fmt.Errorf("unknown trade result %q", s)
}

func (r Result) MarshalJSON() ([]byte, error) {
	switch r {
	case Loss, BreakEven, Win:
		return json.Marshal(r.String())
	}
	return nil, fmt.Errorf("marshal %s", r)
}

func (r *Result) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v, err := ParseResult(s)
	if err != nil {
		return err
	}
	*r = v
	return nil
}
