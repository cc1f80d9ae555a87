package trade

import (
	"encoding/json"
	"fmt"
)

// Kind tags the Breakdown variants.
type Kind string

const (
	KindLoss        Kind = "loss"
	KindBreakEven   Kind = "be"
	KindStandardWin Kind = "win"
	KindMultiClose  Kind = "multi"
)

// Breakdown is one of LossBreakdown, BreakEvenBreakdown, WinBreakdown or
// MultiCloseBreakdown. The set is closed; consumers type-switch over it.
type Breakdown interface {
	Kind() Kind
	sealed()
}

// LossBreakdown is a full stop-out.
type LossBreakdown struct {
	Loss float64 `json:"loss"`
}

// BreakEvenBreakdown is a first close in profit with the runner stopped at entry.
type BreakEvenBreakdown struct {
	FirstClose    float64 `json:"first_close"`
	FirstCloseR   float64 `json:"first_close_r"`
	FirstClosePct float64 `json:"first_close_pct"`
	RunnerClose   float64 `json:"runner_close"`
	RunnerPct     float64 `json:"runner_pct"`
}

// WinBreakdown is a first close followed by a runner exit in profit.
type WinBreakdown struct {
	FirstClose    float64 `json:"first_close"`
	FirstCloseR   float64 `json:"first_close_r"`
	FirstClosePct float64 `json:"first_close_pct"`
	RunnerClose   float64 `json:"runner_close"`
	RunnerCloseR  float64 `json:"runner_close_r"`
	RunnerPct     float64 `json:"runner_pct"`
}

// Close is one partial exit of a multi-close win.
type Close struct {
	R      float64 `json:"r"`
	Pct    float64 `json:"pct"`
	Profit float64 `json:"profit"`
}

// MultiCloseBreakdown is a win realized through several partial exits, in
// the order they were entered.
type MultiCloseBreakdown struct {
	Closes   []Close `json:"closes"`
	TotalPct float64 `json:"total_pct"`
}

func (LossBreakdown) Kind() Kind       { return KindLoss }
func (BreakEvenBreakdown) Kind() Kind  { return KindBreakEven }
func (WinBreakdown) Kind() Kind        { return KindStandardWin }
func (MultiCloseBreakdown) Kind() Kind { return KindMultiClose }

func (LossBreakdown) sealed()       {}
func (BreakEvenBreakdown) sealed()  {}
func (WinBreakdown) sealed()        {}
func (MultiCloseBreakdown) sealed() {}

// FirstClose returns the first-close R and percent for the variants that have
// a single first close (break-even and standard win).
func FirstClose(b Breakdown) (r, pct float64, ok bool) {
	switch v := b.(type) {
	case BreakEvenBreakdown:
		return v.FirstCloseR, v.FirstClosePct, true
	case WinBreakdown:
		return v.FirstCloseR, v.FirstClosePct, true
	}
	return 0, 0, false
}

// RealizedR is the R a winning trade is credited with: the runner R for a
// standard win, the percent-weighted mean R for a multi-close win. Other
// variants realize nothing.
func RealizedR(b Breakdown) float64 {
	switch v := b.(type) {
	case WinBreakdown:
		return v.RunnerCloseR
	case MultiCloseBreakdown:
		if v.TotalPct == 0 {
			return 0
		}
		var sum float64
		for _, c := range v.Closes {
			sum += c.R * c.Pct
		}
		return sum / v.TotalPct
	}
	return 0
}

// MaxR is the largest R reached by any exit: the runner for a standard win,
// the highest row for a multi-close win.
func MaxR(b Breakdown) float64 {
	switch v := b.(type) {
	case WinBreakdown:
		return v.RunnerCloseR
	case MultiCloseBreakdown:
		var max float64
		for i, c := range v.Closes {
			if i == 0 || c.R > max {
				max = c.R
			}
		}
		return max
	}
	return 0
}

type envelope struct {
	Kind Kind            `json:"kind"`
	Data json.RawMessage `json:"data"`
}

func marshalBreakdown(b Breakdown) ([]byte, error) {
	if b == nil {
		return []byte("null"), nil
	}
	data, err := json.Marshal(b)
	if err != nil {
		return nil, err
	}
	return json.Marshal(envelope{Kind: b.Kind(), Data: data})
}

func unmarshalBreakdown(raw []byte) (Breakdown, error) {
	if string(raw) == "null" || len(raw) == 0 {
		return nil, nil
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, err
	}

	switch env.Kind {
	case KindLoss:
		var v LossBreakdown
		err := json.Unmarshal(env.Data, &v)
		return v, err
	case KindBreakEven:
		var v BreakEvenBreakdown
		err := json.Unmarshal(env.Data, &v)
		return v, err
	case KindStandardWin:
		var v WinBreakdown
		err := json.Unmarshal(env.Data, &v)
		return v, err
	case KindMultiClose:
		var v MultiCloseBreakdown
		err := json.Unmarshal(env.Data, &v)
		return v, err
	}
	return nil, fmt.Errorf("unknown breakdown kind %q", env.Kind)
}
