package trade

import (
	"github.com/rustyeddy/rtracker/pkg/validate"
)

// Row is one partial exit entered for a multi-close win.
type Row struct {
	R   float64 `json:"r"`
	Pct float64 `json:"pct"`
}

// Params are the execution parameters of a submitted trade. A win with any
// Closes is a multi-close win and the first/runner fields are ignored.
type Params struct {
	FirstCloseR   float64
	FirstClosePct float64
	RunnerCloseR  float64
	Closes        []Row
}

// Validate checks the parameters required by result.
func (p Params) Validate(result Result) error {
	switch result {
	case Loss:
		return nil
	case BreakEven:
		if len(p.Closes) > 0 {
			return validate.New("closes", float64(len(p.Closes)), "partial closes only apply to wins")
		}
		if err := validate.Positive("first_close_r", p.FirstCloseR); err != nil {
			return err
		}
		return validate.Range("first_close_pct", p.FirstClosePct, 0, 100)
	case Win:
		if len(p.Closes) > 0 {
			return validateRows(p.Closes)
		}
		if err := validate.Positive("first_close_r", p.FirstCloseR); err != nil {
			return err
		}
		if err := validate.Range("first_close_pct", p.FirstClosePct, 0, 100); err != nil {
			return err
		}
		return validate.Positive("runner_close_r", p.RunnerCloseR)
	}
	return validate.New("result", float64(result), "unknown result")
}

func validateRows(rows []Row) error {
	var total float64
	for _, r := range rows {
		if err := validate.Positive("close_r", r.R); err != nil {
			return err
		}
		if err := validate.Range("close_pct", r.Pct, 0, 100); err != nil {
			return err
		}
		total += r.Pct
	}
	if total > 100+pctTolerance {
		return validate.New("total_pct", total, "closes must not exceed 100% of the position")
	}
	return nil
}

// pctTolerance absorbs float drift in summed percentages such as 33.3+33.3+33.4.
const pctTolerance = 1e-9

// Compute validates p and dispatches to ComputeStandard or ComputeMultiClose.
func Compute(result Result, p Params, riskAmount float64) (float64, Breakdown, error) {
	if err := p.Validate(result); err != nil {
		return 0, nil, err
	}
	if result == Win && len(p.Closes) > 0 {
		pl, b := ComputeMultiClose(p.Closes, riskAmount)
		return pl, b, nil
	}
	return ComputeStandard(result, p.FirstCloseR, p.FirstClosePct, p.RunnerCloseR, riskAmount)
}

// ComputeStandard prices a two-part exit: a first close of firstClosePct of the
// position at firstCloseR, and the runner remainder at runnerCloseR. A loss
// ignores every parameter and costs riskAmount. A break-even runner exits at
// entry and contributes nothing.
func ComputeStandard(result Result, firstCloseR, firstClosePct, runnerCloseR, riskAmount float64) (float64, Breakdown, error) {
	if result == Loss {
		return -riskAmount, LossBreakdown{Loss: -riskAmount}, nil
	}

	if err := validate.Range("first_close_pct", firstClosePct, 0, 100); err != nil {
		return 0, nil, err
	}
	if err := validate.Finite("first_close_r", firstCloseR); err != nil {
		return 0, nil, err
	}
	if result == Win {
		if err := validate.Finite("runner_close_r", runnerCloseR); err != nil {
			return 0, nil, err
		}
	}

	lock := firstClosePct / 100
	guaranteed := lock * firstCloseR * riskAmount

	switch result {
	case BreakEven:
		return guaranteed, BreakEvenBreakdown{
			FirstClose:    guaranteed,
			FirstCloseR:   firstCloseR,
			FirstClosePct: firstClosePct,
			RunnerClose:   0,
			RunnerPct:     100 - firstClosePct,
		}, nil

	case Win:
		runner := (1 - lock) * runnerCloseR * riskAmount
		return guaranteed + runner, WinBreakdown{
			FirstClose:    guaranteed,
			FirstCloseR:   firstCloseR,
			FirstClosePct: firstClosePct,
			RunnerClose:   runner,
			RunnerCloseR:  runnerCloseR,
			RunnerPct:     (1 - lock) * 100,
		}, nil
	}

	return 0, nil, validate.New("result", float64(result), "unknown result")
}

// ComputeMultiClose sums pct/100 * R * riskAmount over rows. The caller keeps
// the total percentage at or below 100; an empty slice prices to zero.
func ComputeMultiClose(rows []Row, riskAmount float64) (float64, Breakdown) {
	b := MultiCloseBreakdown{Closes: make([]Close, 0, len(rows))}

	var total float64
	for _, r := range rows {
		profit := r.Pct / 100 * r.R * riskAmount
		b.Closes = append(b.Closes, Close{R: r.R, Pct: r.Pct, Profit: profit})
		b.TotalPct += r.Pct
		total += profit
	}
	return total, b
}
