package trade

import (
	"encoding/json"
	"time"
)

// Trade is an immutable journal entry. Balance is the ledger balance right
// after the trade was recorded and is never recomputed.
type Trade struct {
	ID         string
	CreatedAt  time.Time
	Result     Result
	ProfitLoss float64
	Breakdown  Breakdown
	Balance    float64
	Notes      string
}

// IsMultiClose reports whether the trade was a multi-close win.
func (t Trade) IsMultiClose() bool {
	_, ok := t.Breakdown.(MultiCloseBreakdown)
	return ok
}

type tradeJSON struct {
	ID         string          `json:"id"`
	CreatedAt  time.Time       `json:"created_at"`
	Result     Result          `json:"result"`
	ProfitLoss float64         `json:"profit_loss"`
	Breakdown  json.RawMessage `json:"breakdown"`
	Balance    float64         `json:"balance"`
	Notes      string          `json:"notes,omitempty"`
}

func (t Trade) MarshalJSON() ([]byte, error) {
	b, err := marshalBreakdown(t.Breakdown)
	if err != nil {
		return nil, err
	}
	return json.Marshal(tradeJSON{
		ID:         t.ID,
		CreatedAt:  t.CreatedAt,
		Result:     t.Result,
		ProfitLoss: t.ProfitLoss,
		Breakdown:  b,
		Balance:    t.Balance,
		Notes:      t.Notes,
	})
}

func (t *Trade) UnmarshalJSON(data []byte) error {
	var v tradeJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	b, err := unmarshalBreakdown(v.Breakdown)
	if err != nil {
		return err
	}
	*t = Trade{
		ID:         v.ID,
		CreatedAt:  v.CreatedAt,
		Result:     v.Result,
		ProfitLoss: v.ProfitLoss,
		Breakdown:  b,
		Balance:    v.Balance,
		Notes:      v.Notes,
	}
	return nil
}
