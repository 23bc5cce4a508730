package income

import "github.com/incomemap/dashboard/apps/api/pkg/model"

// Record is implemented by model.IncomeRecord and everything embedding it.
type Record interface {
	Income() model.IncomeRecord
}

// FilterByState keeps the records whose state equals *state, in their original order.
// A nil state selects everything and returns records as is.
// No match yields an empty, non-nil slice.
func FilterByState[R Record](records []R, state *string) []R {
	if state == nil {
		return records
	}
	out := make([]R, 0)
	for _, r := range records {
		if r.Income().State == *state {
			out = append(out, r)
		}
	}
	return out
}

// StatePtr turns a dropdown value into a selection: empty means no state selected.
func StatePtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
