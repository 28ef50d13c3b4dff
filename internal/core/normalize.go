package core

// Normalize converts raw rows into records, preserving input order and
// dropping rows whose amount is not strictly positive.
//
// The first unparseable row aborts with a *RowError wrapping ErrParse.
func Normalize(rows []RawRow) ([]Record, error) {
	out := make([]Record, 0, len(rows))
	for _, row := range rows {
		amount, err := ParseAmount(row.Value)
		if err != nil {
			return nil, &RowError{Row: row.Row, Label: row.Label, Value: row.Value, Err: err}
		}
		if amount <= 0 {
			continue
		}
		period, err := ParseDate(row.Label)
		if err != nil {
			return nil, &RowError{Row: row.Row, Label: row.Label, Value: row.Value, Err: err}
		}
		out = append(out, Record{Period: period, Amount: amount})
	}
	return out, nil
}
