package order

// Measurement is a single measured feature of the physical part together
// with its pass/fail verdict. Measurements arrive already decoded from the
// transport boundary and are stored verbatim on the archived order.
//
// Measurement doubles as its own serialized shape: the same struct appears
// in the snapshot file, the relational payload column, and broadcast events.
type Measurement struct {
	// Feature is the name of the measured characteristic, e.g. "Ø 12H7".
	Feature string `json:"feature"`

	// Nominal is the target value from the drawing.
	Nominal float64 `json:"nominal"`

	// Actual is the value the measurement device recorded.
	Actual float64 `json:"actual"`

	// Status is the per-feature verdict, OK or FAIL.
	Status Status `json:"status"`
}

// Verdict computes the overall order verdict from a sequence of measurement
// entries: OK if every entry's status equals OK, FAIL otherwise.
//
// An empty sequence yields OK (vacuous pass). Whether an order without any
// recorded results should instead be rejected is an open product question;
// until clarified, the historical behavior is kept.
func Verdict(results []Measurement) Status {
	for _, m := range results {
		if m.Status != StatusOK {
			return StatusFail
		}
	}
	return StatusOK
}
