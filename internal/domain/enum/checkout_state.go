package enum

import "encoding/json"

// CheckoutState is the position of one checkout attempt in its state machine
type CheckoutState int

const (
	CheckoutFetching CheckoutState = iota
	CheckoutValidating
	CheckoutAggregating
	CheckoutSequencing
	CheckoutDone
	CheckoutBlocked
	CheckoutFailed
)

func (s CheckoutState) String() string {
	names := [...]string{"Fetching", "Validating", "Aggregating", "Sequencing", "Done", "Blocked", "Failed"}
	if int(s) < 0 || int(s) >= len(names) {
		return "Failed"
	}
	return names[s]
}

// Terminal reports whether no further transition is possible
func (s CheckoutState) Terminal() bool {
	return s == CheckoutDone || s == CheckoutBlocked || s == CheckoutFailed
}

func (s CheckoutState) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}
