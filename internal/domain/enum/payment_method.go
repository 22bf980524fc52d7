package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// PaymentMethod represents how an order was (or will be) paid
type PaymentMethod int

const (
	PaymentCash     PaymentMethod = 0
	PaymentQR       PaymentMethod = 1
	PaymentCard     PaymentMethod = 2
	PaymentPayLater PaymentMethod = 3
)

var paymentMethodNames = [...]string{"Cash", "QR", "Card", "PayLater"}

func (p PaymentMethod) String() string {
	if !p.Valid() {
		return fmt.Sprintf("PaymentMethod(%d)", int(p))
	}
	return paymentMethodNames[p]
}

func (p PaymentMethod) Valid() bool {
	return p >= PaymentCash && int(p) < len(paymentMethodNames)
}

// IsDeferred reports whether the order is an unsettled balance against the guest.
func (p PaymentMethod) IsDeferred() bool {
	return p == PaymentPayLater
}

func ParsePaymentMethod(name string) (PaymentMethod, error) {
	for i, n := range paymentMethodNames {
		if n == name {
			return PaymentMethod(i), nil
		}
	}
	return 0, fmt.Errorf("unknown payment method %q", name)
}

func (p PaymentMethod) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

func (p *PaymentMethod) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		if !PaymentMethod(i).Valid() {
			return fmt.Errorf("unknown payment method %d", i)
		}
		*p = PaymentMethod(i)
		return nil
	}
	parsed, err := ParsePaymentMethod(str)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

func (p PaymentMethod) Value() (driver.Value, error) {
	return int64(p), nil
}

func (p *PaymentMethod) Scan(value interface{}) error {
	if value == nil {
		*p = PaymentCash
		return nil
	}
	switch v := value.(type) {
	case int64:
		*p = PaymentMethod(v)
	case int32:
		*p = PaymentMethod(v)
	case int:
		*p = PaymentMethod(v)
	default:
		return fmt.Errorf("cannot scan %T into PaymentMethod", value)
	}
	return nil
}
