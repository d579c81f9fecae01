package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// PaymentMethod represents how a sale was paid for
type PaymentMethod int

const (
	PaymentMethodCash   PaymentMethod = 0
	PaymentMethodCard   PaymentMethod = 1
	PaymentMethodMobile PaymentMethod = 2
)

func (m PaymentMethod) String() string {
	names := [...]string{"Cash", "Card", "Mobile"}
	if int(m) < 0 || int(m) >= len(names) {
		return "Cash"
	}
	return names[m]
}

func (m PaymentMethod) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *PaymentMethod) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*m = PaymentMethod(i)
		return nil
	}
	switch str {
	case "Cash":
		*m = PaymentMethodCash
	case "Card":
		*m = PaymentMethodCard
	case "Mobile":
		*m = PaymentMethodMobile
	}
	return nil
}

func (m PaymentMethod) Value() (driver.Value, error) {
	return int64(m), nil
}
