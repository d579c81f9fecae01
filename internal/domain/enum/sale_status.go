package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// SaleStatus represents the lifecycle state of a sale
type SaleStatus int

const (
	SaleStatusCompleted SaleStatus = 0
	SaleStatusCancelled SaleStatus = 1
)

func (s SaleStatus) String() string {
	names := [...]string{"Completed", "Cancelled"}
	if int(s) < 0 || int(s) >= len(names) {
		return "Completed"
	}
	return names[s]
}

func (s SaleStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *SaleStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		// Try unmarshaling as int
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = SaleStatus(i)
		return nil
	}
	switch str {
	case "Completed":
		*s = SaleStatusCompleted
	case "Cancelled":
		*s = SaleStatusCancelled
	}
	return nil
}

func (s SaleStatus) Value() (driver.Value, error) {
	return int64(s), nil
}
