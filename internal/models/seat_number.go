package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// SeatNumber decodes from either a JSON number or a numeric string.
type SeatNumber int

func (n *SeatNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("seat number %q is not numeric", s)
		}
		*n = SeatNumber(v)
		return nil
	}

	var v int
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*n = SeatNumber(v)
	return nil
}

func (n SeatNumber) Int() int { return int(n) }
