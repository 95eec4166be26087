package models

import (
	"encoding/json"
	"testing"
)

func TestValidateDate(t *testing.T) {
	tt := []struct {
		name    string
		date    string
		wantErr bool
	}{
		{name: "valid", date: "2025-01-15"},
		{name: "empty", date: "", wantErr: true},
		{name: "wrong layout", date: "15/01/2025", wantErr: true},
		{name: "impossible day", date: "2025-02-30", wantErr: true},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateDate(tc.date)
			if (err != nil) != tc.wantErr {
				t.Errorf("ValidateDate(%q) error = %v, wantErr %v", tc.date, err, tc.wantErr)
			}
		})
	}
}

func TestValidateSeatNumber(t *testing.T) {
	for _, n := range []int{1, 10, SeatCount} {
		if err := ValidateSeatNumber(n); err != nil {
			t.Errorf("ValidateSeatNumber(%d) unexpected error %v", n, err)
		}
	}
	for _, n := range []int{0, -1, SeatCount + 1} {
		if err := ValidateSeatNumber(n); err == nil {
			t.Errorf("ValidateSeatNumber(%d) expected error", n)
		}
	}
}

func TestSecureReservationRequestValidate(t *testing.T) {
	valid := SecureReservationRequest{UserName: "ana", SeatNumber: 3, ReservationDate: "2025-03-01"}
	if err := valid.Validate(); err != nil {
		t.Errorf("expected valid request, got %v", err)
	}

	missingName := valid
	missingName.UserName = ""
	if err := missingName.Validate(); err == nil {
		t.Error("expected error for missing user name")
	}
}

func TestReservationDecode(t *testing.T) {
	t.Run("string seat number", func(t *testing.T) {
		var r Reservation
		body := `{"id": 7, "user_name": "ana", "seat_number": "12", "reservation_date": "2025-03-01"}`
		if err := json.Unmarshal([]byte(body), &r); err != nil {
			t.Fatalf("unmarshal error = %v", err)
		}
		if r.SeatNumber.Int() != 12 {
			t.Errorf("expected seat 12, got %d", r.SeatNumber)
		}
	})

	t.Run("numeric seat number", func(t *testing.T) {
		var r Reservation
		if err := json.Unmarshal([]byte(`{"id": 1, "seat_number": 4}`), &r); err != nil {
			t.Fatalf("unmarshal error = %v", err)
		}
		if r.SeatNumber.Int() != 4 {
			t.Errorf("expected seat 4, got %d", r.SeatNumber)
		}
	})

	t.Run("non numeric seat number", func(t *testing.T) {
		var r Reservation
		if err := json.Unmarshal([]byte(`{"seat_number": "A1"}`), &r); err == nil {
			t.Error("expected error for non numeric seat")
		}
	})
}

func TestSessionActive(t *testing.T) {
	if (Session{}).Active() {
		t.Error("empty session should not be active")
	}
	if !(Session{Token: "abc"}).Active() {
		t.Error("session with token should be active")
	}
}
