package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Medication struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID       uuid.UUID `json:"userId" gorm:"type:uuid;index;not null"`
	Name         string    `json:"name" gorm:"not null"`
	Dosage       string    `json:"dosage"`
	Schedule     string    `json:"schedule"`
	CapsulesLeft int       `json:"capsulesLeft"`
	Morning      bool      `json:"morning"`
	Evening      bool      `json:"evening"`
	Night        bool      `json:"night"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Slot is one of the three fixed intake times of a medication. Each slot is
// toggled independently; there is no constraint linking them.
type Slot string

const (
	SlotMorning Slot = "morning"
	SlotEvening Slot = "evening"
	SlotNight   Slot = "night"
)

// ParseSlot accepts the slot name case-insensitively (the mobile client sends
// "Morning"/"Evening"/"Night").
func ParseSlot(s string) (Slot, bool) {
	switch Slot(strings.ToLower(strings.TrimSpace(s))) {
	case SlotMorning:
		return SlotMorning, true
	case SlotEvening:
		return SlotEvening, true
	case SlotNight:
		return SlotNight, true
	}
	return "", false
}

// FlexInt decodes from a JSON number or a numeric string. The mobile client
// submits capsulesLeft from a text input, so both shapes arrive on the wire.
type FlexInt int

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("cannot parse %s as integer", data)
	}
	*f = FlexInt(n)
	return nil
}
