package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// DefaultCycleDays matches the mobile client's assumed cycle length.
const DefaultCycleDays = 28

// PeriodCycle holds one user's current cycle start plus a JSON log of
// previously recorded start dates.
type PeriodCycle struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID    uuid.UUID      `json:"userId" gorm:"type:uuid;uniqueIndex;not null"`
	StartDate time.Time      `json:"startDate" gorm:"not null"`
	CycleDays int            `json:"cycleDays" gorm:"not null;default:28"`
	History   datatypes.JSON `json:"history"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// NextPeriodDate projects the next expected start from the recorded one.
func (p *PeriodCycle) NextPeriodDate() time.Time {
	days := p.CycleDays
	if days <= 0 {
		days = DefaultCycleDays
	}
	return p.StartDate.AddDate(0, 0, days)
}
