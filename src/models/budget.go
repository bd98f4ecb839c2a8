package models

import "time"

const (
	PeriodDaily   = "daily"
	PeriodWeekly  = "weekly"
	PeriodMonthly = "monthly"
	PeriodYearly  = "yearly"
)

type Budget struct {
	ID        int64      `json:"id"`
	UserID    int64      `json:"userId"`
	Amount    float64    `json:"amount"`
	Month     time.Time  `json:"month"`
	Category  string     `json:"category,omitempty"`
	Period    string     `json:"period"`
	StartDate *time.Time `json:"startDate,omitempty"`
	EndDate   *time.Time `json:"endDate,omitempty"`
	IsActive  bool       `json:"isActive"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

func ValidPeriod(p string) bool {
	switch p {
	case PeriodDaily, PeriodWeekly, PeriodMonthly, PeriodYearly:
		return true
	}
	return false
}
