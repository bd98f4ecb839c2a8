package models

import "time"

const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

type Transaction struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"userId"`
	Title       string    `json:"title"`
	Amount      float64   `json:"amount"`
	Type        string    `json:"type"`
	Category    string    `json:"category"`
	Description string    `json:"description,omitempty"`
	Date        time.Time `json:"date"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ValidType reports whether t is one of the two accepted transaction types.
func ValidType(t string) bool {
	return t == TypeIncome || t == TypeExpense
}

type CreateTransactionRequest struct {
	Title       string   `json:"title"`
	Amount      *float64 `json:"amount"`
	Type        string   `json:"type"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Date        string   `json:"date"`
}

// MissingFields lists the required fields absent from the request, in the
// order the API reports them.
func (r CreateTransactionRequest) MissingFields() []string {
	var missing []string
	if r.Title == "" {
		missing = append(missing, "title")
	}
	if r.Amount == nil {
		missing = append(missing, "amount")
	}
	if r.Type == "" {
		missing = append(missing, "type")
	}
	if r.Category == "" {
		missing = append(missing, "category")
	}
	return missing
}

// UpdateTransactionRequest is a partial patch. Nil fields keep the stored
// value; the owner is never patchable.
type UpdateTransactionRequest struct {
	Title       *string  `json:"title"`
	Amount      *float64 `json:"amount"`
	Type        *string  `json:"type"`
	Category    *string  `json:"category"`
	Description *string  `json:"description"`
	Date        *string  `json:"date"`
}

type TransactionFilter struct {
	Category    string
	Type        string
	Title       string
	Description string
	StartDate   *time.Time
	EndDate     *time.Time
	MinAmount   *float64
	MaxAmount   *float64
	Page        int
	Limit       int
}

type TransactionPage struct {
	Transactions []Transaction `json:"transactions"`
	Total        int64         `json:"total"`
	CurrentPage  int           `json:"currentPage"`
	TotalPages   int           `json:"totalPages"`
}

// PageCount returns ceil(total/limit).
func PageCount(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
