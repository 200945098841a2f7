package todo

import "time"

type CreateTodoInput struct {
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Status      Status     `json:"status"`
	Priority    Priority   `json:"priority"`
	DueDate     *time.Time `json:"due_date"`
}

// UpdateTodoInput is a typed patch: nil means "leave untouched", which
// is distinct from an explicit value. Only present fields are applied.
type UpdateTodoInput struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Status      *Status    `json:"status"`
	Priority    *Priority  `json:"priority"`
	DueDate     *time.Time `json:"due_date"`
}

// ListFilter narrows and pages a per-owner listing.
type ListFilter struct {
	Status   *Status
	Priority *Priority
	Offset   int
	Limit    int
}
