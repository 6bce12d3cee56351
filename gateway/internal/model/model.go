package model

import (
	"encoding/json"
	"time"
)

// Envelope is the backend's uniform response body.
type Envelope struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Data    json.RawMessage     `json:"data,omitempty"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

type Pagination struct {
	CurrentPage  int  `json:"current_page"`
	LastPage     int  `json:"last_page"`
	PerPage      int  `json:"per_page"`
	Total        int  `json:"total"`
	From         int  `json:"from"`
	To           int  `json:"to"`
	HasMorePages bool `json:"has_more_pages"`
}

type SearchBooksResponse struct {
	Books      []Book     `json:"books"`
	Pagination Pagination `json:"pagination"`
}

type Activity struct {
	ID            int       `json:"id"`
	Type          string    `json:"type"`
	Message       string    `json:"message"`
	BorrowEventID int       `json:"borrow_event_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

type HistoryResponse struct {
	Lending   []BorrowEvent `json:"lending"`
	Borrowing []BorrowEvent `json:"borrowing"`
}

type CancelRequest struct {
	Reason string `json:"reason" validate:"required,max=500"`
}

type SuggestMeetUpRequest struct {
	SuggestedTime     string `json:"suggested_time" validate:"required"`
	SuggestedLocation string `json:"suggested_location" validate:"required,max=255"`
	SuggestedReason   string `json:"suggested_reason" validate:"required,max=500"`
}

type ReturnDetailRequest struct {
	ReturnTime     string `json:"return_time" validate:"required"`
	ReturnLocation string `json:"return_location" validate:"required,max=255"`
}

type ReportRequest struct {
	Reason string `json:"reason" validate:"required,max=1000"`
}
