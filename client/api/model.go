package api

import "time"

type User struct {
	ID        int    `json:"id"`
	SubjectID string `json:"sub"`
	Name      string `json:"name"`
	Email     string `json:"email"`
}

type Book struct {
	ID       int      `json:"id"`
	Title    string   `json:"title"`
	Author   string   `json:"author"`
	Pictures []string `json:"pictures"`
}

type Suggestion struct {
	ID                int    `json:"id"`
	SuggestedTime     string `json:"suggested_time"`
	SuggestedLocation string `json:"suggested_location"`
	SuggestedReason   string `json:"suggested_reason"`
	ProposedBy        User   `json:"proposed_by"`
	Status            int    `json:"status"`
}

type MeetUpDetail struct {
	StartDate     string       `json:"start_date"`
	EndDate       string       `json:"end_date"`
	FinalTime     string       `json:"final_time"`
	FinalLocation string       `json:"final_location"`
	MeetUpStatus  int          `json:"meet_up_status"`
	Suggestions   []Suggestion `json:"suggestions"`
}

type ReturnDetail struct {
	ReturnDate     string `json:"return_date"`
	ReturnTime     string `json:"return_time"`
	ReturnLocation string `json:"return_location"`
}

type BorrowEvent struct {
	ID           int           `json:"id"`
	Borrower     User          `json:"borrower"`
	Lender       User          `json:"lender"`
	Book         Book          `json:"book"`
	BorrowStatus int           `json:"borrow_status"`
	MeetUpDetail MeetUpDetail  `json:"meet_up_detail"`
	ReturnDetail *ReturnDetail `json:"return_detail"`
}

type ActionView struct {
	Kind  string `json:"kind"`
	Label string `json:"label"`
}

type ReturnActionView struct {
	Visible bool   `json:"visible"`
	Label   string `json:"label"`
	Report  bool   `json:"report"`
}

type Eligibility struct {
	CancelBorrowRequest    bool             `json:"cancel_borrow_request"`
	SuggestMeetUp          bool             `json:"suggest_meet_up"`
	SetReturnDetail        bool             `json:"set_return_detail"`
	ReportOrCancelAtReturn ReturnActionView `json:"report_or_cancel_at_return"`
	ReceivedBook           bool             `json:"received_book"`
	ShowSuggestionDetail   bool             `json:"show_suggestion_detail"`
	ShowReturnDetail       bool             `json:"show_return_detail"`
}

// View mirrors the gateway's borrow event page.
type View struct {
	Event          BorrowEvent `json:"event"`
	Role           string      `json:"role"`
	MeetUpAction   ActionView  `json:"meet_up_action"`
	Eligibility    Eligibility `json:"eligibility"`
	IsStartDate    bool        `json:"is_start_date"`
	IsTimeToReturn bool        `json:"is_time_to_return"`
	Today          string      `json:"today"`
	CoverURL       string      `json:"cover_url"`
}

type History struct {
	Lending   []BorrowEvent `json:"lending"`
	Borrowing []BorrowEvent `json:"borrowing"`
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

type SearchResult struct {
	Books      []Book     `json:"books"`
	Pagination Pagination `json:"pagination"`
}

type Activity struct {
	ID            int       `json:"id"`
	Type          string    `json:"type"`
	Message       string    `json:"message"`
	BorrowEventID int       `json:"borrow_event_id"`
	CreatedAt     time.Time `json:"created_at"`
}

type Input struct {
	Reason   string `json:"reason,omitempty"`
	Time     string `json:"time,omitempty"`
	Location string `json:"location,omitempty"`
}

type Result struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Kind    string              `json:"kind"`
	Errors  map[string][]string `json:"errors,omitempty"`
}
