package model

import (
	"strings"
)

type BorrowStatus int

const (
	BorrowStatusPending    BorrowStatus = 1
	BorrowStatusApproved   BorrowStatus = 2
	BorrowStatusRejected   BorrowStatus = 3
	BorrowStatusInProgress BorrowStatus = 4
	BorrowStatusCompleted  BorrowStatus = 5
	BorrowStatusCancelled  BorrowStatus = 6
	BorrowStatusDueReturn  BorrowStatus = 7
	BorrowStatusDeposit    BorrowStatus = 8
)

func (s BorrowStatus) String() string {
	switch s {
	case BorrowStatusPending:
		return "Pending"
	case BorrowStatusApproved:
		return "Approved"
	case BorrowStatusRejected:
		return "Rejected"
	case BorrowStatusInProgress:
		return "InProgress"
	case BorrowStatusCompleted:
		return "Completed"
	case BorrowStatusCancelled:
		return "Cancelled"
	case BorrowStatusDueReturn:
		return "DueReturn"
	case BorrowStatusDeposit:
		return "Deposit"
	default:
		return "Unknown"
	}
}

type MeetUpStatus int

const (
	MeetUpStatusPending   MeetUpStatus = 1
	MeetUpStatusConfirmed MeetUpStatus = 2
)

func (s MeetUpStatus) String() string {
	switch s {
	case MeetUpStatusPending:
		return "Pending"
	case MeetUpStatusConfirmed:
		return "Confirmed"
	default:
		return "Unknown"
	}
}

// SuggestionStatusPending marks a suggestion nobody has answered yet.
const SuggestionStatusPending = 1

type User struct {
	ID        int    `json:"id"`
	SubjectID string `json:"sub"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Picture   string `json:"picture"`
}

// Is reports whether u is the user behind subjectID.
func (u User) Is(subjectID string) bool {
	return subjectID != "" && u.SubjectID == subjectID
}

type Book struct {
	ID       int      `json:"id"`
	Title    string   `json:"title"`
	Author   string   `json:"author"`
	Pictures []string `json:"pictures"`
}

// CoverURL resolves the primary picture against the image host.
func (b Book) CoverURL(imageBaseURL string) string {
	if len(b.Pictures) == 0 || b.Pictures[0] == "" {
		return ""
	}
	pic := b.Pictures[0]
	if strings.HasPrefix(pic, "http://") || strings.HasPrefix(pic, "https://") || imageBaseURL == "" {
		return pic
	}
	return strings.TrimRight(imageBaseURL, "/") + "/" + strings.TrimLeft(pic, "/")
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
	StartDate     Date         `json:"start_date"`
	EndDate       Date         `json:"end_date"`
	FinalTime     string       `json:"final_time,omitempty"`
	FinalLocation string       `json:"final_location,omitempty"`
	MeetUpStatus  MeetUpStatus `json:"meet_up_status"`
	// Suggestions are ordered most recent first.
	Suggestions []Suggestion `json:"suggestions"`
}

// LatestSuggestion returns suggestions[0], if any.
func (m MeetUpDetail) LatestSuggestion() (Suggestion, bool) {
	if len(m.Suggestions) == 0 {
		return Suggestion{}, false
	}
	return m.Suggestions[0], true
}

type ReturnDetail struct {
	ReturnDate     Date   `json:"return_date"`
	ReturnTime     string `json:"return_time,omitempty"`
	ReturnLocation string `json:"return_location,omitempty"`
}

// BorrowEvent is a read-only snapshot of one borrowing transaction as the
// backend last reported it.
type BorrowEvent struct {
	ID           int           `json:"id"`
	Borrower     User          `json:"borrower"`
	Lender       User          `json:"lender"`
	Book         Book          `json:"book"`
	BorrowStatus BorrowStatus  `json:"borrow_status"`
	MeetUpDetail MeetUpDetail  `json:"meet_up_detail"`
	ReturnDetail *ReturnDetail `json:"return_detail,omitempty"`
}

type Role string

const (
	RoleBorrower Role = "borrower"
	RoleLender   Role = "lender"
	RoleNone     Role = "none"
)

// RoleOf tells which side of the event the viewer is on.
func (e BorrowEvent) RoleOf(viewerID string) Role {
	switch {
	case e.Borrower.Is(viewerID):
		return RoleBorrower
	case e.Lender.Is(viewerID):
		return RoleLender
	default:
		return RoleNone
	}
}
