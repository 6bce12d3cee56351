package lifecycle

import (
	"time"

	"github.com/kjeyarn/lending-gateway/gateway/internal/model"
)

type ReturnActionKind int

const (
	ReturnActionCancel ReturnActionKind = iota
	ReturnActionReport
)

// ReturnAction is the button shown next to the return details. It reuses the
// cancel handler until the return date arrives, then becomes a report.
type ReturnAction struct {
	Visible bool
	Kind    ReturnActionKind
}

func (r ReturnAction) Label() string {
	if r.Kind == ReturnActionReport {
		return "Report"
	}
	return "Cancel"
}

type Eligibility struct {
	CancelBorrowRequest    bool
	SuggestMeetUp          bool
	SetReturnDetail        bool
	ReportOrCancelAtReturn ReturnAction
	ReceivedBook           bool
	ShowSuggestionDetail   bool
	ShowReturnDetail       bool
}

// Evaluate computes every action flag for the viewer. The flags are
// independent; several may hold at once.
func Evaluate(event model.BorrowEvent, viewerID string, now time.Time) Eligibility {
	return Eligibility{
		CancelBorrowRequest:    CanCancelBorrowRequest(event, viewerID),
		SuggestMeetUp:          CanSuggestMeetUp(event, viewerID),
		SetReturnDetail:        CanSetReturnDetail(event, viewerID, now),
		ReportOrCancelAtReturn: ReportOrCancelAtReturn(event, viewerID, now),
		ReceivedBook:           CanConfirmReceived(event, viewerID, now),
		ShowSuggestionDetail:   ShowSuggestionDetail(event),
		ShowReturnDetail:       ShowReturnDetail(event, now),
	}
}

func meetUpPending(event model.BorrowEvent) bool {
	return event.MeetUpDetail.MeetUpStatus == model.MeetUpStatusPending
}

func CanCancelBorrowRequest(event model.BorrowEvent, viewerID string) bool {
	return meetUpPending(event) && event.Borrower.Is(viewerID)
}

// CanSuggestMeetUp lets the borrower open the negotiation and afterwards lets
// whichever party did not write the latest suggestion answer it.
func CanSuggestMeetUp(event model.BorrowEvent, viewerID string) bool {
	if !meetUpPending(event) || event.BorrowStatus != model.BorrowStatusApproved {
		return false
	}
	latest, ok := event.MeetUpDetail.LatestSuggestion()
	if !ok {
		return event.Borrower.Is(viewerID)
	}
	if event.RoleOf(viewerID) == model.RoleNone {
		return false
	}
	return !latest.ProposedBy.Is(viewerID)
}

func CanSetReturnDetail(event model.BorrowEvent, viewerID string, now time.Time) bool {
	return IsStartDate(event, now) &&
		event.BorrowStatus == model.BorrowStatusInProgress &&
		event.Borrower.Is(viewerID)
}

func ReportOrCancelAtReturn(event model.BorrowEvent, viewerID string, now time.Time) ReturnAction {
	timeToReturn := IsTimeToReturn(event, now)
	visible := CanSetReturnDetail(event, viewerID, now) ||
		(timeToReturn && event.BorrowStatus == model.BorrowStatusDueReturn)
	kind := ReturnActionCancel
	if timeToReturn {
		kind = ReturnActionReport
	}
	return ReturnAction{Visible: visible, Kind: kind}
}

func CanConfirmReceived(event model.BorrowEvent, viewerID string, now time.Time) bool {
	return event.Lender.Is(viewerID) && IsTimeToReturn(event, now)
}

func ShowSuggestionDetail(event model.BorrowEvent) bool {
	latest, ok := event.MeetUpDetail.LatestSuggestion()
	return ok && latest.Status == model.SuggestionStatusPending
}

func ShowReturnDetail(event model.BorrowEvent, now time.Time) bool {
	rd := event.ReturnDetail
	return rd != nil &&
		event.MeetUpDetail.MeetUpStatus == model.MeetUpStatusConfirmed &&
		IsStartDate(event, now) &&
		rd.ReturnTime != ""
}
