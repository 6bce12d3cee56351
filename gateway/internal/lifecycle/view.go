package lifecycle

import (
	"time"

	"github.com/kjeyarn/lending-gateway/gateway/internal/model"
)

type ActionView struct {
	Kind  string `json:"kind"`
	Label string `json:"label,omitempty"`
}

type ReturnActionView struct {
	Visible bool   `json:"visible"`
	Label   string `json:"label"`
	Report  bool   `json:"report"`
}

type EligibilityView struct {
	CancelBorrowRequest    bool             `json:"cancel_borrow_request"`
	SuggestMeetUp          bool             `json:"suggest_meet_up"`
	SetReturnDetail        bool             `json:"set_return_detail"`
	ReportOrCancelAtReturn ReturnActionView `json:"report_or_cancel_at_return"`
	ReceivedBook           bool             `json:"received_book"`
	ShowSuggestionDetail   bool             `json:"show_suggestion_detail"`
	ShowReturnDetail       bool             `json:"show_return_detail"`
}

// View is everything a client needs to render one borrow event page.
type View struct {
	Event          model.BorrowEvent `json:"event"`
	Role           model.Role        `json:"role"`
	MeetUpAction   ActionView        `json:"meet_up_action"`
	Eligibility    EligibilityView   `json:"eligibility"`
	IsStartDate    bool              `json:"is_start_date"`
	IsTimeToReturn bool              `json:"is_time_to_return"`
	Today          string            `json:"today"`
	CoverURL       string            `json:"cover_url,omitempty"`
}

func BuildView(event model.BorrowEvent, viewerID string, now time.Time, imageBaseURL string) View {
	action := ResolveMeetUpAction(event, viewerID)
	el := Evaluate(event, viewerID, now)
	return View{
		Event:        event,
		Role:         event.RoleOf(viewerID),
		MeetUpAction: ActionView{Kind: action.String(), Label: action.Label()},
		Eligibility: EligibilityView{
			CancelBorrowRequest: el.CancelBorrowRequest,
			SuggestMeetUp:       el.SuggestMeetUp,
			SetReturnDetail:     el.SetReturnDetail,
			ReportOrCancelAtReturn: ReturnActionView{
				Visible: el.ReportOrCancelAtReturn.Visible,
				Label:   el.ReportOrCancelAtReturn.Label(),
				Report:  el.ReportOrCancelAtReturn.Kind == ReturnActionReport,
			},
			ReceivedBook:         el.ReceivedBook,
			ShowSuggestionDetail: el.ShowSuggestionDetail,
			ShowReturnDetail:     el.ShowReturnDetail,
		},
		IsStartDate:    IsStartDate(event, now),
		IsTimeToReturn: IsTimeToReturn(event, now),
		Today:          LocalDate(now),
		CoverURL:       event.Book.CoverURL(imageBaseURL),
	}
}
