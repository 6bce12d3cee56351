package lifecycle_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kjeyarn/lending-gateway/gateway/internal/lifecycle"
	"github.com/kjeyarn/lending-gateway/gateway/internal/model"
)

var (
	brisbane = time.FixedZone("UTC+10", 10*60*60)
	bogota   = time.FixedZone("UTC-5", -5*60*60)
)

func withDates(event model.BorrowEvent, start string, returnDetail *model.ReturnDetail) model.BorrowEvent {
	d, err := model.ParseDate(start)
	if err != nil {
		panic(err)
	}
	event.MeetUpDetail.StartDate = d
	event.ReturnDetail = returnDetail
	return event
}

func returnOn(date, at string) *model.ReturnDetail {
	d, err := model.ParseDate(date)
	if err != nil {
		panic(err)
	}
	return &model.ReturnDetail{ReturnDate: d, ReturnTime: at, ReturnLocation: "Main library"}
}

func Test_LocalDate_ZeroPadded(t *testing.T) {
	assert.Equal(t, "2025-06-01", lifecycle.LocalDate(time.Date(2025, time.June, 1, 8, 0, 0, 0, time.UTC)))
	assert.Equal(t, "0999-01-09", lifecycle.LocalDate(time.Date(999, time.January, 9, 0, 0, 0, 0, time.UTC)))
}

func Test_IsTimeToReturn_UsesLocalCalendarDate(t *testing.T) {
	event := withDates(givenEvent(model.BorrowStatusDueReturn, model.MeetUpStatusConfirmed), "2025-05-20", returnOn("2025-06-01", "17:00"))

	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{name: "late evening east of UTC", now: time.Date(2025, time.June, 1, 23, 59, 0, 0, brisbane), want: true},
		{name: "just after local midnight east of UTC, UTC still on the day", now: time.Date(2025, time.June, 2, 0, 30, 0, 0, brisbane), want: false},
		{name: "late evening west of UTC, UTC already rolled over", now: time.Date(2025, time.June, 1, 23, 59, 0, 0, bogota), want: true},
		{name: "same instant seen from UTC", now: time.Date(2025, time.June, 1, 23, 59, 0, 0, bogota).UTC(), want: false},
		{name: "local midnight west of UTC", now: time.Date(2025, time.June, 2, 0, 0, 0, 0, bogota), want: false},
		{name: "day before", now: time.Date(2025, time.May, 31, 12, 0, 0, 0, brisbane), want: false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, lifecycle.IsTimeToReturn(event, tt.now))
		})
	}
}

func Test_IsStartDate_UsesLocalCalendarDate(t *testing.T) {
	event := withDates(givenEvent(model.BorrowStatusInProgress, model.MeetUpStatusConfirmed), "2025-06-01", nil)

	assert.True(t, lifecycle.IsStartDate(event, time.Date(2025, time.June, 1, 23, 59, 0, 0, bogota)))
	assert.False(t, lifecycle.IsStartDate(event, time.Date(2025, time.June, 1, 23, 59, 0, 0, bogota).UTC()))
	assert.False(t, lifecycle.IsStartDate(event, time.Date(2025, time.June, 2, 0, 0, 0, 0, bogota)))
	assert.False(t, lifecycle.IsTimeToReturn(event, time.Date(2025, time.June, 1, 9, 0, 0, 0, bogota)), "no return detail yet")

	unset := givenEvent(model.BorrowStatusInProgress, model.MeetUpStatusConfirmed)
	assert.False(t, lifecycle.IsStartDate(unset, time.Date(1, time.January, 1, 0, 0, 0, 0, time.UTC)))
}

func Test_CanCancelBorrowRequest(t *testing.T) {
	pending := givenEvent(model.BorrowStatusApproved, model.MeetUpStatusPending)
	confirmed := givenEvent(model.BorrowStatusApproved, model.MeetUpStatusConfirmed)

	assert.True(t, lifecycle.CanCancelBorrowRequest(pending, borrowerID))
	assert.False(t, lifecycle.CanCancelBorrowRequest(pending, lenderID))
	assert.False(t, lifecycle.CanCancelBorrowRequest(pending, strangerID))
	assert.False(t, lifecycle.CanCancelBorrowRequest(confirmed, borrowerID))
}

func Test_CanSuggestMeetUp(t *testing.T) {
	tests := []struct {
		name   string
		event  model.BorrowEvent
		viewer string
		want   bool
	}{
		{name: "no suggestions, borrower", event: givenEvent(model.BorrowStatusApproved, model.MeetUpStatusPending), viewer: borrowerID, want: true},
		{name: "no suggestions, lender", event: givenEvent(model.BorrowStatusApproved, model.MeetUpStatusPending), viewer: lenderID, want: false},
		{name: "own latest suggestion, borrower", event: givenEvent(model.BorrowStatusApproved, model.MeetUpStatusPending, suggestionBy(borrowerID)), viewer: borrowerID, want: false},
		{name: "other party's latest suggestion, lender", event: givenEvent(model.BorrowStatusApproved, model.MeetUpStatusPending, suggestionBy(borrowerID)), viewer: lenderID, want: true},
		{name: "own latest suggestion, lender", event: givenEvent(model.BorrowStatusApproved, model.MeetUpStatusPending, suggestionBy(lenderID)), viewer: lenderID, want: false},
		{name: "other party's latest suggestion, borrower", event: givenEvent(model.BorrowStatusApproved, model.MeetUpStatusPending, suggestionBy(lenderID), suggestionBy(borrowerID)), viewer: borrowerID, want: true},
		{name: "stranger never suggests", event: givenEvent(model.BorrowStatusApproved, model.MeetUpStatusPending, suggestionBy(lenderID)), viewer: strangerID, want: false},
		{name: "confirmed meet-up", event: givenEvent(model.BorrowStatusApproved, model.MeetUpStatusConfirmed), viewer: borrowerID, want: false},
		{name: "not approved", event: givenEvent(model.BorrowStatusPending, model.MeetUpStatusPending), viewer: borrowerID, want: false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, lifecycle.CanSuggestMeetUp(tt.event, tt.viewer))
		})
	}
}

func Test_CanSetReturnDetail_AndReportOrCancel(t *testing.T) {
	startDay := time.Date(2025, time.June, 1, 10, 0, 0, 0, brisbane)
	event := withDates(givenEvent(model.BorrowStatusInProgress, model.MeetUpStatusConfirmed), "2025-06-01", nil)

	assert.True(t, lifecycle.CanSetReturnDetail(event, borrowerID, startDay))
	assert.False(t, lifecycle.CanSetReturnDetail(event, lenderID, startDay))
	assert.False(t, lifecycle.CanSetReturnDetail(event, borrowerID, startDay.AddDate(0, 0, 1)))

	notInProgress := event
	notInProgress.BorrowStatus = model.BorrowStatusApproved
	assert.False(t, lifecycle.CanSetReturnDetail(notInProgress, borrowerID, startDay))

	// before the return date the button reuses cancel
	ra := lifecycle.ReportOrCancelAtReturn(event, borrowerID, startDay)
	assert.True(t, ra.Visible)
	assert.Equal(t, lifecycle.ReturnActionCancel, ra.Kind)
	assert.Equal(t, "Cancel", ra.Label())

	assert.False(t, lifecycle.ReportOrCancelAtReturn(event, lenderID, startDay).Visible)
}

func Test_ReportOrCancelAtReturn_ReportOnReturnDay(t *testing.T) {
	returnDay := time.Date(2025, time.June, 14, 18, 0, 0, 0, brisbane)
	event := withDates(givenEvent(model.BorrowStatusDueReturn, model.MeetUpStatusConfirmed), "2025-06-01", returnOn("2025-06-14", "17:00"))

	for _, viewer := range []string{borrowerID, lenderID} {
		ra := lifecycle.ReportOrCancelAtReturn(event, viewer, returnDay)
		assert.True(t, ra.Visible, viewer)
		assert.Equal(t, lifecycle.ReturnActionReport, ra.Kind)
		assert.Equal(t, "Report", ra.Label())
	}

	inProgress := event
	inProgress.BorrowStatus = model.BorrowStatusInProgress
	ra := lifecycle.ReportOrCancelAtReturn(inProgress, borrowerID, returnDay)
	assert.False(t, ra.Visible)
	assert.Equal(t, lifecycle.ReturnActionReport, ra.Kind)
}

func Test_CanConfirmReceived(t *testing.T) {
	returnDay := time.Date(2025, time.June, 14, 9, 0, 0, 0, bogota)
	event := withDates(givenEvent(model.BorrowStatusDueReturn, model.MeetUpStatusConfirmed), "2025-06-01", returnOn("2025-06-14", "17:00"))

	assert.True(t, lifecycle.CanConfirmReceived(event, lenderID, returnDay))
	assert.False(t, lifecycle.CanConfirmReceived(event, borrowerID, returnDay))
	assert.False(t, lifecycle.CanConfirmReceived(event, lenderID, returnDay.AddDate(0, 0, -1)))
}

func Test_ShowSuggestionDetail(t *testing.T) {
	accepted := suggestionBy(lenderID)
	accepted.Status = 2

	assert.False(t, lifecycle.ShowSuggestionDetail(givenEvent(model.BorrowStatusApproved, model.MeetUpStatusPending)))
	assert.True(t, lifecycle.ShowSuggestionDetail(givenEvent(model.BorrowStatusApproved, model.MeetUpStatusPending, suggestionBy(lenderID))))
	assert.False(t, lifecycle.ShowSuggestionDetail(givenEvent(model.BorrowStatusApproved, model.MeetUpStatusPending, accepted, suggestionBy(borrowerID))))
}

func Test_ShowReturnDetail(t *testing.T) {
	startDay := time.Date(2025, time.June, 1, 12, 0, 0, 0, brisbane)
	event := withDates(givenEvent(model.BorrowStatusInProgress, model.MeetUpStatusConfirmed), "2025-06-01", returnOn("2025-06-14", "17:00"))

	assert.True(t, lifecycle.ShowReturnDetail(event, startDay))
	assert.False(t, lifecycle.ShowReturnDetail(event, startDay.AddDate(0, 0, 1)))

	noTime := withDates(event, "2025-06-01", returnOn("2025-06-14", ""))
	assert.False(t, lifecycle.ShowReturnDetail(noTime, startDay))

	pending := event
	pending.MeetUpDetail.MeetUpStatus = model.MeetUpStatusPending
	assert.False(t, lifecycle.ShowReturnDetail(pending, startDay))

	noDetail := withDates(event, "2025-06-01", nil)
	assert.False(t, lifecycle.ShowReturnDetail(noDetail, startDay))
}

func Test_Evaluate_ApprovedWithoutSuggestions_Borrower(t *testing.T) {
	// arrange
	now := time.Date(2025, time.May, 28, 12, 0, 0, 0, brisbane)
	event := withDates(givenEvent(model.BorrowStatusApproved, model.MeetUpStatusPending), "2025-06-01", nil)

	// act
	el := lifecycle.Evaluate(event, borrowerID, now)
	action := lifecycle.ResolveMeetUpAction(event, borrowerID)

	// assert
	assert.True(t, el.CancelBorrowRequest)
	assert.True(t, el.SuggestMeetUp)
	assert.Equal(t, lifecycle.AcceptInitialMeetUp(), action)
	assert.False(t, el.SetReturnDetail)
	assert.False(t, el.ReportOrCancelAtReturn.Visible)
	assert.False(t, el.ReceivedBook)
	assert.False(t, el.ShowSuggestionDetail)
	assert.False(t, el.ShowReturnDetail)
}

func Test_BuildView(t *testing.T) {
	now := time.Date(2025, time.June, 1, 8, 0, 0, 0, brisbane)
	event := withDates(givenEvent(model.BorrowStatusApproved, model.MeetUpStatusPending, suggestionBy(borrowerID)), "2025-06-01", nil)
	event.Book.Pictures = []string{"covers/dune.png"}

	view := lifecycle.BuildView(event, lenderID, now, "https://img.kjeyarn.edu")

	require.Equal(t, model.RoleLender, view.Role)
	assert.Equal(t, lifecycle.ActionView{Kind: "accept_suggestion", Label: "Accept Suggestion"}, view.MeetUpAction)
	assert.True(t, view.Eligibility.SuggestMeetUp)
	assert.False(t, view.Eligibility.CancelBorrowRequest)
	assert.True(t, view.Eligibility.ShowSuggestionDetail)
	assert.Equal(t, "Cancel", view.Eligibility.ReportOrCancelAtReturn.Label)
	assert.True(t, view.IsStartDate)
	assert.False(t, view.IsTimeToReturn)
	assert.Equal(t, "2025-06-01", view.Today)
	assert.Equal(t, "https://img.kjeyarn.edu/covers/dune.png", view.CoverURL)
}

func Test_InZone(t *testing.T) {
	instant := time.Date(2025, time.June, 2, 3, 0, 0, 0, time.UTC)

	assert.Equal(t, "2025-06-01", lifecycle.LocalDate(lifecycle.InZone(instant, "", bogota)))
	assert.Equal(t, "2025-06-01", lifecycle.LocalDate(lifecycle.InZone(instant, "Not/AZone", bogota)))
	assert.Equal(t, "2025-06-02", lifecycle.LocalDate(lifecycle.InZone(instant, "UTC", bogota)))
	assert.Equal(t, instant, lifecycle.InZone(instant, "", nil))
}
