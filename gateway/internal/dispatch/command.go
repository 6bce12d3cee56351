package dispatch

import (
	"fmt"

	"github.com/kjeyarn/lending-gateway/gateway/internal/model"
	"github.com/kjeyarn/lending-gateway/gateway/internal/service/backend"
)

// Action names as they appear in gateway routes and CLI arguments.
const (
	ActionCancel           = "cancel"
	ActionAcceptMeetUp     = "accept-meetup"
	ActionSuggestMeetUp    = "suggest-meetup"
	ActionAcceptSuggestion = "accept-suggestion"
	ActionReturnDetail     = "return-detail"
	ActionReceive          = "receive"
	ActionReport           = "report"
)

var Actions = []string{
	ActionCancel,
	ActionAcceptMeetUp,
	ActionSuggestMeetUp,
	ActionAcceptSuggestion,
	ActionReturnDetail,
	ActionReceive,
	ActionReport,
}

// Command is one of the seven borrow-event mutations.
type Command interface {
	// Action returns the route name of the command.
	Action() string
	path(eventID int) string
	payload() any
	successMessage() string
}

type CancelBorrowRequest struct {
	Reason string
}

type AcceptInitialMeetUp struct{}

type SuggestMeetUp struct {
	Time     string
	Location string
	Reason   string
}

type AcceptSuggestion struct{}

type SetReturnDetail struct {
	Time     string
	Location string
}

type ConfirmReceiveBook struct{}

type ReportBorrowEvent struct {
	Reason string
}

func (CancelBorrowRequest) Action() string { return ActionCancel }
func (AcceptInitialMeetUp) Action() string { return ActionAcceptMeetUp }
func (SuggestMeetUp) Action() string       { return ActionSuggestMeetUp }
func (AcceptSuggestion) Action() string    { return ActionAcceptSuggestion }
func (SetReturnDetail) Action() string     { return ActionReturnDetail }
func (ConfirmReceiveBook) Action() string  { return ActionReceive }
func (ReportBorrowEvent) Action() string   { return ActionReport }

func (CancelBorrowRequest) path(id int) string { return backend.EventPath(id, "cancel") }
func (AcceptInitialMeetUp) path(id int) string { return backend.EventPath(id, "meet-up/accept") }
func (SuggestMeetUp) path(id int) string       { return backend.EventPath(id, "meet-up/suggestions") }
func (AcceptSuggestion) path(id int) string {
	return backend.EventPath(id, "meet-up/suggestions/accept")
}
func (SetReturnDetail) path(id int) string    { return backend.EventPath(id, "return-detail") }
func (ConfirmReceiveBook) path(id int) string { return backend.EventPath(id, "receive") }
func (ReportBorrowEvent) path(id int) string  { return backend.EventPath(id, "report") }

func (c CancelBorrowRequest) payload() any { return model.CancelRequest{Reason: c.Reason} }
func (AcceptInitialMeetUp) payload() any   { return nil }
func (c SuggestMeetUp) payload() any {
	return model.SuggestMeetUpRequest{SuggestedTime: c.Time, SuggestedLocation: c.Location, SuggestedReason: c.Reason}
}
func (AcceptSuggestion) payload() any { return nil }
func (c SetReturnDetail) payload() any {
	return model.ReturnDetailRequest{ReturnTime: c.Time, ReturnLocation: c.Location}
}
func (ConfirmReceiveBook) payload() any  { return nil }
func (c ReportBorrowEvent) payload() any { return model.ReportRequest{Reason: c.Reason} }

func (CancelBorrowRequest) successMessage() string { return "Borrow request cancelled." }
func (AcceptInitialMeetUp) successMessage() string { return "Meet-up accepted." }
func (SuggestMeetUp) successMessage() string       { return "Meet-up suggestion sent." }
func (AcceptSuggestion) successMessage() string    { return "Suggestion accepted." }
func (SetReturnDetail) successMessage() string     { return "Return detail saved." }
func (ConfirmReceiveBook) successMessage() string  { return "Book marked as received." }
func (ReportBorrowEvent) successMessage() string   { return "Report submitted." }

// Input carries the free-form fields any command may need.
type Input struct {
	Reason   string `json:"reason"`
	Time     string `json:"time"`
	Location string `json:"location"`
}

// NewCommand builds the command registered under action.
func NewCommand(action string, in Input) (Command, error) {
	switch action {
	case ActionCancel:
		return CancelBorrowRequest{Reason: in.Reason}, nil
	case ActionAcceptMeetUp:
		return AcceptInitialMeetUp{}, nil
	case ActionSuggestMeetUp:
		return SuggestMeetUp{Time: in.Time, Location: in.Location, Reason: in.Reason}, nil
	case ActionAcceptSuggestion:
		return AcceptSuggestion{}, nil
	case ActionReturnDetail:
		return SetReturnDetail{Time: in.Time, Location: in.Location}, nil
	case ActionReceive:
		return ConfirmReceiveBook{}, nil
	case ActionReport:
		return ReportBorrowEvent{Reason: in.Reason}, nil
	default:
		return nil, fmt.Errorf("unknown action %q", action)
	}
}
