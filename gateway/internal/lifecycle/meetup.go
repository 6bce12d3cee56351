package lifecycle

import (
	"github.com/kjeyarn/lending-gateway/gateway/internal/model"
)

type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionAcceptInitialMeetUp
	ActionAcceptSuggestion
)

type SuggestionLevel int

const (
	LevelRegular SuggestionLevel = iota
	LevelFinal
)

// Action is the single negotiation step offered to a viewer. Build it with
// NoAction, AcceptInitialMeetUp or AcceptSuggestion.
type Action struct {
	kind  ActionKind
	level SuggestionLevel
}

func NoAction() Action { return Action{kind: ActionNone} }

func AcceptInitialMeetUp() Action { return Action{kind: ActionAcceptInitialMeetUp} }

func AcceptSuggestion(level SuggestionLevel) Action {
	return Action{kind: ActionAcceptSuggestion, level: level}
}

func (a Action) Kind() ActionKind { return a.kind }

// Level is meaningful only for ActionAcceptSuggestion.
func (a Action) Level() SuggestionLevel { return a.level }

func (a Action) IsNone() bool { return a.kind == ActionNone }

func (a Action) Label() string {
	switch a.kind {
	case ActionAcceptInitialMeetUp:
		return "Accept Meet-up"
	case ActionAcceptSuggestion:
		if a.level == LevelFinal {
			return "Accept Final Suggestion"
		}
		return "Accept Suggestion"
	default:
		return ""
	}
}

func (a Action) String() string {
	switch a.kind {
	case ActionAcceptInitialMeetUp:
		return "accept_initial_meet_up"
	case ActionAcceptSuggestion:
		if a.level == LevelFinal {
			return "accept_final_suggestion"
		}
		return "accept_suggestion"
	default:
		return "none"
	}
}

// ResolveMeetUpAction returns the negotiation step the viewer may take next.
//
// Turns alternate by suggestion author, with suggestions[0] the most recent:
//
//	no suggestions                       -> borrower accepts the initial proposal
//	one, by borrower                     -> lender accepts it
//	one, by lender                       -> borrower accepts it
//	two, latest by lender, then borrower -> borrower accepts the final one
//
// Every other shape, including the reverse two-suggestion order and chains
// longer than two, yields no action.
func ResolveMeetUpAction(event model.BorrowEvent, viewerID string) Action {
	if event.BorrowStatus != model.BorrowStatusApproved ||
		event.MeetUpDetail.MeetUpStatus != model.MeetUpStatusPending {
		return NoAction()
	}

	borrower, lender := event.Borrower, event.Lender
	suggestions := event.MeetUpDetail.Suggestions

	switch len(suggestions) {
	case 0:
		if borrower.Is(viewerID) {
			return AcceptInitialMeetUp()
		}
	case 1:
		author := suggestions[0].ProposedBy
		switch {
		case author.Is(borrower.SubjectID) && lender.Is(viewerID):
			return AcceptSuggestion(LevelRegular)
		case author.Is(lender.SubjectID) && borrower.Is(viewerID):
			return AcceptSuggestion(LevelRegular)
		}
	case 2:
		latest, previous := suggestions[0].ProposedBy, suggestions[1].ProposedBy
		if latest.Is(lender.SubjectID) && previous.Is(borrower.SubjectID) && borrower.Is(viewerID) {
			return AcceptSuggestion(LevelFinal)
		}
	}
	return NoAction()
}
