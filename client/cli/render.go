package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/kjeyarn/lending-gateway/client/api"
)

var borrowStatusNames = map[int]string{
	1: "Pending",
	2: "Approved",
	3: "Rejected",
	4: "In progress",
	5: "Completed",
	6: "Cancelled",
	7: "Due return",
	8: "Deposit",
}

func borrowStatus(s int) string {
	if name, ok := borrowStatusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("status %d", s)
}

func renderIdentity(w io.Writer, id identity) {
	fmt.Fprintf(w, "subject: %s\n", id.Subject)
	if id.Email != "" {
		fmt.Fprintf(w, "email:   %s\n", id.Email)
	}
	if id.Status != "" {
		fmt.Fprintf(w, "status:  %s\n", id.Status)
	}
	if id.ExpiresAt != nil {
		fmt.Fprintf(w, "expires: %s\n", id.ExpiresAt.Time.Format("2006-01-02 15:04 MST"))
	}
}

func renderView(w io.Writer, v api.View) {
	e := v.Event
	fmt.Fprintf(w, "#%d %s", e.ID, e.Book.Title)
	if e.Book.Author != "" {
		fmt.Fprintf(w, " by %s", e.Book.Author)
	}
	fmt.Fprintf(w, "\n%s | you are the %s | today %s\n", borrowStatus(e.BorrowStatus), v.Role, v.Today)
	fmt.Fprintf(w, "lender: %s  borrower: %s\n", nameOf(e.Lender), nameOf(e.Borrower))

	m := e.MeetUpDetail
	fmt.Fprintf(w, "borrow period: %s to %s\n", m.StartDate, m.EndDate)
	if m.FinalLocation != "" || m.FinalTime != "" {
		fmt.Fprintf(w, "meet-up: %s at %s\n", m.FinalTime, m.FinalLocation)
	}
	if v.Eligibility.ShowSuggestionDetail && len(m.Suggestions) > 0 {
		s := m.Suggestions[len(m.Suggestions)-1]
		fmt.Fprintf(w, "latest suggestion by %s: %s at %s (%s)\n", nameOf(s.ProposedBy), s.SuggestedTime, s.SuggestedLocation, s.SuggestedReason)
	}
	if v.Eligibility.ShowReturnDetail && e.ReturnDetail != nil {
		r := e.ReturnDetail
		fmt.Fprintf(w, "return: %s %s at %s\n", r.ReturnDate, r.ReturnTime, r.ReturnLocation)
	}
	if v.CoverURL != "" {
		fmt.Fprintf(w, "cover: %s\n", v.CoverURL)
	}

	actions := availableActions(v)
	if len(actions) == 0 {
		fmt.Fprintln(w, "no actions available")
		return
	}
	fmt.Fprintln(w, "actions:")
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, a := range actions {
		fmt.Fprintf(tw, "  %s\t%s\n", a[0], a[1])
	}
	_ = tw.Flush()
}

// availableActions pairs each offered button with the `act` name that runs it.
func availableActions(v api.View) [][2]string {
	var out [][2]string
	switch v.MeetUpAction.Kind {
	case "accept_initial_meet_up":
		out = append(out, [2]string{"accept-meetup", v.MeetUpAction.Label})
	case "accept_suggestion", "accept_final_suggestion":
		out = append(out, [2]string{"accept-suggestion", v.MeetUpAction.Label})
	}
	el := v.Eligibility
	if el.SuggestMeetUp {
		out = append(out, [2]string{"suggest-meetup", "Suggest another meet-up"})
	}
	if el.CancelBorrowRequest {
		out = append(out, [2]string{"cancel", "Cancel borrow request"})
	}
	if el.SetReturnDetail {
		out = append(out, [2]string{"return-detail", "Set return detail"})
	}
	if el.ReportOrCancelAtReturn.Visible {
		name := "cancel"
		if el.ReportOrCancelAtReturn.Report {
			name = "report"
		}
		out = append(out, [2]string{name, el.ReportOrCancelAtReturn.Label})
	}
	if el.ReceivedBook {
		out = append(out, [2]string{"receive", "Confirm book received"})
	}
	return dedupe(out)
}

func dedupe(actions [][2]string) [][2]string {
	seen := make(map[string]bool, len(actions))
	out := actions[:0]
	for _, a := range actions {
		if seen[a[0]] {
			continue
		}
		seen[a[0]] = true
		out = append(out, a)
	}
	return out
}

func renderResult(w io.Writer, res api.Result) {
	if res.Success {
		fmt.Fprintf(w, "ok: %s\n", res.Message)
		return
	}
	fmt.Fprintf(w, "failed: %s\n", res.Message)
	fields := make([]string, 0, len(res.Errors))
	for f := range res.Errors {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	for _, f := range fields {
		fmt.Fprintf(w, "  %s: %s\n", f, strings.Join(res.Errors[f], "; "))
	}
}

func renderHistory(w io.Writer, h api.History) {
	renderEvents(w, "Lending", h.Lending)
	renderEvents(w, "Borrowing", h.Borrowing)
}

func renderEvents(w io.Writer, title string, events []api.BorrowEvent) {
	fmt.Fprintf(w, "%s (%d)\n", title, len(events))
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, e := range events {
		fmt.Fprintf(tw, "  #%d\t%s\t%s\t%s\n", e.ID, e.Book.Title, borrowStatus(e.BorrowStatus), e.MeetUpDetail.StartDate)
	}
	_ = tw.Flush()
}

func renderSearch(w io.Writer, q string, res api.SearchResult) {
	fmt.Fprintf(w, "%q: %d result(s)", q, res.Pagination.Total)
	if res.Pagination.LastPage > 1 {
		fmt.Fprintf(w, ", page %d of %d", res.Pagination.CurrentPage, res.Pagination.LastPage)
	}
	fmt.Fprintln(w)
	for _, b := range res.Books {
		fmt.Fprintf(w, "  [%d] %s", b.ID, b.Title)
		if b.Author != "" {
			fmt.Fprintf(w, " - %s", b.Author)
		}
		fmt.Fprintln(w)
	}
}

// renderActivities prints the list; a negative unread count hides the badge.
func renderActivities(w io.Writer, activities []api.Activity, unread int) {
	if unread >= 0 {
		fmt.Fprintf(w, "Activity (%d unread)\n", unread)
	} else {
		fmt.Fprintln(w, "Activity")
	}
	if len(activities) == 0 {
		fmt.Fprintln(w, "  nothing yet")
		return
	}
	for _, a := range activities {
		fmt.Fprintf(w, "  %s  %s", a.CreatedAt.Local().Format("Jan 02 15:04"), a.Message)
		if a.BorrowEventID != 0 {
			fmt.Fprintf(w, " (#%d)", a.BorrowEventID)
		}
		fmt.Fprintln(w)
	}
}

func nameOf(u api.User) string {
	if u.Name != "" {
		return u.Name
	}
	if u.Email != "" {
		return u.Email
	}
	return u.SubjectID
}
