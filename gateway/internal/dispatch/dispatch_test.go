package dispatch_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kjeyarn/lending-gateway/gateway/internal/dispatch"
	"github.com/kjeyarn/lending-gateway/gateway/internal/errs"
	"github.com/kjeyarn/lending-gateway/gateway/internal/model"

	dispatch_mocks "github.com/kjeyarn/lending-gateway/gateway/internal/dispatch/mocks"
)

const (
	token   = "token"
	eventID = 17
)

func validCommands() []dispatch.Command {
	return []dispatch.Command{
		dispatch.CancelBorrowRequest{Reason: "no longer needed"},
		dispatch.AcceptInitialMeetUp{},
		dispatch.SuggestMeetUp{Time: "10:00", Location: "Library cafe", Reason: "closer to campus"},
		dispatch.AcceptSuggestion{},
		dispatch.SetReturnDetail{Time: "15:30", Location: "Main gate"},
		dispatch.ConfirmReceiveBook{},
		dispatch.ReportBorrowEvent{Reason: "book was damaged"},
	}
}

func TestDispatch_NetworkFailureNeverEscapes(t *testing.T) {
	for _, cmd := range validCommands() {
		cmd := cmd
		t.Run(cmd.Action(), func(t *testing.T) {
			c := gomock.NewController(t)
			defer c.Finish()
			backend := dispatch_mocks.NewMockBackend(c)
			backend.EXPECT().
				Mutate(gomock.Any(), token, gomock.Any(), gomock.Any()).
				Return(model.Envelope{}, http.StatusBadGateway, errors.New("dial tcp: connection refused"))

			res := dispatch.New(zap.NewNop(), backend).Dispatch(context.Background(), token, eventID, cmd)

			assert.False(t, res.Success)
			assert.NotEmpty(t, res.Message)
			assert.Equal(t, dispatch.KindTransport, res.Kind)
		})
	}
}

func TestDispatch_PanicIsRecovered(t *testing.T) {
	for _, cmd := range validCommands() {
		cmd := cmd
		t.Run(cmd.Action(), func(t *testing.T) {
			c := gomock.NewController(t)
			defer c.Finish()
			backend := dispatch_mocks.NewMockBackend(c)
			backend.EXPECT().
				Mutate(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(context.Context, string, string, any) (model.Envelope, int, error) {
					panic("socket closed")
				})

			var res dispatch.Result
			require.NotPanics(t, func() {
				res = dispatch.New(zap.NewNop(), backend).Dispatch(context.Background(), token, eventID, cmd)
			})
			assert.False(t, res.Success)
			assert.Contains(t, res.Message, "socket closed")
		})
	}
}

func TestDispatch_Paths(t *testing.T) {
	want := map[string]string{
		dispatch.ActionCancel:           "/borrow-events/17/cancel",
		dispatch.ActionAcceptMeetUp:     "/borrow-events/17/meet-up/accept",
		dispatch.ActionSuggestMeetUp:    "/borrow-events/17/meet-up/suggestions",
		dispatch.ActionAcceptSuggestion: "/borrow-events/17/meet-up/suggestions/accept",
		dispatch.ActionReturnDetail:     "/borrow-events/17/return-detail",
		dispatch.ActionReceive:          "/borrow-events/17/receive",
		dispatch.ActionReport:           "/borrow-events/17/report",
	}
	for _, cmd := range validCommands() {
		cmd := cmd
		t.Run(cmd.Action(), func(t *testing.T) {
			c := gomock.NewController(t)
			defer c.Finish()
			backend := dispatch_mocks.NewMockBackend(c)
			backend.EXPECT().
				Mutate(gomock.Any(), token, want[cmd.Action()], gomock.Any()).
				Return(model.Envelope{Success: true}, http.StatusOK, nil)

			res := dispatch.New(zap.NewNop(), backend).Dispatch(context.Background(), token, eventID, cmd)

			assert.True(t, res.Success)
			assert.Equal(t, dispatch.KindNone, res.Kind)
			assert.NotEmpty(t, res.Message)
		})
	}
}

func TestDispatch_ResponseMapping(t *testing.T) {
	type mockBehavior func(r *dispatch_mocks.MockBackend)

	tests := []struct {
		name         string
		mockBehavior mockBehavior
		want         dispatch.Result
	}{
		{
			name: "ok with backend message",
			mockBehavior: func(r *dispatch_mocks.MockBackend) {
				r.EXPECT().
					Mutate(gomock.Any(), token, "/borrow-events/17/cancel", model.CancelRequest{Reason: "no longer needed"}).
					Return(model.Envelope{Success: true, Message: "Borrow request cancelled successfully"}, http.StatusOK, nil)
			},
			want: dispatch.Result{Success: true, Kind: dispatch.KindNone, Message: "Borrow request cancelled successfully"},
		},
		{
			name: "validation errors copied verbatim",
			mockBehavior: func(r *dispatch_mocks.MockBackend) {
				r.EXPECT().
					Mutate(gomock.Any(), token, gomock.Any(), gomock.Any()).
					Return(model.Envelope{Message: "The given data was invalid.", Errors: map[string][]string{"reason": {"The reason must be at least 10 characters."}}}, http.StatusUnprocessableEntity, nil)
			},
			want: dispatch.Result{
				Kind:    dispatch.KindValidation,
				Message: "The given data was invalid.",
				Errors:  map[string][]string{"reason": {"The reason must be at least 10 characters."}},
			},
		},
		{
			name: "unauthorized is generic",
			mockBehavior: func(r *dispatch_mocks.MockBackend) {
				r.EXPECT().
					Mutate(gomock.Any(), token, gomock.Any(), gomock.Any()).
					Return(model.Envelope{Message: "Token expired at 12:00"}, http.StatusUnauthorized, nil)
			},
			want: dispatch.Result{Kind: dispatch.KindUnauthorized, Message: "You do not have permission to do that. Please sign in again."},
		},
		{
			name: "not found",
			mockBehavior: func(r *dispatch_mocks.MockBackend) {
				r.EXPECT().
					Mutate(gomock.Any(), token, gomock.Any(), gomock.Any()).
					Return(model.Envelope{}, http.StatusNotFound, nil)
			},
			want: dispatch.Result{Kind: dispatch.KindNotFound, Message: "This borrow event no longer exists."},
		},
		{
			name: "rejected with 200 and success false",
			mockBehavior: func(r *dispatch_mocks.MockBackend) {
				r.EXPECT().
					Mutate(gomock.Any(), token, gomock.Any(), gomock.Any()).
					Return(model.Envelope{Success: false, Message: "Borrow request can no longer be cancelled"}, http.StatusOK, nil)
			},
			want: dispatch.Result{Kind: dispatch.KindRejected, Message: "Borrow request can no longer be cancelled"},
		},
		{
			name: "rejected with 200 without message",
			mockBehavior: func(r *dispatch_mocks.MockBackend) {
				r.EXPECT().
					Mutate(gomock.Any(), token, gomock.Any(), gomock.Any()).
					Return(model.Envelope{Success: false}, http.StatusOK, nil)
			},
			want: dispatch.Result{Kind: dispatch.KindRejected, Message: "The lending service did not accept this action."},
		},
		{
			name: "server error without message",
			mockBehavior: func(r *dispatch_mocks.MockBackend) {
				r.EXPECT().
					Mutate(gomock.Any(), token, gomock.Any(), gomock.Any()).
					Return(model.Envelope{}, http.StatusInternalServerError, nil)
			},
			want: dispatch.Result{Kind: dispatch.KindBackend, Message: "Something went wrong. Please try again."},
		},
		{
			name: "breaker open",
			mockBehavior: func(r *dispatch_mocks.MockBackend) {
				r.EXPECT().
					Mutate(gomock.Any(), token, gomock.Any(), gomock.Any()).
					Return(model.Envelope{}, http.StatusServiceUnavailable, errs.ErrUnavailable)
			},
			want: dispatch.Result{Kind: dispatch.KindUnavailable, Message: "The lending service is temporarily unavailable. Please try again shortly."},
		},
		{
			name: "non-json body",
			mockBehavior: func(r *dispatch_mocks.MockBackend) {
				r.EXPECT().
					Mutate(gomock.Any(), token, gomock.Any(), gomock.Any()).
					Return(model.Envelope{}, http.StatusBadGateway, errors.Wrap(errs.ErrNotJSON, "status 500"))
			},
			want: dispatch.Result{Kind: dispatch.KindTransport, Message: "The lending service sent an unreadable response."},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			c := gomock.NewController(t)
			defer c.Finish()
			backend := dispatch_mocks.NewMockBackend(c)
			tt.mockBehavior(backend)

			res := dispatch.New(zap.NewNop(), backend).
				Dispatch(context.Background(), token, eventID, dispatch.CancelBorrowRequest{Reason: "no longer needed"})

			assert.Equal(t, tt.want, res)
		})
	}
}

func TestDispatch_ValidatesBeforeCallingBackend(t *testing.T) {
	tests := []struct {
		name       string
		cmd        dispatch.Command
		wantFields []string
	}{
		{name: "cancel without reason", cmd: dispatch.CancelBorrowRequest{}, wantFields: []string{"reason"}},
		{name: "suggestion without place", cmd: dispatch.SuggestMeetUp{Time: "10:00", Reason: "later"}, wantFields: []string{"suggested_location"}},
		{name: "empty return detail", cmd: dispatch.SetReturnDetail{}, wantFields: []string{"return_time", "return_location"}},
		{name: "report without reason", cmd: dispatch.ReportBorrowEvent{}, wantFields: []string{"reason"}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			c := gomock.NewController(t)
			defer c.Finish()
			backend := dispatch_mocks.NewMockBackend(c)

			res := dispatch.New(zap.NewNop(), backend).Dispatch(context.Background(), token, eventID, tt.cmd)

			assert.False(t, res.Success)
			assert.Equal(t, dispatch.KindValidation, res.Kind)
			for _, f := range tt.wantFields {
				assert.Contains(t, res.Errors, f)
			}
		})
	}
}

func TestNewCommand(t *testing.T) {
	for _, action := range dispatch.Actions {
		cmd, err := dispatch.NewCommand(action, dispatch.Input{Reason: "r", Time: "t", Location: "l"})
		require.NoError(t, err)
		assert.Equal(t, action, cmd.Action())
	}

	_, err := dispatch.NewCommand("delete", dispatch.Input{})
	assert.Error(t, err)
}

func TestErrorKind_HTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusOK, dispatch.KindNone.HTTPStatus())
	assert.Equal(t, http.StatusUnprocessableEntity, dispatch.KindValidation.HTTPStatus())
	assert.Equal(t, http.StatusUnauthorized, dispatch.KindUnauthorized.HTTPStatus())
	assert.Equal(t, http.StatusNotFound, dispatch.KindNotFound.HTTPStatus())
	assert.Equal(t, http.StatusBadGateway, dispatch.KindBackend.HTTPStatus())
	assert.Equal(t, http.StatusBadGateway, dispatch.KindTransport.HTTPStatus())
	assert.Equal(t, http.StatusServiceUnavailable, dispatch.KindUnavailable.HTTPStatus())
	assert.Equal(t, http.StatusConflict, dispatch.KindRejected.HTTPStatus())
}
