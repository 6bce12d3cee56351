package dispatch

import (
	"context"
	"fmt"
	"net/http"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/kjeyarn/lending-gateway/gateway/internal/errs"
	"github.com/kjeyarn/lending-gateway/gateway/internal/model"
	"github.com/kjeyarn/lending-gateway/pkg/validate"
)

//go:generate go run github.com/golang/mock/mockgen -source=dispatch.go -destination=mocks/mock.go

type Backend interface {
	Mutate(ctx context.Context, token, path string, payload any) (model.Envelope, int, error)
}

type ErrorKind int

const (
	KindNone ErrorKind = iota
	KindTransport
	KindValidation
	KindUnauthorized
	KindNotFound
	KindBackend
	KindUnavailable
	// KindRejected is a refusal the backend answered normally (2xx, success false).
	KindRejected
)

func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindTransport:
		return "transport"
	case KindValidation:
		return "validation"
	case KindUnauthorized:
		return "unauthorized"
	case KindNotFound:
		return "not_found"
	case KindBackend:
		return "backend"
	case KindUnavailable:
		return "unavailable"
	case KindRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// HTTPStatus is the gateway response status for a result of this kind.
func (k ErrorKind) HTTPStatus() int {
	switch k {
	case KindNone:
		return http.StatusOK
	case KindValidation:
		return http.StatusUnprocessableEntity
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	case KindUnavailable:
		return http.StatusServiceUnavailable
	case KindRejected:
		return http.StatusConflict
	default:
		return http.StatusBadGateway
	}
}

func (k ErrorKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

type Result struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Kind    ErrorKind           `json:"kind"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

const (
	msgPermissionDenied = "You do not have permission to do that. Please sign in again."
	msgNotFound         = "This borrow event no longer exists."
	msgUnavailable      = "The lending service is temporarily unavailable. Please try again shortly."
	msgBackend          = "Something went wrong. Please try again."
	msgRejected         = "The lending service did not accept this action."
)

type Dispatcher struct {
	log       *zap.Logger
	backend   Backend
	validator *validate.CustomValidator
}

func New(log *zap.Logger, backend Backend) *Dispatcher {
	return &Dispatcher{
		log:       log,
		backend:   backend,
		validator: validate.NewCustomValidator(),
	}
}

// Dispatch runs cmd against the borrow event. It never panics and never
// returns an error: every failure is folded into the Result.
func (d *Dispatcher) Dispatch(ctx context.Context, token string, eventID int, cmd Command) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			d.log.Error("dispatch panic", zap.Any("panic", r), zap.Int("event_id", eventID))
			res = Result{Kind: KindTransport, Message: fmt.Sprintf("Unexpected error: %v", r)}
		}
	}()
	if cmd == nil {
		return Result{Kind: KindValidation, Message: "No action selected."}
	}

	payload := cmd.payload()
	if payload != nil {
		if err := d.validator.Validate(payload); err != nil {
			return Result{Kind: KindValidation, Message: "Please check the highlighted fields.", Errors: validate.FieldErrors(err)}
		}
	}

	env, code, err := d.backend.Mutate(ctx, token, cmd.path(eventID), payload)
	if err != nil {
		d.log.Warn("dispatch failed",
			zap.String("action", cmd.Action()),
			zap.Int("event_id", eventID),
			zap.Int("code", code),
			zap.Error(err))
		if errors.Is(err, errs.ErrUnavailable) {
			return Result{Kind: KindUnavailable, Message: msgUnavailable}
		}
		return Result{Kind: KindTransport, Message: transportMessage(err)}
	}

	return classify(cmd, env, code)
}

func classify(cmd Command, env model.Envelope, code int) Result {
	switch {
	case code == http.StatusUnprocessableEntity:
		return Result{Kind: KindValidation, Message: orDefault(env.Message, "Please check the highlighted fields."), Errors: env.Errors}
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return Result{Kind: KindUnauthorized, Message: msgPermissionDenied}
	case code == http.StatusNotFound:
		return Result{Kind: KindNotFound, Message: msgNotFound}
	case code == http.StatusServiceUnavailable:
		return Result{Kind: KindUnavailable, Message: orDefault(env.Message, msgUnavailable)}
	case code >= http.StatusBadRequest:
		return Result{Kind: KindBackend, Message: orDefault(env.Message, msgBackend), Errors: env.Errors}
	case !env.Success:
		return Result{Kind: KindRejected, Message: orDefault(env.Message, msgRejected), Errors: env.Errors}
	}
	return Result{Success: true, Kind: KindNone, Message: orDefault(env.Message, cmd.successMessage())}
}

func transportMessage(err error) string {
	if errors.Is(err, errs.ErrNotJSON) {
		return "The lending service sent an unreadable response."
	}
	return "Could not reach the lending service: " + err.Error()
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
