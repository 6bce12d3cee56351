package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/kjeyarn/lending-gateway/gateway/config"
	"github.com/kjeyarn/lending-gateway/gateway/internal/errs"
	"github.com/kjeyarn/lending-gateway/gateway/internal/model"
	"github.com/kjeyarn/lending-gateway/pkg/circuit_breaker"
)

type Service struct {
	log     *zap.Logger
	client  *http.Client
	baseURL string
	cb      circuit_breaker.CircuitBreaker
}

func NewService(log *zap.Logger, cfg config.BackendAPI) *Service {
	return &Service{
		log:     log,
		client:  &http.Client{Timeout: cfg.Timeout},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		cb:      circuit_breaker.Default(),
	}
}

func (s *Service) CB() circuit_breaker.CircuitBreaker {
	return s.cb
}

// EventPath builds the mutation path for a borrow event.
func EventPath(eventID int, suffix string) string {
	return fmt.Sprintf("/borrow-events/%d/%s", eventID, strings.TrimLeft(suffix, "/"))
}

func (s *Service) GetBorrowEvent(ctx context.Context, token string, id int) (model.BorrowEvent, int, error) {
	body, code, err := s.do(ctx, http.MethodGet, fmt.Sprintf("/borrow-events/%d", id), token, nil)
	if err != nil {
		return model.BorrowEvent{}, code, err
	}
	if err := statusErr(code); err != nil {
		return model.BorrowEvent{}, code, err
	}
	var event model.BorrowEvent
	if err := json.Unmarshal(unwrapData(body), &event); err != nil {
		return model.BorrowEvent{}, http.StatusBadGateway, errors.Wrap(err, "decode borrow event")
	}
	if event.ID == 0 {
		return model.BorrowEvent{}, http.StatusNotFound, errs.ErrNotFound
	}
	return event, code, nil
}

func (s *Service) ListLending(ctx context.Context, token string, page int) ([]model.BorrowEvent, int, error) {
	return s.listEvents(ctx, token, "lending", page)
}

func (s *Service) ListBorrowing(ctx context.Context, token string, page int) ([]model.BorrowEvent, int, error) {
	return s.listEvents(ctx, token, "borrowing", page)
}

func (s *Service) listEvents(ctx context.Context, token, side string, page int) ([]model.BorrowEvent, int, error) {
	path := "/borrow-events/" + side + "?" + pageQuery(url.Values{}, page).Encode()
	body, code, err := s.do(ctx, http.MethodGet, path, token, nil)
	if err != nil {
		return nil, code, err
	}
	if err := statusErr(code); err != nil {
		return nil, code, err
	}
	events, err := model.NormalizeBorrowEvents(body)
	if err != nil {
		return nil, http.StatusBadGateway, err
	}
	return events, code, nil
}

func (s *Service) SearchBooks(ctx context.Context, token, query string, page int) (model.SearchBooksResponse, int, error) {
	q := pageQuery(url.Values{"q": []string{query}}, page)
	body, code, err := s.do(ctx, http.MethodGet, "/books/search?"+q.Encode(), token, nil)
	if err != nil {
		return model.SearchBooksResponse{}, code, err
	}
	if err := statusErr(code); err != nil {
		return model.SearchBooksResponse{}, code, err
	}
	var res model.SearchBooksResponse
	if err := json.Unmarshal(unwrapData(body), &res); err != nil {
		return model.SearchBooksResponse{}, http.StatusBadGateway, errors.Wrap(err, "decode search result")
	}
	if res.Books == nil {
		res.Books = []model.Book{}
	}
	return res, code, nil
}

func (s *Service) RecentActivity(ctx context.Context, token string) ([]model.Activity, int, error) {
	body, code, err := s.do(ctx, http.MethodGet, "/activities/recent", token, nil)
	if err != nil {
		return nil, code, err
	}
	if err := statusErr(code); err != nil {
		return nil, code, err
	}
	activities := make([]model.Activity, 0)
	if err := json.Unmarshal(unwrapData(body), &activities); err != nil {
		return nil, http.StatusBadGateway, errors.Wrap(err, "decode activities")
	}
	return activities, code, nil
}

// Mutate POSTs payload to path and decodes the backend envelope. Only
// transport failures and unreadable bodies come back as errors; business
// rejections are carried by the envelope and the status code.
func (s *Service) Mutate(ctx context.Context, token, path string, payload any) (model.Envelope, int, error) {
	body, code, err := s.do(ctx, http.MethodPost, path, token, payload)
	if err != nil {
		return model.Envelope{}, code, err
	}
	var env model.Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return model.Envelope{}, code, errors.Wrap(err, "decode envelope")
	}
	return env, code, nil
}

func (s *Service) do(ctx context.Context, method, path, token string, payload any) ([]byte, int, error) {
	var (
		body []byte
		code int
	)
	err := s.cb.Call(func() error {
		var reqBody io.Reader = http.NoBody
		if payload != nil {
			b := bytes.NewBuffer(nil)
			if err := json.NewEncoder(b).Encode(payload); err != nil {
				return errors.Wrap(err, "encode payload")
			}
			reqBody = b
		}
		req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, reqBody)
		if err != nil {
			return err
		}
		req.Header.Set(echo.HeaderAccept, echo.MIMEApplicationJSON)
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSONCharsetUTF8)
		if token != "" {
			req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
		}
		resp, err := s.client.Do(req)
		if err != nil {
			return callerGaveUp(ctx, err)
		}
		defer resp.Body.Close()

		code = resp.StatusCode
		body, err = io.ReadAll(resp.Body)
		if err != nil {
			return callerGaveUp(ctx, errors.Wrap(err, "read body"))
		}
		if code >= http.StatusInternalServerError {
			return errors.Errorf("backend %s %s: status %d", method, path, code)
		}
		return nil
	})
	switch {
	case errors.Is(err, circuit_breaker.ErrOpenCB):
		return nil, http.StatusServiceUnavailable, errs.ErrUnavailable
	case err != nil && ctx.Err() != nil:
		return nil, http.StatusBadGateway, err
	case err != nil && code >= http.StatusInternalServerError:
		if json.Valid(body) {
			return body, code, nil
		}
		return nil, code, errors.Wrapf(errs.ErrNotJSON, "status %d", code)
	case err != nil:
		s.log.Warn("backend call failed", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return nil, http.StatusBadGateway, err
	}
	if !json.Valid(body) {
		return nil, http.StatusBadGateway, errors.Wrapf(errs.ErrNotJSON, "status %d", code)
	}
	return body, code, nil
}

// callerGaveUp keeps an aborted request out of the breaker's failure count.
func callerGaveUp(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return circuit_breaker.Ignore(err)
	}
	return err
}

func statusErr(code int) error {
	switch {
	case code < http.StatusBadRequest:
		return nil
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return errs.ErrUnauthorized
	case code == http.StatusNotFound:
		return errs.ErrNotFound
	case code == http.StatusUnprocessableEntity:
		return errs.ErrValidation
	default:
		return errs.ErrDefault
	}
}

func pageQuery(q url.Values, page int) url.Values {
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	return q
}

// unwrapData returns the `data` member of an envelope, or raw itself.
func unwrapData(raw []byte) []byte {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return trimmed
	}
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(trimmed, &env); err != nil || len(env.Data) == 0 {
		return trimmed
	}
	return env.Data
}
