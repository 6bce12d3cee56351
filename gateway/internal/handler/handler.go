package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kjeyarn/lending-gateway/gateway/config"
	"github.com/kjeyarn/lending-gateway/gateway/internal/dispatch"
	"github.com/kjeyarn/lending-gateway/gateway/internal/errs"
	"github.com/kjeyarn/lending-gateway/gateway/internal/lifecycle"
	"github.com/kjeyarn/lending-gateway/gateway/internal/model"
	"github.com/kjeyarn/lending-gateway/gateway/internal/service/backend"
	"github.com/kjeyarn/lending-gateway/pkg/auth0"
	"github.com/kjeyarn/lending-gateway/pkg/validate"
	_ "github.com/kjeyarn/lending-gateway/swagger"
)

type Options struct {
	ImageBaseURL       string
	AllowedEmailDomain string
	DefaultLocation    *time.Location
	Now                func() time.Time
}

type Handler struct {
	backendSvc BackendService
	dispatcher Dispatcher
	actionLog  ActionLog
	opts       Options
	log        *zap.Logger
}

func New(log *zap.Logger, cfg config.Config, actionLog ActionLog) *Handler { //nolint:gocritic
	svc := backend.NewService(log.Named("backend"), cfg.Backend)
	return NewHandler(log, Options{
		ImageBaseURL:       cfg.Backend.ImageBaseURL,
		AllowedEmailDomain: cfg.Auth0.AllowedEmailDomain,
		DefaultLocation:    cfg.Location(),
	}, svc, dispatch.New(log.Named("dispatch"), svc), actionLog)
}

func NewHandler(log *zap.Logger, opts Options, backendSvc BackendService, dispatcher Dispatcher, actionLog ActionLog) *Handler {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.DefaultLocation == nil {
		opts.DefaultLocation = time.UTC
	}
	return &Handler{
		backendSvc: backendSvc,
		dispatcher: dispatcher,
		actionLog:  actionLog,
		opts:       opts,
		log:        log,
	}
}

func (h *Handler) NewRouter(tv auth0.TokenValidator) *echo.Echo {
	e := echo.New()
	const (
		baseRPS = 10
		apiRPS  = 100
	)
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 4 << 10, // 4 KB
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodOptions, http.MethodHead, http.MethodPost},
		AllowHeaders:     []string{echo.HeaderAuthorization, echo.HeaderContentType, TimezoneHeader},
		AllowCredentials: true,
	}))

	base := e.Group("", newRateLimiterMW(baseRPS))
	base.GET("/manage/health", h.Health)
	base.GET("/swagger/*", echoSwagger.WrapHandler)

	e.Validator = validate.NewCustomValidator()

	api := e.Group("/api/v1",
		middleware.RequestLoggerWithConfig(requestLoggerConfig(h.log)),
		middleware.RequestID(),
		newRateLimiterMW(apiRPS),
		auth0.Middleware(tv, h.opts.AllowedEmailDomain),
	)

	api.GET("/borrow-events", h.GetHistory)
	api.GET("/borrow-events/:id", h.GetBorrowEvent)
	api.POST("/borrow-events/:id/actions/:action", h.Act)

	api.GET("/books/search", h.SearchBooks)
	api.GET("/activities/recent", h.RecentActivity)

	return e
}

func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

// GetBorrowEvent godoc
// @Summary      Borrow event page
// @Description  Returns the event together with the viewer's role, meet-up action and action eligibility.
// @Tags         borrow-events
// @Produce      json
// @Param        id          path    int     true   "borrow event id"
// @Param        X-Timezone  header  string  false  "IANA zone used for calendar-date checks"
// @Success      200  {object}  lifecycle.View
// @Failure      404  {object}  echo.HTTPError
// @Router       /api/v1/borrow-events/{id} [get]
func (h *Handler) GetBorrowEvent(c echo.Context) error {
	viewer, err := viewerOf(c)
	if err != nil {
		return err
	}
	id, err := eventID(c)
	if err != nil {
		return err
	}

	event, code, err := h.backendSvc.GetBorrowEvent(c.Request().Context(), viewer.Token, id)
	if err != nil {
		return backendError(code, err)
	}

	now := lifecycle.InZone(h.opts.Now(), c.Request().Header.Get(TimezoneHeader), h.opts.DefaultLocation)
	return c.JSON(http.StatusOK, lifecycle.BuildView(event, viewer.SubjectID, now, h.opts.ImageBaseURL))
}

// GetHistory godoc
// @Summary      Borrow history
// @Description  Lending and borrowing lists of the viewer, fetched concurrently.
// @Tags         borrow-events
// @Produce      json
// @Param        page  query  int  false  "page"
// @Success      200  {object}  model.HistoryResponse
// @Router       /api/v1/borrow-events [get]
func (h *Handler) GetHistory(c echo.Context) error {
	viewer, err := viewerOf(c)
	if err != nil {
		return err
	}
	page := queryInt(c, "page")

	var res model.HistoryResponse
	gg, ctx := errgroup.WithContext(c.Request().Context())
	gg.Go(func() error {
		events, code, err := h.backendSvc.ListLending(ctx, viewer.Token, page)
		if err != nil {
			return backendError(code, err)
		}
		res.Lending = events
		return nil
	})
	gg.Go(func() error {
		events, code, err := h.backendSvc.ListBorrowing(ctx, viewer.Token, page)
		if err != nil {
			return backendError(code, err)
		}
		res.Borrowing = events
		return nil
	})
	if err := gg.Wait(); err != nil {
		return err
	}
	if res.Lending == nil {
		res.Lending = []model.BorrowEvent{}
	}
	if res.Borrowing == nil {
		res.Borrowing = []model.BorrowEvent{}
	}

	return c.JSON(http.StatusOK, res)
}

// SearchBooks godoc
// @Summary      Book search
// @Tags         books
// @Produce      json
// @Param        q     query  string  false  "query"
// @Param        page  query  int     false  "page"
// @Success      200  {object}  model.SearchBooksResponse
// @Router       /api/v1/books/search [get]
func (h *Handler) SearchBooks(c echo.Context) error {
	viewer, err := viewerOf(c)
	if err != nil {
		return err
	}
	q := strings.TrimSpace(c.QueryParam("q"))
	if q == "" {
		return c.JSON(http.StatusOK, model.SearchBooksResponse{Books: []model.Book{}})
	}

	ctx := c.Request().Context()
	res, code, err := h.backendSvc.SearchBooks(ctx, viewer.Token, q, queryInt(c, "page"))
	if err != nil {
		if errors.Is(ctx.Err(), context.Canceled) {
			h.log.Debug("search aborted by client", zap.String("q", q))
			return c.NoContent(http.StatusNoContent)
		}
		return backendError(code, err)
	}
	return c.JSON(http.StatusOK, res)
}

// RecentActivity godoc
// @Summary      Recent activity
// @Tags         activities
// @Produce      json
// @Success      200  {array}  model.Activity
// @Router       /api/v1/activities/recent [get]
func (h *Handler) RecentActivity(c echo.Context) error {
	viewer, err := viewerOf(c)
	if err != nil {
		return err
	}
	activities, code, err := h.backendSvc.RecentActivity(c.Request().Context(), viewer.Token)
	if err != nil {
		return backendError(code, err)
	}
	return c.JSON(http.StatusOK, activities)
}

// Act godoc
// @Summary      Borrow event action
// @Description  Runs one of cancel, accept-meetup, suggest-meetup, accept-suggestion, return-detail, receive, report.
// @Tags         borrow-events
// @Accept       json
// @Produce      json
// @Param        id      path  int             true  "borrow event id"
// @Param        action  path  string          true  "action name"
// @Param        input   body  dispatch.Input  false "action fields"
// @Success      200  {object}  dispatch.Result
// @Failure      409  {object}  dispatch.Result
// @Failure      422  {object}  dispatch.Result
// @Router       /api/v1/borrow-events/{id}/actions/{action} [post]
func (h *Handler) Act(c echo.Context) error {
	viewer, err := viewerOf(c)
	if err != nil {
		return err
	}
	id, err := eventID(c)
	if err != nil {
		return err
	}
	var in dispatch.Input
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	cmd, err := dispatch.NewCommand(c.Param("action"), in)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}

	res := h.dispatcher.Dispatch(c.Request().Context(), viewer.Token, id, cmd)
	if res.Success {
		ev := ActionEvent{
			ID:            uuid.NewString(),
			BorrowEventID: id,
			Action:        cmd.Action(),
			ActorID:       viewer.SubjectID,
			OccurredAt:    h.opts.Now().UTC(),
		}
		if err := h.actionLog.Log(ev); err != nil {
			h.log.Warn("action log", zap.Error(err), zap.String("action", ev.Action))
		}
	}
	return c.JSON(res.Kind.HTTPStatus(), res)
}

func viewerOf(c echo.Context) (auth0.Viewer, error) {
	viewer, ok := auth0.ViewerFrom(c.Request().Context())
	if !ok {
		return auth0.Viewer{}, echo.NewHTTPError(http.StatusUnauthorized, errs.ErrNoViewer.Error())
	}
	return viewer, nil
}

func eventID(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid borrow event id")
	}
	return id, nil
}

func queryInt(c echo.Context, name string) int {
	v, err := strconv.Atoi(c.QueryParam(name))
	if err != nil {
		return 0
	}
	return v
}

func backendError(code int, err error) error {
	switch {
	case errors.Is(err, errs.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "borrow event not found")
	case errors.Is(err, errs.ErrUnauthorized):
		return echo.NewHTTPError(http.StatusUnauthorized, errs.ErrUnauthorized.Error())
	case errors.Is(err, errs.ErrUnavailable):
		return echo.NewHTTPError(http.StatusServiceUnavailable, errs.ErrUnavailable.Error())
	case errors.Is(err, errs.ErrValidation):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	if code < http.StatusInternalServerError {
		code = http.StatusBadGateway
	}
	return echo.NewHTTPError(code, err.Error())
}
