package handler

import (
	"context"

	"github.com/kjeyarn/lending-gateway/gateway/internal/dispatch"
	"github.com/kjeyarn/lending-gateway/gateway/internal/model"
	"github.com/kjeyarn/lending-gateway/gateway/internal/service/backend"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

var (
	_ BackendService = (*backend.Service)(nil)
	_ Dispatcher     = (*dispatch.Dispatcher)(nil)
)

type BackendService interface {
	GetBorrowEvent(ctx context.Context, token string, id int) (model.BorrowEvent, int, error)
	ListLending(ctx context.Context, token string, page int) ([]model.BorrowEvent, int, error)
	ListBorrowing(ctx context.Context, token string, page int) ([]model.BorrowEvent, int, error)
	SearchBooks(ctx context.Context, token, query string, page int) (model.SearchBooksResponse, int, error)
	RecentActivity(ctx context.Context, token string) ([]model.Activity, int, error)
}

type Dispatcher interface {
	Dispatch(ctx context.Context, token string, eventID int, cmd dispatch.Command) dispatch.Result
}

type ActionLog interface {
	Log(ev ActionEvent) error
}
