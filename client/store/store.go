package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"

	"github.com/kjeyarn/lending-gateway/client/store/migrations"
)

const (
	stateTableName = `state`

	keyToken      = "token"
	keyLastViewed = "activity_last_viewed"
)

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Question)

type Store struct {
	db  *sqlx.DB
	log *zap.Logger
}

// Open opens the sqlite file at path, creating it and its directory on
// first use, and applies the embedded migrations.
func Open(ctx context.Context, path string, log *zap.Logger) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, errors.Wrap(err, "create state dir")
		}
	}
	db, err := sqlx.ConnectContext(ctx, "sqlite3", fmt.Sprintf("file:%s?_busy_timeout=5000", path))
	if err != nil {
		return nil, errors.Wrap(err, "open sqlite")
	}
	db.SetMaxOpenConns(1)

	goose.SetBaseFS(migrations.MigrationFiles)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect("sqlite3"); err != nil {
		db.Close()
		return nil, err
	}
	if err := goose.UpContext(ctx, db.DB, "."); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "migrate state")
	}

	return &Store{db: db, log: log.Named("store")}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Token(ctx context.Context) (string, error) {
	return s.get(ctx, keyToken)
}

func (s *Store) SetToken(ctx context.Context, token string) error {
	return s.put(ctx, keyToken, token)
}

func (s *Store) DeleteToken(ctx context.Context) error {
	q, args, err := qb.Delete(stateTableName).
		Where(sq.Eq{"key": keyToken}).
		ToSql()
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, q, args...)
	return err
}

// LastViewed returns the zero time when the activity list was never opened.
func (s *Store) LastViewed(ctx context.Context) (time.Time, error) {
	v, err := s.get(ctx, keyLastViewed)
	if err != nil || v == "" {
		return time.Time{}, err
	}
	t, err := time.Parse(time.RFC3339Nano, v)
	if err != nil {
		return time.Time{}, errors.Wrap(err, "parse last viewed")
	}
	return t, nil
}

func (s *Store) SetLastViewed(ctx context.Context, t time.Time) error {
	return s.put(ctx, keyLastViewed, t.UTC().Format(time.RFC3339Nano))
}

func (s *Store) get(ctx context.Context, key string) (string, error) {
	q, args, err := qb.Select("value").
		From(stateTableName).
		Where(sq.Eq{"key": key}).
		ToSql()
	if err != nil {
		return "", err
	}
	var v string
	if err := s.db.GetContext(ctx, &v, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", err
	}
	return v, nil
}

func (s *Store) put(ctx context.Context, key, value string) error {
	q, args, err := qb.Insert(stateTableName).
		Columns("key", "value", "updated_at").
		Values(key, value, sq.Expr("CURRENT_TIMESTAMP")).
		Suffix("ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at").
		ToSql()
	if err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
		s.log.Warn("state write", zap.String("key", key), zap.Error(err))
		return err
	}
	return nil
}
