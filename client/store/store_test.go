package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kjeyarn/lending-gateway/client/activity"
)

var _ activity.LastViewedStore = (*Store)(nil)

func openTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "state", "kjeyarn.db")
	s, err := Open(context.Background(), path, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s, path
}

func TestStore_Token(t *testing.T) {
	ctx := context.Background()
	s, _ := openTestStore(t)

	tok, err := s.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, tok)

	require.NoError(t, s.SetToken(ctx, "first"))
	require.NoError(t, s.SetToken(ctx, "second"))
	tok, err = s.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "second", tok)

	require.NoError(t, s.DeleteToken(ctx))
	tok, err = s.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, tok)
}

func TestStore_LastViewed(t *testing.T) {
	ctx := context.Background()
	s, path := openTestStore(t)

	lv, err := s.LastViewed(ctx)
	require.NoError(t, err)
	assert.True(t, lv.IsZero())

	at := time.Date(2025, time.June, 1, 9, 30, 15, 123000000, time.FixedZone("WIB", 7*3600))
	require.NoError(t, s.SetLastViewed(ctx, at))
	require.NoError(t, s.Close())

	reopened, err := Open(ctx, path, zap.NewNop())
	require.NoError(t, err)
	defer reopened.Close()

	lv, err = reopened.LastViewed(ctx)
	require.NoError(t, err)
	assert.True(t, at.Equal(lv))
}
