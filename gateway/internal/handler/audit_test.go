package handler

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/IBM/sarama/mocks"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestActionLog_Log(t *testing.T) {
	producer := mocks.NewAsyncProducer(t, nil)
	producer.ExpectInputWithCheckerFunctionAndSucceed(func(val []byte) error {
		var ev ActionEvent
		if err := json.Unmarshal(val, &ev); err != nil {
			return err
		}
		if ev.Action != "accept-suggestion" || ev.BorrowEventID != 12 {
			return errors.Errorf("unexpected event %+v", ev)
		}
		return nil
	})

	log := NewActionLog(zap.NewNop(), producer, "borrow-actions")
	err := log.Log(ActionEvent{
		ID:            "6c1c2a0e-1b7d-4f7e-9a55-0d3c1f1f2b11",
		BorrowEventID: 12,
		Action:        "accept-suggestion",
		ActorID:       "auth0|lender",
		OccurredAt:    time.Date(2025, time.June, 1, 9, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.NoError(t, producer.Close())
}

func TestNopActionLog(t *testing.T) {
	assert.NoError(t, NewNopActionLog().Log(ActionEvent{Action: "cancel"}))
}
