package model

import (
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"
)

var borrowEventKeys = []string{
	"lender_borrow_event",
	"lender_borrow_events",
	"borrower_borrow_event",
	"borrower_borrow_events",
}

// NormalizeBorrowEvents turns any of the list shapes the backend produces
// into one ordered slice: a bare array, a single event object, an envelope
// with `data`, or an object keyed by lender_/borrower_borrow_event(s) where
// each value is an object or an array.
func NormalizeBorrowEvents(raw json.RawMessage) ([]BorrowEvent, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return []BorrowEvent{}, nil
	}
	switch raw[0] {
	case '[':
		var events []BorrowEvent
		if err := json.Unmarshal(raw, &events); err != nil {
			return nil, errors.Wrap(err, "decode borrow event list")
		}
		return events, nil
	case '{':
	default:
		return nil, errors.New("borrow events: unexpected JSON shape")
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, errors.Wrap(err, "decode borrow event object")
	}

	events := make([]BorrowEvent, 0)
	matched := false
	for _, key := range borrowEventKeys {
		v, ok := obj[key]
		if !ok {
			continue
		}
		matched = true
		part, err := NormalizeBorrowEvents(v)
		if err != nil {
			return nil, errors.Wrap(err, key)
		}
		events = append(events, part...)
	}
	if matched {
		return events, nil
	}
	if data, ok := obj["data"]; ok {
		return NormalizeBorrowEvents(data)
	}
	if _, ok := obj["id"]; ok {
		var single BorrowEvent
		if err := json.Unmarshal(raw, &single); err != nil {
			return nil, errors.Wrap(err, "decode borrow event")
		}
		return []BorrowEvent{single}, nil
	}
	return events, nil
}
