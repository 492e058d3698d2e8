package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/reference-data-service/internal/config"
	"github.com/spec-kit/reference-data-service/internal/events"
)

type fakePublisher struct {
	channel  string
	payloads [][]byte
	err      error
}

func (f *fakePublisher) Publish(ctx context.Context, channel string, payload []byte) error {
	if _, ok := ctx.Deadline(); !ok {
		return errors.New("publish without deadline")
	}
	f.channel = channel
	f.payloads = append(f.payloads, payload)
	return f.err
}

func TestNotificationServicePublishesDepartmentEvents(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	pub := &fakePublisher{}
	NewNotificationService(dispatcher, pub, zap.NewNop(), config.NotificationConfig{Channel: "department-events"}).RegisterHandlers()

	event := events.NewEvent(events.EventDepartmentUpdated, 3, events.DepartmentUpdatedPayload{OldName: "A", NewName: "B"})
	require.NoError(t, dispatcher.Publish(context.Background(), event))

	assert.Equal(t, "department-events", pub.channel)
	require.Len(t, pub.payloads, 1)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(pub.payloads[0], &decoded))
	assert.Equal(t, "department_updated", decoded["type"])
	assert.EqualValues(t, 3, decoded["department_id"])
	assert.Equal(t, map[string]any{"old_name": "A", "new_name": "B"}, decoded["payload"])
}

func TestNotificationServiceReportsPublishFailure(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	pub := &fakePublisher{err: errors.New("redis down")}
	NewNotificationService(dispatcher, pub, zap.NewNop(), config.NotificationConfig{Channel: "c"}).RegisterHandlers()

	err := dispatcher.Publish(context.Background(), events.NewEvent(events.EventDepartmentDeleted, 1, nil))
	assert.ErrorContains(t, err, "redis down")
}

func TestNotificationServiceWithoutPublisher(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	NewNotificationService(dispatcher, nil, zap.NewNop(), config.NotificationConfig{Channel: "c"}).RegisterHandlers()

	assert.NoError(t, dispatcher.Publish(context.Background(), events.NewEvent(events.EventDepartmentCreated, 1, nil)))
}
