// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/taibuivan/tabletop/internal/core/session"
	sessionmock "github.com/taibuivan/tabletop/internal/core/session/mock"
	"github.com/taibuivan/tabletop/internal/platform/apperr"
	"github.com/taibuivan/tabletop/internal/platform/broadcast"
	"github.com/taibuivan/tabletop/pkg/optional"
	"github.com/taibuivan/tabletop/pkg/pointer"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

type fixture struct {
	service   *session.Service
	repo      *sessionmock.MockRepository
	publisher *sessionmock.MockPublisher
	recorder  *sessionmock.MockPublishRecorder
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)
	fx := fixture{
		repo:      sessionmock.NewMockRepository(ctrl),
		publisher: sessionmock.NewMockPublisher(ctrl),
		recorder:  sessionmock.NewMockPublishRecorder(ctrl),
	}
	fx.service = session.NewService(fx.repo, fx.publisher, fx.recorder, discard)
	return fx
}

func TestCreateSession_StartsLoading(t *testing.T) {
	fx := newFixture(t)

	fx.repo.EXPECT().Create(gomock.Any(), session.Session{Title: "Night one", Mode: session.LoadingMode{}}).
		Return(&session.Session{ID: 1, Title: "Night one", Mode: session.LoadingMode{}}, nil)

	created, err := fx.service.CreateSession(context.Background(), session.CreateInput{Title: " Night one "})

	require.NoError(t, err)
	assert.Equal(t, session.ModeLoading, created.Mode.Name())
}

func TestUpdateSession_PublishesAfterStoring(t *testing.T) {
	fx := newFixture(t)
	stored := &session.Session{ID: 4, Title: "t", Mode: session.CombatMode{CombatID: 9}}

	gomock.InOrder(
		fx.repo.EXPECT().Update(gomock.Any(), int64(4), session.Change{Mode: session.CombatMode{CombatID: 9}}).Return(stored, nil),
		fx.publisher.EXPECT().Publish(gomock.Any(), broadcast.Event{Type: session.EventUpdated, SessionID: 4, Payload: stored}).Return(int64(2), nil),
		fx.recorder.EXPECT().RecordPublish(nil),
	)

	updated, err := fx.service.UpdateSession(context.Background(), 4, session.UpdateInput{
		Mode:     pointer.To(session.ModeCombat),
		CombatID: pointer.To(int64(9)),
	})

	require.NoError(t, err)
	assert.Equal(t, stored, updated)
}

func TestUpdateSession_PublishFailureIsNotAnError(t *testing.T) {
	fx := newFixture(t)
	broken := errors.New("redis down")

	fx.repo.EXPECT().Update(gomock.Any(), int64(4), gomock.Any()).
		Return(&session.Session{ID: 4, Mode: session.LoadingMode{}}, nil)
	fx.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(int64(0), broken)
	fx.recorder.EXPECT().RecordPublish(broken)

	_, err := fx.service.UpdateSession(context.Background(), 4, session.UpdateInput{MessageID: optional.Null[int64]()})

	assert.NoError(t, err)
}

func TestUpdateSession_RejectsReferencesWithoutMode(t *testing.T) {
	fx := newFixture(t)

	_, err := fx.service.UpdateSession(context.Background(), 4, session.UpdateInput{ImageID: pointer.To(int64(2))})

	assert.Equal(t, []string{session.FieldImageID}, fields(err))
}

func TestUpdateSession_NothingPublishedOnFailure(t *testing.T) {
	fx := newFixture(t)

	fx.repo.EXPECT().Update(gomock.Any(), int64(4), gomock.Any()).Return(nil, apperr.NotFound(session.ResourceSession))

	_, err := fx.service.UpdateSession(context.Background(), 4, session.UpdateInput{Title: pointer.To("x")})

	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
}

func TestUpdateSession_ReachesRedisSubscribers(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := sessionmock.NewMockRepository(ctrl)

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	ctx := context.Background()
	subscription := client.Subscribe(ctx, broadcast.Channel(6))
	defer subscription.Close()
	_, err := subscription.Receive(ctx)
	require.NoError(t, err)

	service := session.NewService(repo, broadcast.NewPublisher(client), nil, discard)
	repo.EXPECT().Update(gomock.Any(), int64(6), gomock.Any()).
		Return(&session.Session{ID: 6, Title: "t", Mode: session.MapMode{ImageID: 2}}, nil)

	_, err = service.UpdateSession(ctx, 6, session.UpdateInput{Mode: pointer.To(session.ModeMap), ImageID: pointer.To(int64(2))})
	require.NoError(t, err)

	select {
	case message := <-subscription.Channel():
		var event struct {
			Type    string         `json:"type"`
			Payload map[string]any `json:"payload"`
		}
		require.NoError(t, json.Unmarshal([]byte(message.Payload), &event))
		assert.Equal(t, session.EventUpdated, event.Type)
		assert.Equal(t, "map", event.Payload["mode"])
		assert.EqualValues(t, 2, event.Payload["image_id"])
	case <-time.After(2 * time.Second):
		t.Fatal("no message received")
	}
}
