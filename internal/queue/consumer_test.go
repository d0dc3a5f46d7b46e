package queue

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/docutrack/internal/config"
	"github.com/iliyamo/docutrack/internal/logger"
	"github.com/iliyamo/docutrack/internal/model"
)

func newTestConsumer(t *testing.T) (*Consumer, string) {
	dir := filepath.Join(t.TempDir(), "logs")
	return NewConsumer(config.QueueConfig{URL: "amqp://127.0.0.1:1/", Queue: "q", EventLogDir: dir}, logger.Noop()), dir
}

func TestHandleMessage_AppendsLines(t *testing.T) {
	c, dir := newTestConsumer(t)

	requested, err := json.Marshal(CertificateEvent{
		Event: EventRequested, RequestID: 4, UserID: 2,
		CertificateType: model.CertificateBirth, Status: model.StatusPending, OccurredAt: "2024-01-01T00:00:00Z",
	})
	require.NoError(t, err)
	changed, err := json.Marshal(CertificateEvent{
		Event: EventStatusChanged, RequestID: 4, Status: model.StatusReady, OccurredAt: "2024-01-02T00:00:00Z",
	})
	require.NoError(t, err)

	require.NoError(t, c.handleMessage(requested))
	require.NoError(t, c.handleMessage(changed))

	b, err := os.ReadFile(filepath.Join(dir, EventLogFile))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "[2024-01-01T00:00:00Z] Certificate requested | request_id=4 | user_id=2 | type=birth | status=pending", lines[0])
	assert.Equal(t, "[2024-01-02T00:00:00Z] Status changed | request_id=4 | status=ready", lines[1])
}

func TestHandleMessage_RejectsBadPayloads(t *testing.T) {
	c, dir := newTestConsumer(t)

	assert.Error(t, c.handleMessage([]byte("{")))
	assert.Error(t, c.handleMessage([]byte(`{"event":"certificate.requested"}`)))

	_, err := os.Stat(filepath.Join(dir, EventLogFile))
	assert.True(t, os.IsNotExist(err))
}

func TestRun_StopsOnCancel(t *testing.T) {
	c, _ := newTestConsumer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- c.Run(ctx) }()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	case <-time.After(5 * time.Second):
		t.Fatal("consumer did not stop after cancellation")
	}
}
