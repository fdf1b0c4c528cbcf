package mqtt

import (
	"context"
	"errors"
	"testing"
	"time"

	"vitals-monitor/internal/config"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewClient_UnreachableBroker(t *testing.T) {
	cfg := &config.MQTTConfig{
		Broker:   "tcp://127.0.0.1:1",
		ClientID: "vitals-monitor-test",
		Topic:    "vitals/alerts",
	}

	client, err := NewClient(cfg, zap.NewNop())
	assert.Error(t, err)
	assert.Nil(t, client)
	assert.Contains(t, err.Error(), "failed to connect to MQTT broker")
}

// pendingToken 一直未完成的发布 token（例如断线重连期间）
type pendingToken struct {
	mqtt.Token
	done chan struct{}
	err  error
}

func (t *pendingToken) Done() <-chan struct{} { return t.done }
func (t *pendingToken) Error() error          { return t.err }

type stubPaho struct {
	mqtt.Client
	token *pendingToken
}

func (s *stubPaho) Publish(string, byte, bool, interface{}) mqtt.Token { return s.token }

func TestPublish_ContextDeadline(t *testing.T) {
	c := &Client{client: &stubPaho{token: &pendingToken{done: make(chan struct{})}}, logger: zap.NewNop()}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := c.Publish(ctx, "vitals/alerts", 1, false, []byte(`{}`))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Contains(t, err.Error(), "not acknowledged")
}

func TestPublish_TokenResult(t *testing.T) {
	done := make(chan struct{})
	close(done)

	ok := &Client{client: &stubPaho{token: &pendingToken{done: done}}, logger: zap.NewNop()}
	assert.NoError(t, ok.Publish(context.Background(), "vitals/alerts", 1, false, []byte(`{}`)))

	failed := &Client{client: &stubPaho{token: &pendingToken{done: done, err: errors.New("not connected")}}, logger: zap.NewNop()}
	err := failed.Publish(context.Background(), "vitals/alerts", 1, false, []byte(`{}`))
	assert.ErrorContains(t, err, "failed to publish to topic vitals/alerts")
}
