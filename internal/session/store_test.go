package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"vitals-monitor/internal/models"
	"vitals-monitor/internal/store"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeKV 仅用于单元测试（内存 KV）
type fakeKV struct {
	mu   sync.Mutex
	data map[string]string
}

func newFakeKV() *fakeKV { return &fakeKV{data: map[string]string{}} }

func (f *fakeKV) Get(ctx context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.data[key]
	if !ok {
		return "", store.ErrMiss
	}
	return v, nil
}

func (f *fakeKV) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = value
	return nil
}

func (f *fakeKV) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.data, key)
	return nil
}

func roundTrip(t *testing.T, st Store) {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	s := New(models.Subject{Name: "Jane", Email: "jane@example.com"}, now)
	require.NoError(t, s.Record(testRecord("r1", models.StatusWarning), Notice{}, now))
	require.NoError(t, st.Save(ctx, s))

	got, err := st.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, s.ID, got.ID)
	assert.Equal(t, s.Subject, got.Subject)
	assert.Equal(t, StageReview, got.Stage)
	require.Len(t, got.Log, 1)
	assert.Equal(t, "r1", got.Log[0].RecordID)
	assert.Equal(t, models.StatusWarning, got.Log[0].Status)

	// the stored copy is independent of the caller's session
	got.Log = append(got.Log, testRecord("r2", models.StatusNormal))
	again, err := st.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Len(t, again.Log, 1)

	require.NoError(t, st.Delete(ctx, s.ID))
	_, err = st.Get(ctx, s.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_RoundTrip(t *testing.T) {
	roundTrip(t, NewMemoryStore(time.Hour))
}

func TestMemoryStore_Expires(t *testing.T) {
	st := NewMemoryStore(time.Minute)
	now := time.Now()
	st.now = func() time.Time { return now }

	s := New(models.Subject{Email: "jane@example.com"}, now)
	require.NoError(t, st.Save(context.Background(), s))

	st.now = func() time.Time { return now.Add(2 * time.Minute) }
	_, err := st.Get(context.Background(), s.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestKVStore_RoundTripFake(t *testing.T) {
	kv := newFakeKV()
	st := NewKVStore(kv, "vitals:session:", time.Hour, zap.NewNop())
	roundTrip(t, st)
}

func TestKVStore_UsesKeyPrefix(t *testing.T) {
	kv := newFakeKV()
	st := NewKVStore(kv, "vitals:session:", time.Hour, zap.NewNop())

	s := New(models.Subject{Email: "jane@example.com"}, time.Now())
	require.NoError(t, st.Save(context.Background(), s))

	_, ok := kv.data["vitals:session:"+s.ID]
	assert.True(t, ok)
}

func TestKVStore_CorruptPayload(t *testing.T) {
	kv := newFakeKV()
	kv.data["vitals:session:bad"] = "{not json"
	st := NewKVStore(kv, "vitals:session:", time.Hour, zap.NewNop())

	_, err := st.Get(context.Background(), "bad")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to unmarshal session")
}

func TestKVStore_Redis(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	st := NewKVStore(store.NewRedisKV(client), "vitals:session:", time.Hour, zap.NewNop())
	roundTrip(t, st)

	s := New(models.Subject{Email: "jane@example.com"}, time.Now())
	require.NoError(t, st.Save(context.Background(), s))
	assert.Equal(t, time.Hour, mr.TTL("vitals:session:"+s.ID))

	mr.FastForward(2 * time.Hour)
	_, err := st.Get(context.Background(), s.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
