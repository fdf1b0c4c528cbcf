package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"vitals-monitor/internal/store"

	"go.uber.org/zap"
)

// Store 会话存储
type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error
}

// MemoryStore 进程内会话存储（默认）
type MemoryStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]memoryItem
	now      func() time.Time
}

type memoryItem struct {
	data    []byte
	expires time.Time
}

// NewMemoryStore 创建内存会话存储
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:      ttl,
		sessions: make(map[string]memoryItem),
		now:      time.Now,
	}
}

// Get 获取会话（返回副本）
func (m *MemoryStore) Get(ctx context.Context, id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	item, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	if m.ttl > 0 && m.now().After(item.expires) {
		delete(m.sessions, id)
		return nil, ErrNotFound
	}

	var s Session
	if err := json.Unmarshal(item.data, &s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &s, nil
}

// Save 保存会话（刷新过期时间）
func (m *MemoryStore) Save(ctx context.Context, s *Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = memoryItem{data: data, expires: m.now().Add(m.ttl)}
	return nil
}

// Delete 删除会话
func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

// KVStore 基于 KV（Redis）的会话存储，TTL 即会话有效期
type KVStore struct {
	kv        store.KV
	keyPrefix string
	ttl       time.Duration
	logger    *zap.Logger
}

// NewKVStore 创建 KV 会话存储
func NewKVStore(kv store.KV, keyPrefix string, ttl time.Duration, logger *zap.Logger) *KVStore {
	return &KVStore{
		kv:        kv,
		keyPrefix: keyPrefix,
		ttl:       ttl,
		logger:    logger,
	}
}

func (k *KVStore) key(id string) string {
	return k.keyPrefix + id
}

// Get 从 KV 读取会话
func (k *KVStore) Get(ctx context.Context, id string) (*Session, error) {
	val, err := k.kv.Get(ctx, k.key(id))
	if err != nil {
		if errors.Is(err, store.ErrMiss) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var s Session
	if err := json.Unmarshal([]byte(val), &s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &s, nil
}

// Save 写入会话
func (k *KVStore) Save(ctx context.Context, s *Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := k.kv.Set(ctx, k.key(s.ID), string(data), k.ttl); err != nil {
		return fmt.Errorf("failed to set session: %w", err)
	}

	k.logger.Debug("Saved session",
		zap.String("session_id", s.ID),
		zap.String("stage", string(s.Stage)),
		zap.Int("record_count", len(s.Log)),
	)
	return nil
}

// Delete 删除会话
func (k *KVStore) Delete(ctx context.Context, id string) error {
	if err := k.kv.Delete(ctx, k.key(id)); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
