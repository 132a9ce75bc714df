package testutil

import (
	"context"
	"errors"
	"time"
)

type MockRedisClient struct {
	ExistFunc    func(ctx context.Context, key string) (bool, error)
	DelFunc      func(ctx context.Context, key ...string) error
	KeysFunc     func(ctx context.Context, pattern string) ([]string, error)
	ExpireFunc   func(ctx context.Context, key string, ttl time.Duration) error
	SAddFunc     func(ctx context.Context, key string, members ...string) error
	SRemFunc     func(ctx context.Context, key string, members ...string) error
	SMembersFunc func(ctx context.Context, key string) ([]string, error)
	SCardFunc    func(ctx context.Context, key string) (uint64, error)
	SetFunc      func(ctx context.Context, key, value string) error
	SetObjFunc   func(ctx context.Context, key string, obj any, ttl time.Duration) error
	GetFunc      func(ctx context.Context, key string) (string, error)
	GetObjFunc   func(ctx context.Context, key string, v any) error
}

func (m *MockRedisClient) Exist(ctx context.Context, key string) (bool, error) {
	if m.ExistFunc != nil {
		return m.ExistFunc(ctx, key)
	}

	return false, nil
}

func (m *MockRedisClient) Del(ctx context.Context, key ...string) error {
	if m.DelFunc != nil {
		return m.DelFunc(ctx, key...)
	}

	return nil
}

func (m *MockRedisClient) Keys(ctx context.Context, pattern string) ([]string, error) {
	if m.KeysFunc != nil {
		return m.KeysFunc(ctx, pattern)
	}

	return nil, nil
}

func (m *MockRedisClient) Expire(ctx context.Context, key string, ttl time.Duration) error {
	if m.ExpireFunc != nil {
		return m.ExpireFunc(ctx, key, ttl)
	}

	return nil
}

func (m *MockRedisClient) SAdd(ctx context.Context, key string, members ...string) error {
	if m.SAddFunc != nil {
		return m.SAddFunc(ctx, key, members...)
	}

	return nil
}

func (m *MockRedisClient) SRem(ctx context.Context, key string, members ...string) error {
	if m.SRemFunc != nil {
		return m.SRemFunc(ctx, key, members...)
	}

	return nil
}

func (m *MockRedisClient) SMembers(ctx context.Context, key string) ([]string, error) {
	if m.SMembersFunc != nil {
		return m.SMembersFunc(ctx, key)
	}

	return nil, nil
}

func (m *MockRedisClient) SCard(ctx context.Context, key string) (uint64, error) {
	if m.SCardFunc != nil {
		return m.SCardFunc(ctx, key)
	}

	return 0, nil
}

func (m *MockRedisClient) Set(ctx context.Context, key, value string) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value)
	}

	return nil
}

func (m *MockRedisClient) SetObj(ctx context.Context, key string, obj any, ttl time.Duration) error {
	if m.SetObjFunc != nil {
		return m.SetObjFunc(ctx, key, obj, ttl)
	}

	return nil
}

func (m *MockRedisClient) Get(ctx context.Context, key string) (string, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}

	return "", nil
}

func (m *MockRedisClient) GetObj(ctx context.Context, key string, v any) error {
	if m.GetObjFunc != nil {
		return m.GetObjFunc(ctx, key, v)
	}

	return errors.New("not found")
}

// InMemoryRedisClient backs the set commands with a plain map. It is enough
// for exercising the availability cache without a real server.
type InMemoryRedisClient struct {
	MockRedisClient

	sets map[string]map[string]struct{}
}

func NewInMemoryRedisClient() *InMemoryRedisClient {
	return &InMemoryRedisClient{sets: make(map[string]map[string]struct{})}
}

func (m *InMemoryRedisClient) Exist(ctx context.Context, key string) (bool, error) {
	_, ok := m.sets[key]
	return ok, nil
}

func (m *InMemoryRedisClient) Del(ctx context.Context, key ...string) error {
	for _, k := range key {
		delete(m.sets, k)
	}

	return nil
}

func (m *InMemoryRedisClient) SAdd(ctx context.Context, key string, members ...string) error {
	set, ok := m.sets[key]
	if !ok {
		set = make(map[string]struct{})
		m.sets[key] = set
	}

	for _, member := range members {
		set[member] = struct{}{}
	}

	return nil
}

func (m *InMemoryRedisClient) SRem(ctx context.Context, key string, members ...string) error {
	set, ok := m.sets[key]
	if !ok {
		return nil
	}

	for _, member := range members {
		delete(set, member)
	}

	return nil
}

func (m *InMemoryRedisClient) SMembers(ctx context.Context, key string) ([]string, error) {
	var members []string
	for member := range m.sets[key] {
		members = append(members, member)
	}

	return members, nil
}

func (m *InMemoryRedisClient) SCard(ctx context.Context, key string) (uint64, error) {
	return uint64(len(m.sets[key])), nil
}
