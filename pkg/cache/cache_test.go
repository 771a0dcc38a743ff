package cache_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/yeisme/artvault/pkg/cache"
)

// galleryEntry 测试用的画廊条目结构体.
type galleryEntry struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Thumb string `json:"thumb"`
}

// mockKVStore 模拟KV存储实现.
type mockKVStore struct {
	data map[string][]byte
}

func newMockKVStore() *mockKVStore {
	return &mockKVStore{
		data: make(map[string][]byte),
	}
}

func (m *mockKVStore) Get(ctx context.Context, key string) ([]byte, error) {
	if value, exists := m.data[key]; exists {
		return value, nil
	}

	return nil, fmt.Errorf("key not found")
}

func (m *mockKVStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.data[key] = value
	return nil
}

func (m *mockKVStore) Delete(ctx context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func (m *mockKVStore) Exists(ctx context.Context, key string) (bool, error) {
	_, exists := m.data[key]
	return exists, nil
}

func (m *mockKVStore) Keys(ctx context.Context, pattern string) ([]string, error) {
	keys := make([]string, 0, len(m.data))
	for key := range m.data {
		keys = append(keys, key)
	}

	return keys, nil
}

func (m *mockKVStore) Close() error {
	return nil
}

// TestCache_SetGet 测试 Set/Get 方法.
func TestCache_SetGet(t *testing.T) {
	mockStore := newMockKVStore()
	c := cache.NewCache(mockStore)
	ctx := context.Background()

	// 获取不存在的键
	if _, err := cache.Get[galleryEntry](ctx, c, "nonexistent"); err == nil {
		t.Error("Expected error for nonexistent key")
	}

	entry := galleryEntry{ID: "01ARZ", Title: "sunset", Thumb: "thumbs/01ARZ.jpg"}

	if err := cache.Set(ctx, c, "item:01ARZ", entry, 0); err != nil {
		t.Fatalf("Failed to set cache: %v", err)
	}

	got, err := cache.Get[galleryEntry](ctx, c, "item:01ARZ")
	if err != nil {
		t.Fatalf("Failed to get cache: %v", err)
	}

	if got != entry {
		t.Errorf("Retrieved entry %+v does not match original %+v", got, entry)
	}
}

// TestCache_DeleteExists 测试 Delete 和 Exists 方法.
func TestCache_DeleteExists(t *testing.T) {
	mockStore := newMockKVStore()
	c := cache.NewCache(mockStore)
	ctx := context.Background()

	entry := galleryEntry{ID: "01BCD", Title: "portrait"}

	if err := cache.Set(ctx, c, "item:01BCD", entry, 0); err != nil {
		t.Fatalf("Failed to set cache: %v", err)
	}

	exists, err := c.Exists(ctx, "item:01BCD")
	if err != nil {
		t.Fatalf("Failed to check existence: %v", err)
	}

	if !exists {
		t.Error("Key should exist before deletion")
	}

	if err := c.Delete(ctx, "item:01BCD"); err != nil {
		t.Fatalf("Failed to delete cache: %v", err)
	}

	exists, err = c.Exists(ctx, "item:01BCD")
	if err != nil {
		t.Fatalf("Failed to check existence after deletion: %v", err)
	}

	if exists {
		t.Error("Key should not exist after deletion")
	}
}

// TestGetOrSet 测试 GetOrSet 方法.
func TestGetOrSet(t *testing.T) {
	mockStore := newMockKVStore()
	c := cache.NewCache(mockStore)
	ctx := context.Background()

	callCount := 0
	getter := func() ([]galleryEntry, error) {
		callCount++
		return []galleryEntry{{ID: "01EFG", Title: "landscape"}}, nil
	}

	// 第一次调用，应该调用getter
	page1, err := cache.GetOrSet(ctx, c, "gallery:p1", getter, time.Minute)
	if err != nil {
		t.Fatalf("Failed to get or set: %v", err)
	}

	if callCount != 1 {
		t.Errorf("Expected getter to be called once, got %d", callCount)
	}

	// 第二次调用，应该从缓存获取
	page2, err := cache.GetOrSet(ctx, c, "gallery:p1", getter, time.Minute)
	if err != nil {
		t.Fatalf("Failed to get or set: %v", err)
	}

	if callCount != 1 {
		t.Errorf("Expected getter to be called only once, got %d", callCount)
	}

	if len(page1) != len(page2) || page1[0] != page2[0] {
		t.Errorf("Results don't match: %+v vs %+v", page1, page2)
	}
}

// TestGetOrSet_GetterError 测试 GetOrSet 方法中 getter 返回错误的情况.
func TestGetOrSet_GetterError(t *testing.T) {
	mockStore := newMockKVStore()
	c := cache.NewCache(mockStore)
	ctx := context.Background()

	getter := func() (galleryEntry, error) {
		return galleryEntry{}, errors.New("getter error")
	}

	_, err := cache.GetOrSet(ctx, c, "item:error", getter, 0)
	if err == nil {
		t.Error("Expected error from getter")
	}

	if err.Error() != "getter error" {
		t.Errorf("Expected 'getter error', got '%s'", err.Error())
	}
}

// TestCache_Clear 测试 Clear 方法.
func TestCache_Clear(t *testing.T) {
	mockStore := newMockKVStore()
	c := cache.NewCache(mockStore)
	ctx := context.Background()

	entries := []galleryEntry{
		{ID: "01AAA", Title: "one"},
		{ID: "01BBB", Title: "two"},
		{ID: "01CCC", Title: "three"},
	}

	for i, entry := range entries {
		key := fmt.Sprintf("item:%s", entry.ID)
		if err := cache.Set(ctx, c, key, entry, 0); err != nil {
			t.Fatalf("Failed to set cache for entry %d: %v", i, err)
		}
	}

	if len(mockStore.data) != len(entries) {
		t.Errorf("Expected %d items, got %d", len(entries), len(mockStore.data))
	}

	if err := c.Clear(ctx); err != nil {
		t.Fatalf("Failed to clear cache: %v", err)
	}

	if len(mockStore.data) != 0 {
		t.Errorf("Expected 0 items after clear, got %d", len(mockStore.data))
	}
}
