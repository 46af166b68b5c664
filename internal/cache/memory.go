package cache

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"lotto-bot/internal/logger"
)

// memoryItem 内存缓存项
type memoryItem struct {
	value     interface{}
	expiresAt time.Time
	createdAt time.Time
}

// isExpired 检查是否过期
func (item *memoryItem) isExpired() bool {
	return time.Now().After(item.expiresAt)
}

// MemoryCache 内存缓存实现
type MemoryCache struct {
	mu      sync.RWMutex
	items   map[string]*memoryItem
	maxSize int
}

// NewMemoryCache 创建新的内存缓存
func NewMemoryCache(maxSize int) *MemoryCache {
	cache := &MemoryCache{
		items:   make(map[string]*memoryItem),
		maxSize: maxSize,
	}

	// 启动清理协程
	go cache.startCleanup()

	logger.Info("Memory cache initialized")
	return cache
}

// Set 设置缓存值
func (m *MemoryCache) Set(key string, value interface{}, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.items[key]; !exists && len(m.items) >= m.maxSize {
		m.evictOldestLocked()
	}

	m.items[key] = &memoryItem{
		value:     value,
		expiresAt: time.Now().Add(ttl),
		createdAt: time.Now(),
	}
	return nil
}

// Get 获取缓存值，通过JSON序列化复制数据避免引用问题
func (m *MemoryCache) Get(key string, dest interface{}) error {
	m.mu.RLock()
	item, exists := m.items[key]
	m.mu.RUnlock()

	if !exists {
		return fmt.Errorf("cache miss: %s", key)
	}
	if item.isExpired() {
		m.Delete(key)
		return fmt.Errorf("cache expired: %s", key)
	}

	data, err := json.Marshal(item.value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %v", err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("failed to unmarshal cache value: %v", err)
	}

	return nil
}

// Delete 删除缓存
func (m *MemoryCache) Delete(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
}

// DeletePattern 删除匹配模式的缓存（支持末尾*前缀匹配）
func (m *MemoryCache) DeletePattern(pattern string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	count := 0
	for key := range m.items {
		if matchPattern(pattern, key) {
			delete(m.items, key)
			count++
		}
	}

	if count > 0 {
		logger.Debugf("Memory cache deleted by pattern: %s, count: %d", pattern, count)
	}
}

// Size 获取缓存大小
func (m *MemoryCache) Size() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}

// Stats 获取缓存统计信息
func (m *MemoryCache) Stats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var validItems, expiredItems int
	for _, item := range m.items {
		if item.isExpired() {
			expiredItems++
		} else {
			validItems++
		}
	}

	return map[string]interface{}{
		"total_size":    len(m.items),
		"valid_items":   validItems,
		"expired_items": expiredItems,
		"max_size":      m.maxSize,
	}
}

// startCleanup 启动定期清理过期缓存
func (m *MemoryCache) startCleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		m.cleanupExpired()
	}
}

// cleanupExpired 清理过期的缓存项
func (m *MemoryCache) cleanupExpired() {
	m.mu.Lock()
	defer m.mu.Unlock()

	count := 0
	for key, item := range m.items {
		if item.isExpired() {
			delete(m.items, key)
			count++
		}
	}

	if count > 0 {
		logger.Debugf("Memory cache cleanup: removed %d expired items", count)
	}
}

// evictOldestLocked 淘汰最旧的缓存项，调用方需持有写锁
func (m *MemoryCache) evictOldestLocked() {
	var oldestKey string
	var oldestTime time.Time

	for key, item := range m.items {
		if oldestKey == "" || item.createdAt.Before(oldestTime) {
			oldestKey = key
			oldestTime = item.createdAt
		}
	}

	if oldestKey != "" {
		delete(m.items, oldestKey)
	}
}

// matchPattern 简单的模式匹配：支持末尾*通配符
func matchPattern(pattern, str string) bool {
	if pattern == "*" {
		return true
	}
	if strings.HasSuffix(pattern, "*") {
		return strings.HasPrefix(str, pattern[:len(pattern)-1])
	}
	return pattern == str
}
