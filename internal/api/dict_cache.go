package api

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/dachuang-plat/dcctl/internal/client"
	"github.com/dachuang-plat/dcctl/internal/model"
	"github.com/dachuang-plat/dcctl/pkg/retry"
)

// CacheStorage 字典缓存需要的最小存储面。
type CacheStorage interface {
	Get(key string) (string, error)
	Set(key, value string) error
}

const (
	dictCacheKey   = "dict_cache"
	dictCacheAtKey = "dict_cache_at"
)

// DictCache 全量字典的本地缓存。字典变更频率很低，表单和 CLI
// 反复用到，过了 TTL 才回源。回源是幂等读，允许网络抖动重试。
type DictCache struct {
	mu      sync.Mutex
	dicts   *Dictionaries
	storage CacheStorage
	ttl     time.Duration
}

func NewDictCache(dicts *Dictionaries, storage CacheStorage, ttl time.Duration) *DictCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &DictCache{dicts: dicts, storage: storage, ttl: ttl}
}

// All 返回全部字典，优先走本地缓存。
func (c *DictCache) All(ctx context.Context) (map[string]model.DictionaryType, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if dicts, ok := c.cached(); ok {
		return dicts, nil
	}

	dicts, err := c.fetch(ctx)
	if err != nil {
		return nil, err
	}
	c.store(dicts)
	return dicts, nil
}

// Invalidate 丢弃缓存，下次 All 强制回源。
func (c *DictCache) Invalidate() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.storage.Set(dictCacheAtKey, "")
}

func (c *DictCache) cached() (map[string]model.DictionaryType, bool) {
	at, err := c.storage.Get(dictCacheAtKey)
	if err != nil || at == "" {
		return nil, false
	}
	fetchedAt, err := time.Parse(time.RFC3339, at)
	if err != nil || time.Since(fetchedAt) > c.ttl {
		return nil, false
	}
	raw, err := c.storage.Get(dictCacheKey)
	if err != nil || raw == "" {
		return nil, false
	}
	var dicts map[string]model.DictionaryType
	if err := json.Unmarshal([]byte(raw), &dicts); err != nil {
		return nil, false
	}
	return dicts, true
}

func (c *DictCache) fetch(ctx context.Context) (map[string]model.DictionaryType, error) {
	env, err := c.dicts.client.SendWithRetry(ctx, &client.Request{
		URL: "/dictionaries/types/all/",
	},
		retry.WithMaxAttempts(3),
		retry.WithBackoff(retry.Jittered(retry.Exponential(500*time.Millisecond, 5*time.Second))),
	)
	if err != nil {
		return nil, err
	}
	if err := env.Err(); err != nil {
		return nil, err
	}
	var dicts map[string]model.DictionaryType
	if err := env.Bind(&dicts); err != nil {
		return nil, err
	}
	return dicts, nil
}

// store 缓存写失败不影响本次结果，忽略即可。
func (c *DictCache) store(dicts map[string]model.DictionaryType) {
	raw, err := json.Marshal(dicts)
	if err != nil {
		return
	}
	if err := c.storage.Set(dictCacheKey, string(raw)); err != nil {
		return
	}
	_ = c.storage.Set(dictCacheAtKey, time.Now().Format(time.RFC3339))
}
