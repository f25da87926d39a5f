package cache

import (
	"fmt"

	"github.com/dgraph-io/ristretto"
)

// ScoreCache 手牌评分的本地缓存，多个 worker 共享
// ristretto 的写入是异步且可能被拒绝的，调用方只能把它当作尽力而为的缓存
type ScoreCache struct {
	cache *ristretto.Cache
}

// NewScoreCache maxEntries: 最多缓存的手牌数，每条记录成本记为 1
func NewScoreCache(maxEntries int64) (*ScoreCache, error) {
	if maxEntries <= 0 {
		return nil, fmt.Errorf("score cache size must be positive, got %d", maxEntries)
	}
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: maxEntries * 10, // 官方建议计数器为条目数的 10 倍
		MaxCost:     maxEntries,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("创建 ristretto 缓存失败: %w", err)
	}
	return &ScoreCache{cache: c}, nil
}

func (c *ScoreCache) Get(key string) (int, bool) {
	v, ok := c.cache.Get(key)
	if !ok {
		return 0, false
	}
	score, ok := v.(int)
	return score, ok
}

func (c *ScoreCache) Set(key string, score int) bool {
	return c.cache.Set(key, score, 1)
}

// Wait 等待缓冲区中的写入生效
func (c *ScoreCache) Wait() {
	c.cache.Wait()
}

func (c *ScoreCache) Close() {
	c.cache.Close()
}
