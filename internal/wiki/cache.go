package wiki

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"terminal-terrace/wiki-service/internal/dto"
	pkgDatabase "terminal-terrace/wiki-service/pkg/database"
)

// 缓存键布局
// 列表键按 include_dead 拆开，两个视图互不污染
const (
	cacheKeyArticle      = "wiki:article:%d"
	cacheKeyArticlesLive = "wiki:articles:all:live"
	cacheKeyArticlesDead = "wiki:articles:all:dead"
	cacheKeyRevisions    = "wiki:revisions:%d:%d"

	cacheTTL = 30 * time.Minute
)

// WikiCache 旁路缓存策略
// redis 句柄可为 nil（测试、启动时 Redis 不可用），
// 所有读写失败一律吞掉，调用方回落到数据库
type WikiCache struct {
	redis *pkgDatabase.RedisClient
}

func NewWikiCache(redis *pkgDatabase.RedisClient) *WikiCache {
	return &WikiCache{redis: redis}
}

func articleListKey(includeDead bool) string {
	if includeDead {
		return cacheKeyArticlesDead
	}
	return cacheKeyArticlesLive
}

// GetArticle 读取单篇文章缓存，未命中或反序列化失败返回 false
func (c *WikiCache) GetArticle(id uint) (*dto.ArticleResponse, bool) {
	if c.redis == nil {
		return nil, false
	}
	ctx := context.Background()

	raw, err := c.redis.Get(ctx, fmt.Sprintf(cacheKeyArticle, id)).Result()
	if err != nil {
		return nil, false
	}

	var resp dto.ArticleResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		return nil, false
	}
	return &resp, true
}

// SetArticle 回填单篇文章缓存
func (c *WikiCache) SetArticle(resp *dto.ArticleResponse) {
	if c.redis == nil || resp == nil {
		return
	}
	ctx := context.Background()

	raw, err := json.Marshal(resp)
	if err != nil {
		return
	}
	_ = c.redis.Set(ctx, fmt.Sprintf(cacheKeyArticle, resp.ID), raw, cacheTTL).Err()
}

// InvalidateArticle 写路径提交后同步失效单篇缓存
func (c *WikiCache) InvalidateArticle(id uint) {
	if c.redis == nil {
		return
	}
	_ = c.redis.Del(context.Background(), fmt.Sprintf(cacheKeyArticle, id)).Err()
}

// GetArticleList 读取列表缓存
func (c *WikiCache) GetArticleList(includeDead bool) (*dto.ArticleListResponse, bool) {
	if c.redis == nil {
		return nil, false
	}
	ctx := context.Background()

	raw, err := c.redis.Get(ctx, articleListKey(includeDead)).Result()
	if err != nil {
		return nil, false
	}

	var resp dto.ArticleListResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		return nil, false
	}
	return &resp, true
}

// SetArticleList 回填列表缓存
func (c *WikiCache) SetArticleList(includeDead bool, resp *dto.ArticleListResponse) {
	if c.redis == nil || resp == nil {
		return
	}
	raw, err := json.Marshal(resp)
	if err != nil {
		return
	}
	_ = c.redis.Set(context.Background(), articleListKey(includeDead), raw, cacheTTL).Err()
}

// InvalidateLists 任何改变文章集合或内容的写操作都要失效两个列表视图
func (c *WikiCache) InvalidateLists() {
	if c.redis == nil {
		return
	}
	ctx := context.Background()
	_ = c.redis.Del(ctx, cacheKeyArticlesLive, cacheKeyArticlesDead).Err()
}

// GetRevisionHistory 读取修订历史首页缓存
// 只缓存默认分页（page=1），深分页直读数据库
func (c *WikiCache) GetRevisionHistory(articleID uint, languageID uint) (*dto.RevisionHistoryResponse, bool) {
	if c.redis == nil {
		return nil, false
	}
	raw, err := c.redis.Get(context.Background(), fmt.Sprintf(cacheKeyRevisions, articleID, languageID)).Result()
	if err != nil {
		return nil, false
	}

	var resp dto.RevisionHistoryResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		return nil, false
	}
	return &resp, true
}

// SetRevisionHistory 回填修订历史首页缓存
func (c *WikiCache) SetRevisionHistory(articleID uint, languageID uint, resp *dto.RevisionHistoryResponse) {
	if c.redis == nil || resp == nil {
		return
	}
	raw, err := json.Marshal(resp)
	if err != nil {
		return
	}
	_ = c.redis.Set(context.Background(), fmt.Sprintf(cacheKeyRevisions, articleID, languageID), raw, cacheTTL).Err()
}

// InvalidateRevisions 追加修订后失效对应 (article, language) 的历史缓存
func (c *WikiCache) InvalidateRevisions(articleID uint, languageID uint) {
	if c.redis == nil {
		return
	}
	_ = c.redis.Del(context.Background(), fmt.Sprintf(cacheKeyRevisions, articleID, languageID)).Err()
}
