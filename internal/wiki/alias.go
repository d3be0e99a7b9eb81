package wiki

import (
	"strings"
	"unicode"

	"gorm.io/gorm"

	"terminal-terrace/wiki-service/internal/model/wiki"
)

// NormalizeAlias 标题规范化为别名键：小写并去掉所有空白字符。
// 幂等：NormalizeAlias(NormalizeAlias(s)) == NormalizeAlias(s)
func NormalizeAlias(title string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, strings.ToLower(title))
}

// AliasRepository 别名仓储层
// 别名只增不改不删
type AliasRepository struct {
	db *gorm.DB
}

func NewAliasRepository(db *gorm.DB) *AliasRepository {
	return &AliasRepository{db: db}
}

// Exists 检查别名键是否已被占用（全系统范围，与语言无关）
func (r *AliasRepository) Exists(tx *gorm.DB, alias string) (bool, error) {
	var count int64
	err := tx.Model(&wiki.Alias{}).Where("alias = ?", alias).Count(&count).Error
	return count > 0, err
}

// Register 由标题注册别名，键已被占用时返回 ErrAliasTaken
func (r *AliasRepository) Register(tx *gorm.DB, articleID uint, title string) (*wiki.Alias, error) {
	key := NormalizeAlias(title)

	taken, err := r.Exists(tx, key)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrAliasTaken(key)
	}

	alias := &wiki.Alias{
		Alias:     key,
		ArticleID: articleID,
	}
	if err := tx.Create(alias).Error; err != nil {
		return nil, err
	}
	return alias, nil
}

// ListByArticle 返回文章的全部别名键，按字典序升序
func (r *AliasRepository) ListByArticle(articleID uint) ([]string, error) {
	var aliases []string
	err := r.db.Model(&wiki.Alias{}).
		Where("article_id = ?", articleID).
		Order("alias ASC").
		Pluck("alias", &aliases).Error
	return aliases, err
}
