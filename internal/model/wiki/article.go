// Package wiki 维基相关模型
package wiki

import (
	"time"
)

// Article 维基文章表
// title/contents 为反范式化的当前内容，始终与该文章默认语言下
// 最新一条修订保持一致
type Article struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Title        string    `gorm:"type:varchar(128);not null" json:"title"`
	Contents     string    `gorm:"type:text;not null" json:"contents"`
	LastEditorID uint      `gorm:"not null;index" json:"last_editor_id"`
	LastUpdated  time.Time `gorm:"not null" json:"last_updated"`
	// 当前修订号（默认语言），与修订表中该文章的最大 revision_id 一致
	Revision int `gorm:"not null" json:"revision"`
	// 软删除标记，删除只隐藏不冻结
	Deleted bool `gorm:"not null;default:false;index" json:"deleted"`
}

func (Article) TableName() string {
	return "wiki_articles"
}

// Translation 文章的语言变体表
// 复合主键 (article_id, language_id)，每篇文章每种语言至多一条
type Translation struct {
	ArticleID    uint      `gorm:"primaryKey;autoIncrement:false" json:"article_id"`
	LanguageID   uint      `gorm:"primaryKey;autoIncrement:false" json:"language_id"`
	Title        string    `gorm:"type:varchar(128);not null" json:"title"`
	Contents     string    `gorm:"type:text;not null" json:"contents"`
	LastEditorID uint      `gorm:"not null;index" json:"last_editor_id"`
	LastUpdated  time.Time `gorm:"not null" json:"last_updated"`
	Revision     int       `gorm:"not null" json:"revision"`
	Deleted      bool      `gorm:"not null;default:false;index" json:"deleted"`
}

func (Translation) TableName() string {
	return "wiki_translations"
}
