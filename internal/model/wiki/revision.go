package wiki

import (
	"time"
)

// Revision 修订历史表（全量快照，创建后不可变）
// revision_id 在 (article_id, language_id) 下从 1 递增且无空洞；
// 复合唯一索引兜底并发追加时的修订号竞争，冲突方收到约束错误
type Revision struct {
	ID          uint      `gorm:"primaryKey" json:"-"`
	ArticleID   uint      `gorm:"not null;uniqueIndex:idx_wiki_revision_unique" json:"article_id"`
	LanguageID  uint      `gorm:"not null;uniqueIndex:idx_wiki_revision_unique" json:"language_id"`
	RevisionID  int       `gorm:"not null;uniqueIndex:idx_wiki_revision_unique" json:"revision_id"`
	Title       string    `gorm:"type:varchar(128);not null" json:"title"`
	Contents    string    `gorm:"type:text;not null" json:"contents"`
	EditorID    uint      `gorm:"not null;index" json:"editor_id"`
	TimeCreated time.Time `gorm:"not null" json:"time_created"`
}

func (Revision) TableName() string {
	return "wiki_revisions"
}
