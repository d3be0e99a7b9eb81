package wiki

// Alias 文章别名表
// alias 为标题的规范化键（小写、去空白），全系统唯一，与语言无关。
// 别名一经注册不再更新，标题后续编辑不回写别名
type Alias struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Alias     string `gorm:"type:varchar(128);not null;uniqueIndex" json:"alias"`
	ArticleID uint   `gorm:"not null;index" json:"article_id"`
}

func (Alias) TableName() string {
	return "wiki_aliases"
}
