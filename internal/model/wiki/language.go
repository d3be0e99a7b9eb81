package wiki

// Language 语言目录表
// 启动时种子化，运行期只读；language 统一存小写，查询不区分大小写
type Language struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Language string `gorm:"type:varchar(32);not null;uniqueIndex" json:"language"`
}

func (Language) TableName() string {
	return "wiki_languages"
}
