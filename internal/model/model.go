package model

import (
	"gorm.io/gorm"

	"terminal-terrace/wiki-service/internal/model/user"
	"terminal-terrace/wiki-service/internal/model/wiki"
)

// SeedLanguages 语言目录的种子数据，仅在迁移时写入
var SeedLanguages = []string{"en", "es", "fr", "de", "ja"}

func InitTable(db *gorm.DB) error {
	// 自动迁移数据库表结构
	err := db.AutoMigrate(
		// 用户模型
		&user.User{},
		// 维基相关模型
		&wiki.Article{},
		&wiki.Translation{},
		&wiki.Revision{},
		&wiki.Alias{},
		&wiki.Language{},
	)
	if err != nil {
		return err
	}

	return seedLanguages(db)
}

// seedLanguages 幂等写入语言目录
func seedLanguages(db *gorm.DB) error {
	for _, code := range SeedLanguages {
		lang := wiki.Language{Language: code}
		if err := db.Where("language = ?", code).
			FirstOrCreate(&lang).Error; err != nil {
			return err
		}
	}
	return nil
}
