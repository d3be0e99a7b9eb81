package wiki

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"terminal-terrace/wiki-service/internal/model/wiki"
)

// LanguageRepository 语言目录
// 目录在迁移时种子化，运行期只读
type LanguageRepository struct {
	db *gorm.DB
}

func NewLanguageRepository(db *gorm.DB) *LanguageRepository {
	return &LanguageRepository{db: db}
}

// Resolve 按语言代码查找，不区分大小写
// strict 时未命中返回 ErrInvalidLanguage，否则返回 (nil, nil)
func (r *LanguageRepository) Resolve(code string, strict bool) (*wiki.Language, error) {
	var lang wiki.Language
	err := r.db.Where("language = ?", strings.ToLower(code)).First(&lang).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if strict {
				return nil, ErrInvalidLanguage(code)
			}
			return nil, nil
		}
		return nil, err
	}
	return &lang, nil
}

// GetByID 按主键查找语言
func (r *LanguageRepository) GetByID(id uint) (*wiki.Language, error) {
	var lang wiki.Language
	err := r.db.First(&lang, id).Error
	if err != nil {
		return nil, err
	}
	return &lang, nil
}
