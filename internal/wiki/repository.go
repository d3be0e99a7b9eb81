package wiki

import (
	"errors"

	"gorm.io/gorm"

	"terminal-terrace/wiki-service/internal/model/user"
	"terminal-terrace/wiki-service/internal/model/wiki"
)

// ArticleRepository 文章仓储层
// 读操作走 r.db，写操作接收事务句柄由 service 层编排
type ArticleRepository struct {
	db *gorm.DB
}

func NewArticleRepository(db *gorm.DB) *ArticleRepository {
	return &ArticleRepository{db: db}
}

func (r *ArticleRepository) GetByID(id uint) (*wiki.Article, error) {
	var art wiki.Article
	err := r.db.First(&art, id).Error
	if err != nil {
		return nil, err
	}
	return &art, nil
}

// Exists 外键校验用，软删除的文章仍视为存在
func (r *ArticleRepository) Exists(id uint) (bool, error) {
	var count int64
	err := r.db.Model(&wiki.Article{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *ArticleRepository) Create(tx *gorm.DB, art *wiki.Article) error {
	return tx.Create(art).Error
}

func (r *ArticleRepository) Update(tx *gorm.DB, art *wiki.Article) error {
	return tx.Save(art).Error
}

// List 全量列表，按 id 升序；includeDead 为 false 时过滤软删除行
func (r *ArticleRepository) List(includeDead bool) ([]wiki.Article, error) {
	var articles []wiki.Article
	query := r.db.Model(&wiki.Article{}).Order("id ASC")
	if !includeDead {
		query = query.Where("deleted = ?", false)
	}
	err := query.Find(&articles).Error
	return articles, err
}

// SoftDelete 置软删除标记，不存在物理删除路径
func (r *ArticleRepository) SoftDelete(tx *gorm.DB, id uint) error {
	result := tx.Model(&wiki.Article{}).
		Where("id = ?", id).
		Update("deleted", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// TranslationRepository 翻译仓储层
type TranslationRepository struct {
	db *gorm.DB
}

func NewTranslationRepository(db *gorm.DB) *TranslationRepository {
	return &TranslationRepository{db: db}
}

func (r *TranslationRepository) Get(articleID uint, languageID uint) (*wiki.Translation, error) {
	var tr wiki.Translation
	err := r.db.Where("article_id = ? AND language_id = ?", articleID, languageID).
		First(&tr).Error
	if err != nil {
		return nil, err
	}
	return &tr, nil
}

func (r *TranslationRepository) Exists(articleID uint, languageID uint) (bool, error) {
	var count int64
	err := r.db.Model(&wiki.Translation{}).
		Where("article_id = ? AND language_id = ?", articleID, languageID).
		Count(&count).Error
	return count > 0, err
}

func (r *TranslationRepository) Create(tx *gorm.DB, tr *wiki.Translation) error {
	return tx.Create(tr).Error
}

func (r *TranslationRepository) Update(tx *gorm.DB, tr *wiki.Translation) error {
	return tx.Model(&wiki.Translation{}).
		Where("article_id = ? AND language_id = ?", tr.ArticleID, tr.LanguageID).
		Updates(map[string]interface{}{
			"title":          tr.Title,
			"contents":       tr.Contents,
			"last_editor_id": tr.LastEditorID,
			"last_updated":   tr.LastUpdated,
			"revision":       tr.Revision,
			"deleted":        tr.Deleted,
		}).Error
}

// RevisionRepository 修订账本
// 修订行一经写入不可变，只有追加和查询
type RevisionRepository struct {
	db *gorm.DB
}

func NewRevisionRepository(db *gorm.DB) *RevisionRepository {
	return &RevisionRepository{db: db}
}

// NextRevisionID 计算 (article, language) 下的下一个修订号
// 无历史时返回 1；并发竞争由复合唯一索引兜底
func (r *RevisionRepository) NextRevisionID(tx *gorm.DB, articleID uint, languageID uint) (int, error) {
	var last int
	err := tx.Model(&wiki.Revision{}).
		Where("article_id = ? AND language_id = ?", articleID, languageID).
		Select("COALESCE(MAX(revision_id), 0)").
		Scan(&last).Error
	if err != nil {
		return 0, err
	}
	return last + 1, nil
}

func (r *RevisionRepository) Create(tx *gorm.DB, rev *wiki.Revision) error {
	return tx.Create(rev).Error
}

// Latest 返回 (article, language) 下修订号最大的一条
// 无修订时返回 gorm.ErrRecordNotFound，由 service 映射为 ErrNoRevisions
func (r *RevisionRepository) Latest(articleID uint, languageID uint) (*wiki.Revision, error) {
	var rev wiki.Revision
	err := r.db.Where("article_id = ? AND language_id = ?", articleID, languageID).
		Order("revision_id DESC").
		First(&rev).Error
	if err != nil {
		return nil, err
	}
	return &rev, nil
}

// History 按创建时间倒序的分页修订历史
func (r *RevisionRepository) History(articleID uint, languageID uint, page int, limit int) ([]wiki.Revision, error) {
	if page < 1 {
		page = 1
	}
	var revisions []wiki.Revision
	err := r.db.Where("article_id = ? AND language_id = ?", articleID, languageID).
		Order("time_created DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&revisions).Error
	return revisions, err
}

// UserRepository 用户目录（auth_users 只读）
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Exists(id uint) (bool, error) {
	var count int64
	err := r.db.Model(&user.User{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// GetByID 编辑者信息装载，未命中时返回 (nil, nil)，序列化侧可容忍缺失
func (r *UserRepository) GetByID(id uint) (*user.User, error) {
	var u user.User
	err := r.db.First(&u, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}
