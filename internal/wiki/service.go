package wiki

import (
	"errors"
	"log"
	"strings"
	"time"

	"gorm.io/gorm"

	"terminal-terrace/wiki-service/internal/dto"
	modelwiki "terminal-terrace/wiki-service/internal/model/wiki"
	pkgDatabase "terminal-terrace/wiki-service/pkg/database"
	"terminal-terrace/wiki-service/pkg/response"
)

// WikiService 文章/翻译的编排层
// 多步创建全部包在单个事务里：要么全部落库，要么一行不留，
// 缓存失效在事务提交之后、返回之前同步执行
type WikiService struct {
	db              *gorm.DB
	articleRepo     *ArticleRepository
	translationRepo *TranslationRepository
	revisionRepo    *RevisionRepository
	aliasRepo       *AliasRepository
	languageRepo    *LanguageRepository
	userRepo        *UserRepository
	cache           *WikiCache
	defaultLanguage string
}

func NewWikiService(db *gorm.DB, redis *pkgDatabase.RedisClient, defaultLanguage string) *WikiService {
	// 语言代码统一小写比较
	defaultLanguage = strings.ToLower(defaultLanguage)
	return &WikiService{
		db:              db,
		articleRepo:     NewArticleRepository(db),
		translationRepo: NewTranslationRepository(db),
		revisionRepo:    NewRevisionRepository(db),
		aliasRepo:       NewAliasRepository(db),
		languageRepo:    NewLanguageRepository(db),
		userRepo:        NewUserRepository(db),
		cache:           NewWikiCache(redis),
		defaultLanguage: defaultLanguage,
	}
}

// CreateArticle 创建文章：文章行 + 首条修订(默认语言, revision_id=1) + 别名，
// 别名冲突中止整个操作，不留孤儿文章行
func (s *WikiService) CreateArticle(req dto.CreateWikiRequest, userID uint) (*dto.ArticleResponse, error) {
	exists, err := s.userRepo.Exists(userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrUnknownUser(userID)
	}

	lang, err := s.languageRepo.Resolve(s.defaultLanguage, true)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	art := &modelwiki.Article{
		Title:        req.Title,
		Contents:     req.Contents,
		LastEditorID: userID,
		LastUpdated:  now,
		Revision:     1,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		// 先查别名，冲突时连文章行都不写
		key := NormalizeAlias(req.Title)
		taken, err := s.aliasRepo.Exists(tx, key)
		if err != nil {
			return err
		}
		if taken {
			return ErrAliasTaken(key)
		}

		if err := s.articleRepo.Create(tx, art); err != nil {
			return err
		}

		rev := &modelwiki.Revision{
			ArticleID:   art.ID,
			LanguageID:  lang.ID,
			RevisionID:  1,
			Title:       req.Title,
			Contents:    req.Contents,
			EditorID:    userID,
			TimeCreated: now,
		}
		if err := s.revisionRepo.Create(tx, rev); err != nil {
			return err
		}

		if _, err := s.aliasRepo.Register(tx, art.ID, req.Title); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.cache.InvalidateLists()

	return s.buildArticleResponse(art)
}

// CreateTranslation 创建翻译：翻译行 + 首条修订；
// 别名注册是尽力而为，冲突不影响翻译本身
func (s *WikiService) CreateTranslation(req dto.CreateWikiRequest, userID uint) (*dto.TranslationResponse, error) {
	if req.ArticleID == nil {
		return nil, ErrInvalidArticle(0)
	}
	articleID := *req.ArticleID

	exists, err := s.articleRepo.Exists(articleID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrInvalidArticle(articleID)
	}

	lang, err := s.languageRepo.Resolve(req.Language, true)
	if err != nil {
		return nil, err
	}

	// 默认语言的修订账本属于文章本体，翻译挤进来会让
	// 文章当前内容和最新修订脱节，必须走编辑路径
	if lang.Language == s.defaultLanguage {
		return nil, ErrDefaultLanguageTranslation(lang.Language)
	}

	userExists, err := s.userRepo.Exists(userID)
	if err != nil {
		return nil, err
	}
	if !userExists {
		return nil, ErrUnknownUser(userID)
	}

	taken, err := s.translationRepo.Exists(articleID, lang.ID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrTranslationExists(articleID, lang.Language)
	}

	now := time.Now()
	tr := &modelwiki.Translation{
		ArticleID:    articleID,
		LanguageID:   lang.ID,
		Title:        req.Title,
		Contents:     req.Contents,
		LastEditorID: userID,
		LastUpdated:  now,
		Revision:     1,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.translationRepo.Create(tx, tr); err != nil {
			return err
		}

		next, err := s.revisionRepo.NextRevisionID(tx, articleID, lang.ID)
		if err != nil {
			return err
		}

		rev := &modelwiki.Revision{
			ArticleID:   articleID,
			LanguageID:  lang.ID,
			RevisionID:  next,
			Title:       req.Title,
			Contents:    req.Contents,
			EditorID:    userID,
			TimeCreated: now,
		}
		return s.revisionRepo.Create(tx, rev)
	})
	if err != nil {
		return nil, err
	}

	// 别名尽力注册，已被占用时静默跳过
	if _, err := s.aliasRepo.Register(s.db, articleID, req.Title); err != nil {
		if ErrorCode(err) != response.Conflict {
			log.Printf("[wiki] 翻译别名注册失败 article=%d: %v", articleID, err)
		}
	}

	s.cache.InvalidateArticle(articleID)
	s.cache.InvalidateLists()

	editor, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	resp := dto.NewTranslationResponse(tr, lang.Language, editor)
	return &resp, nil
}

// Edit 追加修订并回写反范式化的当前内容
// language 为空或等于默认语言时编辑文章本体，否则编辑对应翻译；
// 软删除的条目仍接受编辑
func (s *WikiService) Edit(articleID uint, req dto.EditWikiRequest, editorID uint) (*dto.RevisionResponse, error) {
	userExists, err := s.userRepo.Exists(editorID)
	if err != nil {
		return nil, err
	}
	if !userExists {
		return nil, ErrUnknownUser(editorID)
	}

	code := req.Language
	if code == "" {
		code = s.defaultLanguage
	}
	lang, err := s.languageRepo.Resolve(code, true)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	var rev *modelwiki.Revision

	if lang.Language == s.defaultLanguage {
		art, err := s.articleRepo.GetByID(articleID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrArticleNotFound(articleID)
			}
			return nil, err
		}

		err = s.db.Transaction(func(tx *gorm.DB) error {
			next, err := s.revisionRepo.NextRevisionID(tx, articleID, lang.ID)
			if err != nil {
				return err
			}

			rev = &modelwiki.Revision{
				ArticleID:   articleID,
				LanguageID:  lang.ID,
				RevisionID:  next,
				Title:       req.Title,
				Contents:    req.Contents,
				EditorID:    editorID,
				TimeCreated: now,
			}
			if err := s.revisionRepo.Create(tx, rev); err != nil {
				return err
			}

			art.Title = req.Title
			art.Contents = req.Contents
			art.LastEditorID = editorID
			art.LastUpdated = now
			art.Revision = next
			return s.articleRepo.Update(tx, art)
		})
		if err != nil {
			return nil, err
		}
	} else {
		tr, err := s.translationRepo.Get(articleID, lang.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrTranslationNotFound(articleID, lang.Language)
			}
			return nil, err
		}

		err = s.db.Transaction(func(tx *gorm.DB) error {
			next, err := s.revisionRepo.NextRevisionID(tx, articleID, lang.ID)
			if err != nil {
				return err
			}

			rev = &modelwiki.Revision{
				ArticleID:   articleID,
				LanguageID:  lang.ID,
				RevisionID:  next,
				Title:       req.Title,
				Contents:    req.Contents,
				EditorID:    editorID,
				TimeCreated: now,
			}
			if err := s.revisionRepo.Create(tx, rev); err != nil {
				return err
			}

			tr.Title = req.Title
			tr.Contents = req.Contents
			tr.LastEditorID = editorID
			tr.LastUpdated = now
			tr.Revision = next
			return s.translationRepo.Update(tx, tr)
		})
		if err != nil {
			return nil, err
		}
	}

	s.cache.InvalidateArticle(articleID)
	s.cache.InvalidateLists()
	s.cache.InvalidateRevisions(articleID, lang.ID)

	editor, err := s.userRepo.GetByID(editorID)
	if err != nil {
		return nil, err
	}
	resp := dto.NewRevisionResponse(rev, editor)
	return &resp, nil
}

// GetArticle 单篇文章读取，缓存优先
// includeDead 为 false 时软删除的文章按不存在处理
func (s *WikiService) GetArticle(articleID uint, includeDead bool) (*dto.ArticleResponse, error) {
	if cached, ok := s.cache.GetArticle(articleID); ok {
		if cached.Deleted && !includeDead {
			return nil, ErrArticleNotFound(articleID)
		}
		return cached, nil
	}

	art, err := s.articleRepo.GetByID(articleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrArticleNotFound(articleID)
		}
		return nil, err
	}

	resp, err := s.buildArticleResponse(art)
	if err != nil {
		return nil, err
	}
	s.cache.SetArticle(resp)

	if art.Deleted && !includeDead {
		return nil, ErrArticleNotFound(articleID)
	}
	return resp, nil
}

// GetTranslation 按 (article, language) 读取翻译
func (s *WikiService) GetTranslation(articleID uint, languageCode string, includeDead bool) (*dto.TranslationResponse, error) {
	lang, err := s.languageRepo.Resolve(languageCode, true)
	if err != nil {
		return nil, err
	}

	tr, err := s.translationRepo.Get(articleID, lang.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTranslationNotFound(articleID, lang.Language)
		}
		return nil, err
	}

	if tr.Deleted && !includeDead {
		return nil, ErrTranslationNotFound(articleID, lang.Language)
	}

	editor, err := s.userRepo.GetByID(tr.LastEditorID)
	if err != nil {
		return nil, err
	}
	resp := dto.NewTranslationResponse(tr, lang.Language, editor)
	return &resp, nil
}

// ListArticles 全量列表，整表级缓存，live/dead 两个视图各自成键
func (s *WikiService) ListArticles(includeDead bool) (*dto.ArticleListResponse, error) {
	if cached, ok := s.cache.GetArticleList(includeDead); ok {
		return cached, nil
	}

	articles, err := s.articleRepo.List(includeDead)
	if err != nil {
		return nil, err
	}

	resp := &dto.ArticleListResponse{
		Total:    len(articles),
		Articles: make([]dto.ArticleResponse, 0, len(articles)),
	}
	for i := range articles {
		item, err := s.buildArticleResponse(&articles[i])
		if err != nil {
			return nil, err
		}
		resp.Articles = append(resp.Articles, *item)
	}

	s.cache.SetArticleList(includeDead, resp)
	return resp, nil
}

// GetAliases 文章的别名列表，升序
func (s *WikiService) GetAliases(articleID uint) ([]string, error) {
	exists, err := s.articleRepo.Exists(articleID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrArticleNotFound(articleID)
	}
	return s.aliasRepo.ListByArticle(articleID)
}

// LatestRevision (article, language) 下修订号最大的一条
func (s *WikiService) LatestRevision(articleID uint, languageCode string) (*dto.RevisionResponse, error) {
	code := languageCode
	if code == "" {
		code = s.defaultLanguage
	}
	lang, err := s.languageRepo.Resolve(code, true)
	if err != nil {
		return nil, err
	}

	rev, err := s.revisionRepo.Latest(articleID, lang.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoRevisions(articleID, lang.ID)
		}
		return nil, err
	}

	editor, err := s.userRepo.GetByID(rev.EditorID)
	if err != nil {
		return nil, err
	}
	resp := dto.NewRevisionResponse(rev, editor)
	return &resp, nil
}

// History 分页修订历史，创建时间倒序；只有默认分页的首页进缓存
func (s *WikiService) History(articleID uint, languageCode string, page int, limit int) (*dto.RevisionHistoryResponse, error) {
	exists, err := s.articleRepo.Exists(articleID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrArticleNotFound(articleID)
	}

	code := languageCode
	if code == "" {
		code = s.defaultLanguage
	}
	lang, err := s.languageRepo.Resolve(code, true)
	if err != nil {
		return nil, err
	}

	if page < 1 {
		page = 1
	}
	cacheable := page == 1

	if cacheable {
		if cached, ok := s.cache.GetRevisionHistory(articleID, lang.ID); ok && cached.Limit == limit {
			return cached, nil
		}
	}

	revisions, err := s.revisionRepo.History(articleID, lang.ID, page, limit)
	if err != nil {
		return nil, err
	}

	resp := &dto.RevisionHistoryResponse{
		Page:      page,
		Limit:     limit,
		Revisions: make([]dto.RevisionResponse, 0, len(revisions)),
	}
	for i := range revisions {
		editor, err := s.userRepo.GetByID(revisions[i].EditorID)
		if err != nil {
			return nil, err
		}
		resp.Revisions = append(resp.Revisions, dto.NewRevisionResponse(&revisions[i], editor))
	}

	if cacheable {
		s.cache.SetRevisionHistory(articleID, lang.ID, resp)
	}
	return resp, nil
}

// Delete 软删除文章，只置标记
func (s *WikiService) Delete(articleID uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		return s.articleRepo.SoftDelete(tx, articleID)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrArticleNotFound(articleID)
		}
		return err
	}

	s.cache.InvalidateArticle(articleID)
	s.cache.InvalidateLists()
	return nil
}

// buildArticleResponse 装载别名与编辑者后做显式映射
func (s *WikiService) buildArticleResponse(art *modelwiki.Article) (*dto.ArticleResponse, error) {
	aliases, err := s.aliasRepo.ListByArticle(art.ID)
	if err != nil {
		return nil, err
	}

	editor, err := s.userRepo.GetByID(art.LastEditorID)
	if err != nil {
		return nil, err
	}

	resp := dto.NewArticleResponse(art, aliases, editor)
	return &resp, nil
}
