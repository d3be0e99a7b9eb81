package dto

import (
	"time"

	"terminal-terrace/wiki-service/internal/model/user"
	"terminal-terrace/wiki-service/internal/model/wiki"
)

// CreateWikiRequest 创建文章/翻译请求
// 同时带 language 和 article_id 时创建翻译，否则创建文章
type CreateWikiRequest struct {
	Title     string `json:"title" binding:"required,min=1,max=128"`
	Contents  string `json:"contents" binding:"required,max=1048576"`
	Language  string `json:"language" binding:"omitempty,max=32"`
	ArticleID *uint  `json:"article_id"`
}

// EditWikiRequest 追加修订请求
type EditWikiRequest struct {
	Title    string `json:"title" binding:"required,min=1,max=128"`
	Contents string `json:"contents" binding:"required,max=1048576"`
	Language string `json:"language" binding:"omitempty,max=32"`
}

// UserView 嵌套的编辑者视图，只暴露 id 和用户名
type UserView struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

// ArticleResponse 文章响应
type ArticleResponse struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Contents    string    `json:"contents"`
	Aliases     []string  `json:"aliases"`
	LastEditor  *UserView `json:"last_editor,omitempty"`
	LastUpdated string    `json:"last_updated"`
	Revision    int       `json:"revision"`
	Deleted     bool      `json:"deleted"`
}

// TranslationResponse 翻译响应
type TranslationResponse struct {
	ArticleID   uint      `json:"article_id"`
	LanguageID  uint      `json:"language_id"`
	Language    string    `json:"language"`
	Title       string    `json:"title"`
	Contents    string    `json:"contents"`
	LastEditor  *UserView `json:"last_editor,omitempty"`
	LastUpdated string    `json:"last_updated"`
	Revision    int       `json:"revision"`
	Deleted     bool      `json:"deleted"`
}

// RevisionResponse 修订响应
type RevisionResponse struct {
	ArticleID   uint      `json:"article_id"`
	LanguageID  uint      `json:"language_id"`
	RevisionID  int       `json:"revision_id"`
	Title       string    `json:"title"`
	Contents    string    `json:"contents"`
	Editor      *UserView `json:"editor,omitempty"`
	TimeCreated string    `json:"time_created"`
}

// ArticleListResponse 文章列表响应
type ArticleListResponse struct {
	Total    int               `json:"total"`
	Articles []ArticleResponse `json:"articles"`
}

// RevisionHistoryResponse 修订历史响应（分页）
type RevisionHistoryResponse struct {
	Page      int                `json:"page"`
	Limit     int                `json:"limit"`
	Revisions []RevisionResponse `json:"revisions"`
}

// NewUserView 用户模型到嵌套视图的映射，editor 缺失时返回 nil
func NewUserView(u *user.User) *UserView {
	if u == nil {
		return nil
	}
	return &UserView{ID: u.ID, Username: u.Username}
}

// NewArticleResponse 文章模型到响应的显式映射
func NewArticleResponse(a *wiki.Article, aliases []string, lastEditor *user.User) ArticleResponse {
	return ArticleResponse{
		ID:          a.ID,
		Title:       a.Title,
		Contents:    a.Contents,
		Aliases:     aliases,
		LastEditor:  NewUserView(lastEditor),
		LastUpdated: a.LastUpdated.Format(time.RFC3339),
		Revision:    a.Revision,
		Deleted:     a.Deleted,
	}
}

// NewTranslationResponse 翻译模型到响应的显式映射
func NewTranslationResponse(t *wiki.Translation, language string, lastEditor *user.User) TranslationResponse {
	return TranslationResponse{
		ArticleID:   t.ArticleID,
		LanguageID:  t.LanguageID,
		Language:    language,
		Title:       t.Title,
		Contents:    t.Contents,
		LastEditor:  NewUserView(lastEditor),
		LastUpdated: t.LastUpdated.Format(time.RFC3339),
		Revision:    t.Revision,
		Deleted:     t.Deleted,
	}
}

// NewRevisionResponse 修订模型到响应的显式映射
func NewRevisionResponse(r *wiki.Revision, editor *user.User) RevisionResponse {
	return RevisionResponse{
		ArticleID:   r.ArticleID,
		LanguageID:  r.LanguageID,
		RevisionID:  r.RevisionID,
		Title:       r.Title,
		Contents:    r.Contents,
		Editor:      NewUserView(editor),
		TimeCreated: r.TimeCreated.Format(time.RFC3339),
	}
}
