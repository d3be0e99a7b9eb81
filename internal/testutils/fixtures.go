package testutils

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"terminal-terrace/wiki-service/internal/model/user"
	"terminal-terrace/wiki-service/internal/model/wiki"
)

// CreateTestUser creates a test user with unique username/email
func CreateTestUser(db *gorm.DB, opts ...UserOption) *user.User {
	uniqueID := uuid.New().String()
	username := fmt.Sprintf("test_user_%s", uniqueID)
	email := fmt.Sprintf("test_%s@example.com", uniqueID)

	testUser := &user.User{
		Username:  username,
		Email:     email,
		Role:      "user",
		CreatedAt: time.Now(),
	}

	for _, opt := range opts {
		opt(testUser)
	}

	if err := db.Create(testUser).Error; err != nil {
		panic(fmt.Sprintf("Failed to create test user: %v", err))
	}

	return testUser
}

// UserOption configures test user
type UserOption func(*user.User)

// WithUsername sets the username
func WithUsername(username string) UserOption {
	return func(u *user.User) {
		u.Username = username
	}
}

// WithRole sets the role
func WithRole(role string) UserOption {
	return func(u *user.User) {
		u.Role = role
	}
}

// CreateTestArticle inserts a bare article row (no revision, no alias)
// Most tests should create articles through the service instead
func CreateTestArticle(db *gorm.DB, editorID uint, opts ...ArticleOption) *wiki.Article {
	uniqueID := uuid.New().String()

	testArticle := &wiki.Article{
		Title:        fmt.Sprintf("Test Article %s", uniqueID),
		Contents:     "Test article contents",
		LastEditorID: editorID,
		LastUpdated:  time.Now(),
		Revision:     1,
	}

	for _, opt := range opts {
		opt(testArticle)
	}

	if err := db.Create(testArticle).Error; err != nil {
		panic(fmt.Sprintf("Failed to create test article: %v", err))
	}

	return testArticle
}

// ArticleOption configures test article
type ArticleOption func(*wiki.Article)

// WithTitle sets the article title
func WithTitle(title string) ArticleOption {
	return func(a *wiki.Article) {
		a.Title = title
	}
}

// WithDeleted marks the article as soft deleted
func WithDeleted() ArticleOption {
	return func(a *wiki.Article) {
		a.Deleted = true
	}
}

// LanguageID looks up a seeded language id by code, failing hard on miss
func LanguageID(db *gorm.DB, code string) uint {
	var lang wiki.Language
	if err := db.Where("language = ?", code).First(&lang).Error; err != nil {
		panic(fmt.Sprintf("Failed to look up language %q: %v", code, err))
	}
	return lang.ID
}
