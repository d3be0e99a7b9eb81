package wiki

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"terminal-terrace/wiki-service/config"
	"terminal-terrace/wiki-service/internal/middleware"
	"terminal-terrace/wiki-service/internal/permission"
	pkgDatabase "terminal-terrace/wiki-service/pkg/database"
)

// SetupWikiRoutes 设置维基相关路由
func SetupWikiRoutes(r *gin.RouterGroup, db *gorm.DB, redis *pkgDatabase.RedisClient) {
	// 初始化handler（内部会自动初始化所有依赖）
	wikiHandler := NewWikiHandler(db, redis, config.Conf.Wiki)

	// 读路由 - 可选认证（带 token 时可见软删除条目）
	articles := r.Group("/articles")
	articles.Use(middleware.OptionalJWTAuth())
	articles.Use(middleware.RequirePermission(permission.PermView))
	{
		articles.GET("", wikiHandler.ListArticles)                  // 文章列表
		articles.GET("/:id", wikiHandler.GetArticle)                // 文章详情 / 翻译
		articles.GET("/:id/aliases", wikiHandler.GetAliases)        // 别名列表
		articles.GET("/:id/revisions", wikiHandler.GetRevisions)    // 修订历史
	}

	// 写路由 - 需要认证
	create := r.Group("/create")
	create.Use(middleware.JWTAuth())
	create.Use(middleware.RequirePermission(permission.PermCreate))
	{
		create.POST("", wikiHandler.Create) // 创建文章/翻译（需要认证）
	}

	modify := r.Group("/modify")
	modify.Use(middleware.JWTAuth())
	modify.Use(middleware.RequirePermission(permission.PermEdit))
	{
		modify.PUT("/:id", wikiHandler.Modify) // 追加修订（需要认证）
	}

	del := r.Group("/articles")
	del.Use(middleware.JWTAuth())
	del.Use(middleware.RequirePermission(permission.PermDelete))
	{
		del.DELETE("/:id", wikiHandler.Delete) // 软删除（需要认证）
	}
}
