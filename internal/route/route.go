package route

import (
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"terminal-terrace/wiki-service/internal/database"
	"terminal-terrace/wiki-service/internal/wiki"
)

func initRoute(r *gin.Engine) {
	db := database.GetDB()

	// 维基插件路由统一挂在 /wiki 前缀下
	wikiGroup := r.Group("/wiki")
	wiki.SetupWikiRoutes(wikiGroup, db, database.RedisDB)
}

func SetupRouter() *gin.Engine {
	r := gin.Default()

	origin := os.Getenv("FRONTEND_URL")
	if origin == "" {
		origin = "http://localhost:5173" // 默认值
	}

	// 设置跨域请求
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{origin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	}))

	initRoute(r)

	return r
}
