package main

import (
	"terminal-terrace/wiki-service/config"
	"terminal-terrace/wiki-service/internal/database"
	"terminal-terrace/wiki-service/internal/route"
)

func main() {
	// 1. 加载配置
	config.MustLoad("config.yaml")

	// 2. 初始化数据库与缓存
	database.InitDatabase()

	// 3. 设置路由
	r := route.SetupRouter()

	// 4. 启动服务
	r.Run(":8080")
}
