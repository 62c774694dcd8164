package main

import (
	"flag"
	"log"
	"strings"

	"moneta/config"
	"moneta/database"
	"moneta/middleware"
	"moneta/router"
	"moneta/service"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// @title Moneta 记账 API
// @version 1.0
// @description 个人记账系统 API，支持收支记录、类别饼图汇总、关键字过滤和数据导出
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

var (
	configFile  string
	port        string
	showVersion bool
)

func init() {
	flag.StringVar(&configFile, "config", "", "外部配置文件路径（可选）")
	flag.StringVar(&configFile, "c", "", "外部配置文件路径（简写）")
	flag.StringVar(&port, "port", "", "监听端口，如: 8080 或 :8080")
	flag.StringVar(&port, "p", "", "监听端口（简写）")
	flag.BoolVar(&showVersion, "version", false, "显示版本信息")
	flag.BoolVar(&showVersion, "v", false, "显示版本信息（简写）")
}

func main() {
	flag.Parse()

	if showVersion {
		log.Println("Moneta 记账 v1.0.0")
		return
	}

	// 加载 .env（不存在则忽略）
	_ = godotenv.Load()

	// 加载配置（内置配置 + 可选的外部配置覆盖）
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	// 命令行参数覆盖端口配置
	if port != "" {
		// 自动添加冒号前缀
		if !strings.HasPrefix(port, ":") {
			port = ":" + port
		}
		cfg.Server.Port = port
		log.Printf("命令行指定端口: %s", port)
	}

	// 初始化日志
	config.SetupLogger(cfg)

	// 打印配置信息
	config.PrintConfig()

	// 初始化数据库
	if err := database.Init(cfg); err != nil {
		log.Fatalf("数据库初始化失败: %v", err)
	}

	// 初始化 JWT
	middleware.InitJWT(cfg)

	// 启动过期验证码清理任务
	cleaner := service.StartCleanupScheduler()
	defer cleaner.Stop()

	// 设置路由
	r := router.SetupRouter(cfg)

	// 启动服务器
	logrus.Info("==========================================")
	logrus.Info("  💰 Moneta 记账已启动")
	logrus.Info("==========================================")
	logrus.Infof("  首页:     http://localhost%s/", cfg.Server.Port)
	logrus.Infof("  Swagger:  http://localhost%s/swagger/index.html", cfg.Server.Port)
	logrus.Infof("  API接口:  http://localhost%s/api/v1/", cfg.Server.Port)
	logrus.Info("==========================================")

	if err := r.Run(cfg.Server.Port); err != nil {
		log.Fatalf("服务器启动失败: %v", err)
	}
}
