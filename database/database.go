package database

import (
	"fmt"

	"moneta/config"
	"moneta/models"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Init 初始化数据库连接
func Init(cfg *config.Config) error {
	// 构建 MySQL DSN 连接字符串
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=%s&parseTime=True&loc=Local",
		cfg.Database.Username,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.DBName,
		cfg.Database.Charset,
	)

	gormLogLevel := logger.Warn
	if cfg.Server.Mode == "debug" {
		gormLogLevel = logger.Info
	}

	var err error
	DB, err = gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(gormLogLevel),
	})
	if err != nil {
		return fmt.Errorf("连接数据库失败: %w", err)
	}

	// 获取底层 *sql.DB 连接池配置
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}

	// 设置连接池参数
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	// 自动迁移数据库表
	if err := DB.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Transaction{},
		&models.PasswordReset{},
	); err != nil {
		return err
	}

	seedCategories()

	logrus.Info("数据库初始化成功")
	return nil
}

// seedCategories 初始化默认类别（仅当表为空时）
func seedCategories() {
	var count int64
	DB.Model(&models.Category{}).Count(&count)
	if count > 0 {
		return
	}

	// 默认类别及颜色（与前端饼图配色保持一致）
	defaults := []models.Category{
		{Name: "Food", Sort: 10, Color: "#ef4444"},          // 红色
		{Name: "Transport", Sort: 20, Color: "#3b82f6"},     // 蓝色
		{Name: "Bills", Sort: 30, Color: "#14b8a6"},         // 青色
		{Name: "Entertainment", Sort: 40, Color: "#ec4899"}, // 粉色
		{Name: "Shopping", Sort: 50, Color: "#a855f7"},      // 紫色
		{Name: "Health", Sort: 60, Color: "#10b981"},        // 绿色
		{Name: "Salary", Sort: 70, Color: "#f59e0b"},        // 橙色
		{Name: "Other", Sort: 80, Color: "#64748b"},         // 灰色
	}
	if err := DB.Create(&defaults).Error; err != nil {
		logrus.Warnf("初始化默认类别失败: %v", err)
	}
}

// GetDB 获取数据库连接
func GetDB() *gorm.DB {
	return DB
}
