package service

import (
	"time"

	"moneta/database"
	"moneta/models"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// StartCleanupScheduler 启动后台定时任务
// 每天凌晨 3 点清理已使用或过期的密码重置验证码
func StartCleanupScheduler() *cron.Cron {
	c := cron.New()

	if _, err := c.AddFunc("0 3 * * *", PurgeExpiredPasswordResets); err != nil {
		logrus.Errorf("注册清理任务失败: %v", err)
		return c
	}

	c.Start()
	logrus.Info("清理任务已启动 (每天 03:00)")
	return c
}

// PurgeExpiredPasswordResets 删除已使用或已过期的密码重置记录
func PurgeExpiredPasswordResets() {
	result := database.DB.
		Where("used = ? OR expires_at < ?", true, time.Now()).
		Delete(&models.PasswordReset{})
	if result.Error != nil {
		logrus.Errorf("清理密码重置记录失败: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		logrus.Infof("已清理 %d 条过期密码重置记录", result.RowsAffected)
	}
}
