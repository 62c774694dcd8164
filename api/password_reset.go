package api

import (
	"net/http"
	"time"

	"moneta/config"
	"moneta/database"
	"moneta/models"
	"moneta/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// 重置验证码有效期
const resetCodeTTL = 10 * time.Minute

// PasswordResetHandler 密码重置处理器
type PasswordResetHandler struct {
	cfg          *config.Config
	emailService *service.EmailService
}

// NewPasswordResetHandler 创建密码重置处理器
func NewPasswordResetHandler(cfg *config.Config) *PasswordResetHandler {
	return &PasswordResetHandler{
		cfg:          cfg,
		emailService: service.NewEmailService(&cfg.Email),
	}
}

// RequestResetRequest 请求密码重置
type RequestResetRequest struct {
	Email string `json:"email" binding:"required,email" example:"test@example.com"`
}

// RequestReset 请求密码重置（发送验证码）
// @Summary 请求密码重置
// @Description 通过邮箱发送6位密码重置验证码，1分钟内不可重复发送
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body RequestResetRequest true "密码重置请求"
// @Success 200 {object} map[string]string "验证码已发送"
// @Failure 400 {object} ErrorResponse "请求参数错误"
// @Failure 429 {object} ErrorResponse "请求过于频繁"
// @Router /api/v1/auth/password/request-reset [post]
func (h *PasswordResetHandler) RequestReset(c *gin.Context) {
	var req RequestResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "valid email required")
		return
	}

	// 查找用户；为了安全，即使用户不存在也返回成功
	sentMessage := gin.H{"message": "如果该邮箱已注册，您将收到密码重置验证码"}
	var user models.User
	if err := database.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusOK, sentMessage)
		return
	}

	// 检查是否有未使用的有效验证码（防止频繁发送）
	var existingReset models.PasswordReset
	if err := database.DB.Where("user_id = ? AND used = ? AND expires_at > ?",
		user.ID, false, time.Now()).First(&existingReset).Error; err == nil {
		if time.Since(existingReset.CreatedAt) < time.Minute {
			c.JSON(http.StatusTooManyRequests, ErrorResponse{Error: "请求过于频繁，请稍后再试"})
			return
		}
		// 使旧验证码失效
		database.DB.Model(&existingReset).Update("used", true)
	}

	code, err := models.GenerateVerificationCode()
	if err != nil {
		InternalError(c, "failed to generate code")
		return
	}

	passwordReset := models.PasswordReset{
		UserID:    user.ID,
		Token:     code,
		Email:     req.Email,
		ExpiresAt: time.Now().Add(resetCodeTTL),
	}

	if err := database.DB.Create(&passwordReset).Error; err != nil {
		logrus.Errorf("创建重置验证码失败: %v", err)
		InternalErrorWithDetails(c, "failed to create reset code", err)
		return
	}

	if err := h.emailService.SendPasswordResetCode(req.Email, user.Username, code); err != nil {
		logrus.Errorf("发送重置邮件失败: %v", err)
		database.DB.Delete(&passwordReset)
		InternalErrorWithDetails(c, "failed to send email", err)
		return
	}

	c.JSON(http.StatusOK, sentMessage)
}

// VerifyResetCodeRequest 验证重置验证码
type VerifyResetCodeRequest struct {
	Email string `json:"email" binding:"required,email" example:"test@example.com"`
	Code  string `json:"code" binding:"required,len=6" example:"123456"`
}

// VerifyResetCode 验证重置验证码
// @Summary 验证重置验证码
// @Description 验证密码重置验证码是否有效
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body VerifyResetCodeRequest true "验证请求"
// @Success 200 {object} map[string]string "验证成功"
// @Failure 400 {object} ErrorResponse "验证码错误或已过期"
// @Router /api/v1/auth/password/verify-code [post]
func (h *PasswordResetHandler) VerifyResetCode(c *gin.Context) {
	var req VerifyResetCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid verify payload")
		return
	}

	var passwordReset models.PasswordReset
	if err := database.DB.Where("email = ? AND token = ?", req.Email, req.Code).First(&passwordReset).Error; err != nil {
		BadRequest(c, "code incorrect")
		return
	}

	if !passwordReset.IsValid() {
		if passwordReset.Used {
			BadRequest(c, "code already used")
		} else {
			BadRequest(c, "code expired")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "验证成功"})
}

// ResetPasswordRequest 重置密码请求
type ResetPasswordRequest struct {
	Email       string `json:"email" binding:"required,email" example:"test@example.com"`
	Code        string `json:"code" binding:"required,len=6" example:"123456"`
	NewPassword string `json:"new_password" binding:"required,min=6" example:"newpassword123"`
}

// ResetPassword 使用验证码重置密码
// @Summary 重置密码
// @Description 使用邮箱验证码设置新密码，成功后该用户所有未使用的重置验证码全部失效
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body ResetPasswordRequest true "重置密码请求"
// @Success 200 {object} map[string]string "密码重置成功"
// @Failure 400 {object} ErrorResponse "验证码错误或已过期"
// @Failure 500 {object} ErrorResponse "服务器错误"
// @Router /api/v1/auth/password/reset [post]
func (h *PasswordResetHandler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid reset payload")
		return
	}

	var passwordReset models.PasswordReset
	if err := database.DB.Where("email = ? AND token = ?", req.Email, req.Code).First(&passwordReset).Error; err != nil {
		BadRequest(c, "code incorrect")
		return
	}

	if !passwordReset.IsValid() {
		if passwordReset.Used {
			BadRequest(c, "code already used")
		} else {
			BadRequest(c, "code expired")
		}
		return
	}

	hashedPassword, err := hashPassword(req.NewPassword)
	if err != nil {
		InternalError(c, "failed to hash password")
		return
	}

	if err := database.DB.Model(&models.User{}).Where("id = ?", passwordReset.UserID).Update("password", hashedPassword).Error; err != nil {
		logrus.Errorf("更新密码失败: %v", err)
		InternalErrorWithDetails(c, "failed to update password", err)
		return
	}

	// 标记验证码为已使用，并使该用户所有未使用的验证码失效
	database.DB.Model(&passwordReset).Update("used", true)
	database.DB.Model(&models.PasswordReset{}).
		Where("user_id = ? AND used = ?", passwordReset.UserID, false).
		Update("used", true)

	c.JSON(http.StatusOK, gin.H{"message": "密码重置成功，请使用新密码登录"})
}
