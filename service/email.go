package service

import (
	"fmt"

	"moneta/config"

	"gopkg.in/gomail.v2"
)

// EmailService 邮件服务
type EmailService struct {
	cfg *config.EmailConfig
}

// NewEmailService 创建邮件服务
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	return &EmailService{cfg: cfg}
}

// SendPasswordResetCode 发送密码重置验证码邮件
func (s *EmailService) SendPasswordResetCode(toEmail, username, code string) error {
	if !s.cfg.Enabled {
		return fmt.Errorf("邮件服务未启用，请配置 MONETA_EMAIL_ENABLED=true")
	}

	subject := "【Moneta 记账】密码重置验证码"
	body := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: 'Microsoft YaHei', Arial, sans-serif; padding: 20px; background: #f5f5f5;">
    <div style="max-width: 560px; margin: 0 auto; background: #fff; border-radius: 12px; padding: 32px;">
        <h2 style="margin-top: 0; color: #1d4ed8;">Moneta 记账</h2>
        <p>尊敬的 <strong>%s</strong>，您好！</p>
        <p>我们收到了您的密码重置请求，您的验证码为：</p>
        <p style="font-size: 32px; letter-spacing: 8px; font-weight: 700; color: #1d4ed8; text-align: center;">%s</p>
        <p style="color: #856404; background: #fff3cd; padding: 12px; border-radius: 6px;">
            验证码有效期为 10 分钟。如果您没有请求重置密码，请忽略此邮件。
        </p>
        <p style="color: #6c757d; font-size: 12px;">此邮件由系统自动发送，请勿回复。</p>
    </div>
</body>
</html>
`, username, code)

	return s.sendEmail(toEmail, subject, body)
}

// SendTestEmail 发送测试邮件，用于校验邮件配置
func (s *EmailService) SendTestEmail(toEmail string) error {
	if !s.cfg.Enabled {
		return fmt.Errorf("邮件服务未启用")
	}

	subject := "【Moneta 记账】邮件配置测试"
	body := `
<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; padding: 20px;">
    <h2>邮件配置成功</h2>
    <p>如果您收到这封邮件，说明邮件服务配置正确。</p>
    <p style="color: #666;">—— Moneta 记账</p>
</body>
</html>
`
	return s.sendEmail(toEmail, subject, body)
}

// sendEmail 发送邮件
func (s *EmailService) sendEmail(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.cfg.Username, s.cfg.From))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Username, s.cfg.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("发送邮件失败: %w", err)
	}

	return nil
}
