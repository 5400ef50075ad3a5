package mail

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// SMTPConfig SMTP 설정 구조체
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
}

// SMTPClient gomail 다이얼러로 이메일을 발송합니다
type SMTPClient struct {
	config SMTPConfig
	dialer *gomail.Dialer
	logger *zap.Logger
}

// NewSMTPClient SMTP 클라이언트 생성
func NewSMTPClient(cfg SMTPConfig, logger *zap.Logger) *SMTPClient {
	return &SMTPClient{
		config: cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		logger: logger,
	}
}

// BuildMessage 발송할 메시지를 구성합니다
func (m *SMTPClient) BuildMessage(to, subject, body string) *gomail.Message {
	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.config.From, m.config.FromName)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)
	msg.AddAlternative("text/html", RenderHTML(subject, body))
	return msg
}

// SendMail 이메일 발송. gomail 은 컨텍스트를 받지 않으므로 시작 전에만 취소를 확인합니다.
func (m *SMTPClient) SendMail(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if m.config.Host == "" {
		return fmt.Errorf("SMTP 호스트가 설정되지 않았습니다")
	}

	if err := m.dialer.DialAndSend(m.BuildMessage(to, subject, body)); err != nil {
		m.logger.Error("이메일 발송 실패",
			zap.String("to", to),
			zap.String("subject", subject),
			zap.Error(err),
		)
		return fmt.Errorf("이메일 발송 실패: %w", err)
	}

	m.logger.Info("이메일 발송 성공",
		zap.String("to", to),
		zap.String("subject", subject),
	)
	return nil
}
