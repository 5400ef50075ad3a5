package repository

import (
	"context"

	"github.com/wekeepgrowing/school-backend/services/auth/internal/domain/repository"
	"github.com/wekeepgrowing/school-backend/services/auth/internal/infrastructure/mail"
)

// MailRepository SMTP 메일 저장소 어댑터
type MailRepository struct {
	client *mail.SMTPClient
}

// NewMailRepository 메일 레포지토리 어댑터 생성
func NewMailRepository(client *mail.SMTPClient) repository.MailRepository {
	return &MailRepository{client: client}
}

// SendMail 이메일 발송
func (m *MailRepository) SendMail(ctx context.Context, to, subject, body string) error {
	return m.client.SendMail(ctx, to, subject, body)
}
