package mail

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestBuildMessage(t *testing.T) {
	client := NewSMTPClient(SMTPConfig{Host: "smtp.test", Port: 587, From: "noreply@school.test", FromName: "School"}, zap.NewNop())

	msg := client.BuildMessage("alice@school.test", "Your one-time password", "Welcome. Your OTP is 123456")

	assert.Equal(t, []string{"alice@school.test"}, msg.GetHeader("To"))
	assert.Equal(t, []string{"Your one-time password"}, msg.GetHeader("Subject"))

	var buf bytes.Buffer
	_, err := msg.WriteTo(&buf)
	require.NoError(t, err)
	assert.True(t, strings.Contains(buf.String(), "Welcome. Your OTP is 123456"))
}

func TestSendMail_CancelledContext(t *testing.T) {
	client := NewSMTPClient(SMTPConfig{Host: "smtp.test", Port: 587}, zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, client.SendMail(ctx, "a@b.c", "s", "b"), context.Canceled)
}

func TestSendMail_NoHost(t *testing.T) {
	client := NewSMTPClient(SMTPConfig{}, zap.NewNop())
	assert.Error(t, client.SendMail(context.Background(), "a@b.c", "s", "b"))
}

func TestRenderHTML_Escapes(t *testing.T) {
	out := RenderHTML("t", "<script>")
	assert.Contains(t, out, "&lt;script&gt;")
}
