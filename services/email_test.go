package services

import (
	"errors"
	"net/smtp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEmailService(t *testing.T, cfg emailConfig, send sendMailFunc) *EmailService {
	t.Helper()
	svc := &EmailService{cfg: cfg, sendMail: send}
	require.NoError(t, svc.init())
	return svc
}

var inviteData = ChallengeInviteEmailData{
	SenderName: "Alex",
	Subject:    "Algebra",
	Link:       "http://localhost:3000/invite?code=BUDDY_LX2_ABC123",
	Message:    "Bet you can't beat 90%",
	Reward:     50,
}

func TestRenderChallengeInvite(t *testing.T) {
	svc := newTestEmailService(t, emailConfig{}, nil)

	body, err := svc.RenderChallengeInvite(inviteData)
	require.NoError(t, err)
	assert.Contains(t, body, "Alex just finished a Algebra session")
	assert.Contains(t, body, "50 gems")
	assert.Contains(t, body, "code=BUDDY_LX2_ABC123")
	assert.Contains(t, body, "Bet you can&#39;t beat 90%")
}

func TestSendChallengeInvite_Disabled(t *testing.T) {
	called := false
	svc := newTestEmailService(t, emailConfig{}, func(string, smtp.Auth, string, []string, []byte) error {
		called = true
		return nil
	})

	require.NoError(t, svc.SendChallengeInvite("friend@example.com", inviteData))
	assert.False(t, called)
	assert.False(t, svc.Enabled())
}

func TestSendChallengeInvite(t *testing.T) {
	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg []byte

	svc := newTestEmailService(t, emailConfig{
		Host:     "smtp.example.com",
		Port:     "587",
		From:     "noreply@example.com",
		FromName: "Varsity Tutors",
	}, func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, msg
		return nil
	})

	require.NoError(t, svc.SendChallengeInvite("friend@example.com", inviteData))
	assert.Equal(t, "smtp.example.com:587", gotAddr)
	assert.Equal(t, "noreply@example.com", gotFrom)
	assert.Equal(t, []string{"friend@example.com"}, gotTo)
	assert.Contains(t, string(gotMsg), "Subject: Alex challenged you in Algebra!")
	assert.Contains(t, string(gotMsg), "Content-Type: text/html")
}

func TestSendChallengeInvite_TransportError(t *testing.T) {
	svc := newTestEmailService(t, emailConfig{Host: "smtp.example.com", Port: "587"},
		func(string, smtp.Auth, string, []string, []byte) error {
			return errors.New("connection refused")
		})

	err := svc.SendChallengeInvite("friend@example.com", inviteData)
	assert.ErrorContains(t, err, "connection refused")
}
