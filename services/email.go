package services

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"

	"github.com/alphabatem/common/context"
	"github.com/kelseyhightower/envconfig"
	log "github.com/sirupsen/logrus"
)

const EMAIL_SVC = "email_svc"

type emailConfig struct {
	Host     string `envconfig:"SMTP_HOST"`
	Port     string `envconfig:"SMTP_PORT" default:"587"`
	Username string `envconfig:"SMTP_USERNAME"`
	Password string `envconfig:"SMTP_PASSWORD"`
	From     string `envconfig:"FROM_EMAIL"`
	FromName string `envconfig:"FROM_NAME" default:"Varsity Tutors"`
}

type sendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// EmailService delivers challenge invites by email. Without SMTP_HOST it logs and skips.
type EmailService struct {
	context.DefaultService

	cfg      emailConfig
	invite   *template.Template
	sendMail sendMailFunc
}

type ChallengeInviteEmailData struct {
	SenderName string
	Subject    string
	Link       string
	Message    string
	Reward     int64
}

func (svc EmailService) Id() string {
	return EMAIL_SVC
}

func (svc *EmailService) Configure(ctx *context.Context) error {
	if err := envconfig.Process("", &svc.cfg); err != nil {
		return err
	}
	if err := svc.init(); err != nil {
		return err
	}
	return svc.DefaultService.Configure(ctx)
}

func (svc *EmailService) init() (err error) {
	svc.invite, err = template.New("challenge_invite").Parse(challengeInviteEmailHTML)
	if err != nil {
		return fmt.Errorf("failed to parse challenge invite template: %w", err)
	}
	if svc.sendMail == nil {
		svc.sendMail = smtp.SendMail
	}
	return nil
}

func (svc *EmailService) Enabled() bool {
	return svc != nil && svc.cfg.Host != ""
}

const challengeInviteEmailHTML = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>{{.SenderName}} challenged you!</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background-color: #4F46E5; color: white; padding: 20px; text-align: center; }
        .content { padding: 20px; background-color: #f9f9f9; }
        .button { display: inline-block; padding: 12px 24px; background-color: #4F46E5; color: white; text-decoration: none; border-radius: 5px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>🎯 Buddy Challenge</h1>
        </div>
        <div class="content">
            <p>{{.SenderName}} just finished a {{.Subject}} session and thinks you can't beat their score.</p>
            {{if .Message}}<p><em>"{{.Message}}"</em></p>{{end}}
            <p>Accept the challenge and earn <strong>{{.Reward}} gems</strong>.</p>
            <p style="text-align: center;">
                <a href="{{.Link}}" class="button">Accept Challenge</a>
            </p>
            <p>Or copy this link into your browser:</p>
            <p style="word-break: break-all;">{{.Link}}</p>
        </div>
    </div>
</body>
</html>
`

func (svc *EmailService) RenderChallengeInvite(data ChallengeInviteEmailData) (string, error) {
	var body bytes.Buffer
	if err := svc.invite.Execute(&body, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return body.String(), nil
}

func (svc *EmailService) SendChallengeInvite(to string, data ChallengeInviteEmailData) error {
	if !svc.Enabled() {
		log.WithField("to", to).Warn("SMTP not configured, skipping challenge invite email")
		return nil
	}

	body, err := svc.RenderChallengeInvite(data)
	if err != nil {
		return err
	}

	subject := fmt.Sprintf("%s challenged you in %s!", data.SenderName, data.Subject)
	return svc.send(to, subject, body)
}

func (svc *EmailService) send(to, subject, body string) error {
	auth := smtp.PlainAuth("", svc.cfg.Username, svc.cfg.Password, svc.cfg.Host)

	msg := []byte(fmt.Sprintf(
		"From: %s <%s>\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=UTF-8\r\n"+
			"\r\n"+
			"%s",
		svc.cfg.FromName, svc.cfg.From, to, subject, body))

	err := svc.sendMail(svc.cfg.Host+":"+svc.cfg.Port, auth, svc.cfg.From, []string{to}, msg)
	if err != nil {
		log.WithError(err).WithFields(log.Fields{"to": to, "subject": subject}).Error("Failed to send email")
		return fmt.Errorf("failed to send email: %w", err)
	}

	log.WithFields(log.Fields{"to": to, "subject": subject}).Info("Email sent successfully")
	return nil
}
