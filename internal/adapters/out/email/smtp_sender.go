package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"mime"
	"net"
	"net/smtp"
	"strconv"
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

var codeTemplate = template.Must(template.New("code").Parse(`<!DOCTYPE html>
<html>
<body>
<p>Hello {{.Name}},</p>
<p>{{.Purpose}}: your code is <strong>{{.Code}}</strong>.</p>
<p>The code is valid for a short time only. If you did not request it, ignore this message.</p>
</body>
</html>
`))

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPSender implements ports.EmailSender over an SMTP relay.
type SMTPSender struct {
	cfg  SMTPConfig
	auth smtp.Auth
	send sendFunc
}

func NewSMTPSender(cfg SMTPConfig) *SMTPSender {
	var auth smtp.Auth
	if cfg.Username != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}
	return &SMTPSender{cfg: cfg, auth: auth, send: smtp.SendMail}
}

func (s *SMTPSender) SendCode(ctx context.Context, to, displayName, purposeLabel, code string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg, err := s.render(to, displayName, purposeLabel, code)
	if err != nil {
		return err
	}

	addr := net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))
	if err = s.send(addr, s.auth, s.cfg.From, []string{to}, msg); err != nil {
		return fmt.Errorf("send %s code to %s: %w", purposeLabel, to, err)
	}
	return nil
}

func (s *SMTPSender) render(to, displayName, purposeLabel, code string) ([]byte, error) {
	var body bytes.Buffer
	err := codeTemplate.Execute(&body, struct {
		Name, Purpose, Code string
	}{displayName, purposeLabel, code})
	if err != nil {
		return nil, fmt.Errorf("render code email: %w", err)
	}

	var msg bytes.Buffer
	fmt.Fprintf(&msg, "From: %s\r\n", s.cfg.From)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", purposeLabel))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"utf-8\"\r\n\r\n")
	msg.Write(body.Bytes())
	return msg.Bytes(), nil
}
