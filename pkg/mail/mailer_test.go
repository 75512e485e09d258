package mail

import (
	"context"
	"crypto/tls"
	"io"
	"net"
	"net/smtp"
	"strings"
	"testing"
	"time"
)

func TestNewSMTPMailerValidatesConfig(t *testing.T) {
	_, err := NewSMTPMailer(SMTPSettings{
		Enabled: true,
	})
	if err == nil || !strings.Contains(err.Error(), "host is required") {
		t.Fatalf("expected host validation error, got %v", err)
	}

	mailer, err := NewSMTPMailer(SMTPSettings{
		Enabled: false,
	})
	if err != nil {
		t.Fatalf("expected disabled configuration to succeed: %v", err)
	}
	if mailer == nil {
		t.Fatal("expected mailer to be returned")
	}
}

func TestSMTPMailerSendDisabled(t *testing.T) {
	mailer, err := NewSMTPMailer(SMTPSettings{
		Enabled: false,
	})
	if err != nil {
		t.Fatalf("unexpected error creating mailer: %v", err)
	}

	err = mailer.Send(context.Background(), Message{
		To:      []string{"test@example.com"},
		Subject: "Test",
		HTML:    "<p>Hello</p>",
	})
	if err != ErrSMTPDisabled {
		t.Fatalf("expected ErrSMTPDisabled, got %v", err)
	}
}

func TestSMTPMailerDefaultTimeout(t *testing.T) {
	mailer, err := NewSMTPMailer(SMTPSettings{
		Enabled: true,
		Host:    "smtp.example.com",
		Port:    587,
		From:    "no-reply@example.com",
		UseTLS:  true,
	})
	if err != nil {
		t.Fatalf("unexpected error creating mailer: %v", err)
	}

	sm, ok := mailer.(*smtpMailer)
	if !ok {
		t.Fatalf("expected smtpMailer type")
	}
	if sm.cfg.Timeout != 10*time.Second {
		t.Fatalf("expected timeout to be 10s, got %v", sm.cfg.Timeout)
	}
}

func TestSMTPMailerSendRequiresRecipients(t *testing.T) {
	mailer, err := NewSMTPMailer(SMTPSettings{
		Enabled: true,
		Host:    "smtp.example.com",
		Port:    587,
		From:    "no-reply@example.com",
	})
	if err != nil {
		t.Fatalf("unexpected error creating mailer: %v", err)
	}

	err = mailer.Send(context.Background(), Message{
		To:      []string{"   ", "\t"},
		Subject: "No recipients",
		HTML:    "body",
	})
	if err == nil || !strings.Contains(err.Error(), "at least one recipient") {
		t.Fatalf("expected missing recipient error, got %v", err)
	}
}

func TestSMTPMailerSendValidatesAddresses(t *testing.T) {
	mailer, err := NewSMTPMailer(SMTPSettings{
		Enabled: true,
		Host:    "smtp.example.com",
		Port:    587,
	})
	if err != nil {
		t.Fatalf("unexpected error creating mailer: %v", err)
	}

	err = mailer.Send(context.Background(), Message{
		From: "invalid-from",
		To:   []string{"user@example.com"},
	})
	if err == nil || !strings.Contains(err.Error(), "invalid from address") {
		t.Fatalf("expected invalid from error, got %v", err)
	}

	err = mailer.Send(context.Background(), Message{
		From: "no-reply@example.com",
		To:   []string{"user@example.com", "bad-address"},
	})
	if err == nil || !strings.Contains(err.Error(), "invalid recipient address") {
		t.Fatalf("expected invalid recipient error, got %v", err)
	}
}

type fakeSMTPClient struct {
	mailFrom string
	rcpts    []string
	data     strings.Builder
	quit     bool
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

func (f *fakeSMTPClient) Mail(from string) error          { f.mailFrom = from; return nil }
func (f *fakeSMTPClient) Rcpt(to string) error            { f.rcpts = append(f.rcpts, to); return nil }
func (f *fakeSMTPClient) Data() (io.WriteCloser, error)   { return nopWriteCloser{&f.data}, nil }
func (f *fakeSMTPClient) Quit() error                     { f.quit = true; return nil }
func (f *fakeSMTPClient) Close() error                    { return nil }
func (f *fakeSMTPClient) StartTLS(*tls.Config) error      { return nil }
func (f *fakeSMTPClient) Auth(smtp.Auth) error            { return nil }
func (f *fakeSMTPClient) Extension(string) (bool, string) { return false, "" }

func TestSMTPMailerSendWritesHTMLMessage(t *testing.T) {
	fake := &fakeSMTPClient{}
	server, client := net.Pipe()
	defer server.Close()

	mailer := &smtpMailer{
		cfg: SMTPSettings{
			Enabled: true,
			Host:    "smtp.example.com",
			Port:    587,
			From:    "no-reply@ivoice.chat",
		},
		dialFn: func(ctx context.Context, cfg SMTPSettings) (net.Conn, smtpClient, error) {
			return client, fake, nil
		},
		authFn: func(smtpClient, SMTPSettings) error { return nil },
	}

	err := mailer.Send(context.Background(), Message{
		To:      []string{"alice@example.com"},
		Subject: "Verify your email - iVoice Chat",
		HTML:    "<b>123456</b>",
	})
	if err != nil {
		t.Fatalf("send error: %v", err)
	}

	if fake.mailFrom != "no-reply@ivoice.chat" {
		t.Fatalf("unexpected MAIL FROM: %q", fake.mailFrom)
	}
	if len(fake.rcpts) != 1 || fake.rcpts[0] != "alice@example.com" {
		t.Fatalf("unexpected recipients: %v", fake.rcpts)
	}
	payload := fake.data.String()
	if !strings.Contains(payload, "Content-Type: text/html") {
		t.Fatalf("expected HTML content type, got %q", payload)
	}
	if !strings.Contains(payload, "<b>123456</b>") {
		t.Fatalf("expected body in payload, got %q", payload)
	}
	if !fake.quit {
		t.Fatal("expected QUIT to be issued")
	}
}

func TestFormatMessageSanitisesSubject(t *testing.T) {
	content := formatMessage("from@example.com", []string{"to@example.com"}, "Subject\r\nBreak", "Body")
	if !strings.Contains(content, "Subject: Subject  Break") {
		t.Fatalf("expected sanitised subject, got %q", content)
	}
	if !strings.HasSuffix(content, "Body") {
		t.Fatalf("expected body suffix, got %q", content)
	}
}

func TestFormatMessageSeparatesHeadersFromBody(t *testing.T) {
	content := formatMessage("from@example.com", []string{"to@example.com"}, "Hello", "<p>Body</p>")

	head, body, found := strings.Cut(content, "\r\n\r\n")
	if !found {
		t.Fatalf("expected blank line between headers and body, got %q", content)
	}
	if body != "<p>Body</p>" {
		t.Fatalf("unexpected body %q", body)
	}
	if strings.Contains(head, "<p>") {
		t.Fatalf("body leaked into header block: %q", head)
	}
	if !strings.HasSuffix(head, "Content-Type: text/html; charset=UTF-8") {
		t.Fatalf("expected Content-Type as final header, got %q", head)
	}
}

func TestVerificationEmail(t *testing.T) {
	body, err := VerificationEmail("alice", "123456")
	if err != nil {
		t.Fatalf("render error: %v", err)
	}

	if !strings.Contains(body, "Hi alice,") {
		t.Fatalf("expected greeting, got %q", body)
	}
	if !strings.Contains(body, "123456") {
		t.Fatal("expected code to appear in body")
	}
	if !strings.Contains(body, "valid for 10 minutes") {
		t.Fatal("expected validity note in body")
	}
}

func TestVerificationEmailEscapesUsername(t *testing.T) {
	body, err := VerificationEmail("<script>alert(1)</script>", "123456")
	if err != nil {
		t.Fatalf("render error: %v", err)
	}
	if strings.Contains(body, "<script>") {
		t.Fatal("expected username to be HTML-escaped")
	}
}

func TestUniqueAddresses(t *testing.T) {
	addresses := []string{"alice@example.com", "bob@example.com", " alice@example.com ", "", "bob@example.com"}
	result := uniqueAddresses(addresses)
	if len(result) != 2 {
		t.Fatalf("expected 2 unique addresses, got %d: %v", len(result), result)
	}
}
