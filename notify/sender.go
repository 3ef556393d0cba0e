// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"mime/multipart"
	"net"
	"net/http"
	"net/smtp"
	"net/textproto"
	"time"
)

// Sender delivers a rendered message to one address.
type Sender interface {
	Send(ctx context.Context, to string, msg Message) error
}

// EmailSender delivers through an SMTP relay as multipart text and HTML.
type EmailSender struct {
	Addr string // host:port
	From string
	Auth smtp.Auth

	// sendMail is smtp.SendMail outside tests
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewEmailSender creates an SMTP sender. Username may be empty for relays
// that do not require authentication.
func NewEmailSender(addr, from, username, password string) *EmailSender {
	s := &EmailSender{Addr: addr, From: from, sendMail: smtp.SendMail}
	if username != "" {
		host, _, err := net.SplitHostPort(addr)
		if err != nil {
			host = addr
		}
		s.Auth = smtp.PlainAuth("", username, password, host)
	}
	return s
}

func (s *EmailSender) Send(ctx context.Context, to string, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	body, err := buildMIME(s.From, to, msg)
	if err != nil {
		return err
	}
	if err := s.sendMail(s.Addr, s.Auth, s.From, []string{to}, body); err != nil {
		return fmt.Errorf("smtp send to %s: %w", to, err)
	}
	return nil
}

func buildMIME(from, to string, msg Message) ([]byte, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fmt.Fprintf(&buf, "From: %s\r\n", from)
	fmt.Fprintf(&buf, "To: %s\r\n", to)
	fmt.Fprintf(&buf, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", msg.Subject))
	fmt.Fprintf(&buf, "MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/alternative; boundary=%s\r\n\r\n", mw.Boundary())

	parts := []struct {
		contentType string
		body        string
	}{
		{"text/plain; charset=UTF-8", msg.Text},
		{"text/html; charset=UTF-8", msg.HTML},
	}
	for _, p := range parts {
		w, err := mw.CreatePart(textproto.MIMEHeader{"Content-Type": {p.contentType}})
		if err != nil {
			return nil, fmt.Errorf("failed to build message: %w", err)
		}
		if _, err := io.WriteString(w, p.body); err != nil {
			return nil, fmt.Errorf("failed to build message: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("failed to build message: %w", err)
	}

	return buf.Bytes(), nil
}

// SMSSender posts messages to an SMS gateway webhook as
// {"to": "...", "body": "..."}.
type SMSSender struct {
	URL    string
	Client *http.Client
}

func NewSMSSender(url string) *SMSSender {
	return &SMSSender{URL: url, Client: &http.Client{Timeout: 10 * time.Second}}
}

type smsPayload struct {
	To   string `json:"to"`
	Body string `json:"body"`
}

func (s *SMSSender) Send(ctx context.Context, to string, msg Message) error {
	payload, err := json.Marshal(smsPayload{To: to, Body: msg.Subject + "\n" + msg.Text})
	if err != nil {
		return fmt.Errorf("failed to encode sms payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.URL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build sms request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return fmt.Errorf("sms gateway: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("sms gateway returned %s", resp.Status)
	}
	return nil
}

// LogSender writes messages to the log instead of delivering them.
// Used when no transport is configured.
type LogSender struct{}

func (LogSender) Send(ctx context.Context, to string, msg Message) error {
	slog.Info("notification not delivered, no transport configured",
		"to", to,
		"subject", msg.Subject,
	)
	return nil
}
