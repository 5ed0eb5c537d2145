// Package email relays contact-form submissions over SMTP.
package email

import (
	"fmt"
	"strings"

	"github.com/wneessen/go-mail"
)

// Client sends contact messages through an SMTP relay.
type Client struct {
	host      string
	port      int
	user      string
	password  string
	fromName  string
	fromEmail string
	toEmail   string
}

// NewClient creates an SMTP client. host, user, password, and the from/to
// addresses must all be set; validation happens at the config layer.
func NewClient(host string, port int, user, password, fromName, fromEmail, toEmail string) *Client {
	return &Client{
		host:      host,
		port:      port,
		user:      user,
		password:  password,
		fromName:  fromName,
		fromEmail: fromEmail,
		toEmail:   toEmail,
	}
}

// ContactMessage is one contact-form submission.
type ContactMessage struct {
	Name        string
	Email       string
	Phone       string
	ProjectType string
	Message     string
}

// SendContactMessage relays the submission to the site inbox, with reply-to
// set to the visitor's address.
func (c *Client) SendContactMessage(msg ContactMessage) error {
	m := mail.NewMsg()
	if err := m.From(fmt.Sprintf("%s <%s>", c.fromName, c.fromEmail)); err != nil {
		return fmt.Errorf("email: set from: %w", err)
	}
	if err := m.To(c.toEmail); err != nil {
		return fmt.Errorf("email: set to: %w", err)
	}
	if err := m.ReplyTo(msg.Email); err != nil {
		return fmt.Errorf("email: set reply-to: %w", err)
	}

	subject := "Contact Form: " + msg.Name
	if msg.ProjectType != "" {
		subject += " - " + msg.ProjectType
	}
	m.Subject(subject)
	m.SetBodyString(mail.TypeTextPlain, renderBody(msg))

	client, err := mail.NewClient(c.host,
		mail.WithPort(c.port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(c.user),
		mail.WithPassword(c.password),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return fmt.Errorf("email: create client (host=%s port=%d): %w", c.host, c.port, err)
	}
	if err := client.DialAndSend(m); err != nil {
		return fmt.Errorf("email: send (host=%s port=%d): %w", c.host, c.port, err)
	}
	return nil
}

func renderBody(msg ContactMessage) string {
	var b strings.Builder
	b.WriteString("New Contact Form Submission\n\n")
	fmt.Fprintf(&b, "From: %s\n", msg.Name)
	fmt.Fprintf(&b, "Email: %s\n", msg.Email)
	fmt.Fprintf(&b, "Phone: %s\n", orDefault(msg.Phone, "Not provided"))
	fmt.Fprintf(&b, "Project Type: %s\n\n", orDefault(msg.ProjectType, "Not specified"))
	b.WriteString("Message:\n")
	b.WriteString(msg.Message)
	b.WriteString("\n")
	return b.String()
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
