// Package mailer sends transactional email over SMTP: contact-form relay to
// the cafe inbox and the admin newsletter.
package mailer

import (
	"fmt"
	"html"
	"strings"

	gomail "github.com/wneessen/go-mail"
)

type Mailer struct {
	host         string
	port         int
	user         string
	pass         string
	contactEmail string
	baseURL      string
}

func New(host string, port int, user, pass, contactEmail, baseURL string) *Mailer {
	return &Mailer{
		host:         host,
		port:         port,
		user:         user,
		pass:         pass,
		contactEmail: contactEmail,
		baseURL:      strings.TrimRight(baseURL, "/"),
	}
}

func (m *Mailer) Configured() bool {
	return m.host != "" && m.user != "" && m.pass != "" && m.contactEmail != ""
}

func (m *Mailer) client() (*gomail.Client, error) {
	opts := []gomail.Option{
		gomail.WithPort(m.port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(m.user),
		gomail.WithPassword(m.pass),
	}
	if m.port == 465 {
		opts = append(opts, gomail.WithSSL())
	} else {
		opts = append(opts, gomail.WithTLSPolicy(gomail.TLSOpportunistic))
	}
	return gomail.NewClient(m.host, opts...)
}

// SendContact relays a contact-form message to the cafe inbox, with the
// customer's address as Reply-To.
func (m *Mailer) SendContact(name, email, message string) error {
	if !m.Configured() {
		return fmt.Errorf("smtp not configured")
	}

	msg := gomail.NewMsg()
	if err := msg.FromFormat("НейроКофейня", m.user); err != nil {
		return err
	}
	if err := msg.To(m.contactEmail); err != nil {
		return err
	}
	if err := msg.ReplyTo(email); err != nil {
		return err
	}
	msg.Subject(fmt.Sprintf("Вопрос с сайта от %s", name))
	msg.SetBodyString(gomail.TypeTextPlain,
		fmt.Sprintf("Имя: %s\nEmail: %s\n\nСообщение:\n%s", name, email, message))
	msg.AddAlternativeString(gomail.TypeTextHTML, fmt.Sprintf(
		"<p><strong>Имя:</strong> %s</p><p><strong>Email:</strong> <a href=\"mailto:%s\">%s</a></p><p><strong>Сообщение:</strong></p><p>%s</p>",
		html.EscapeString(name), html.EscapeString(email), html.EscapeString(email),
		strings.ReplaceAll(html.EscapeString(message), "\n", "<br>")))

	client, err := m.client()
	if err != nil {
		return err
	}
	return client.DialAndSend(msg)
}

// Recipient is a newsletter target with its personal unsubscribe token.
type Recipient struct {
	Email            string
	UnsubscribeToken string
}

// SendNewsletter sends the campaign to every recipient individually and
// returns sent/failed counts. A per-recipient failure does not stop the run.
func (m *Mailer) SendNewsletter(recipients []Recipient, subject, htmlContent string) (sent, failed int) {
	for _, r := range recipients {
		if err := m.sendNewsletterOne(r, subject, htmlContent); err != nil {
			failed++
			continue
		}
		sent++
	}
	return sent, failed
}

func (m *Mailer) sendNewsletterOne(r Recipient, subject, htmlContent string) error {
	msg := gomail.NewMsg()
	if err := msg.FromFormat("НейроКофейня", m.user); err != nil {
		return err
	}
	if err := msg.To(r.Email); err != nil {
		return err
	}
	msg.Subject(subject)

	unsub := fmt.Sprintf("%s/api/newsletter/unsubscribe?token=%s", m.baseURL, r.UnsubscribeToken)
	body := htmlContent + fmt.Sprintf(
		"<hr><p style=\"font-size:12px;color:#888\"><a href=\"%s\">Отписаться от рассылки</a></p>", unsub)
	msg.SetBodyString(gomail.TypeTextHTML, body)

	client, err := m.client()
	if err != nil {
		return err
	}
	return client.DialAndSend(msg)
}
