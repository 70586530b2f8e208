package mail

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"go.uber.org/zap"
	gomail "gopkg.in/gomail.v2"

	"github.com/marketplace/backend/internal/domain/identity"
	"github.com/marketplace/backend/internal/domain/ordering"
	"github.com/marketplace/backend/internal/infrastructure/config"
)

// Mailer renders and sends notification emails over SMTP. With mail
// disabled in config it logs the message instead of sending, so local
// setups run without an SMTP server.
type Mailer struct {
	dialer *gomail.Dialer
	cfg    config.MailConfig
	logger *zap.Logger

	confirmTmpl *template.Template
	orderTmpl   *template.Template
}

// New creates a mailer from SMTP settings.
func New(cfg config.MailConfig, logger *zap.Logger) (*Mailer, error) {
	confirmTmpl, err := template.New("confirm").Parse(confirmationBody)
	if err != nil {
		return nil, fmt.Errorf("failed to parse confirmation template: %w", err)
	}
	orderTmpl, err := template.New("order").Parse(orderPlacedBody)
	if err != nil {
		return nil, fmt.Errorf("failed to parse order template: %w", err)
	}

	return &Mailer{
		dialer:      gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		cfg:         cfg,
		logger:      logger,
		confirmTmpl: confirmTmpl,
		orderTmpl:   orderTmpl,
	}, nil
}

// SendConfirmation emails the account activation key.
func (m *Mailer) SendConfirmation(_ context.Context, email, name, key string) error {
	var body bytes.Buffer
	err := m.confirmTmpl.Execute(&body, map[string]string{
		"Name": name,
		"Key":  key,
	})
	if err != nil {
		return fmt.Errorf("failed to render confirmation email: %w", err)
	}
	return m.send(email, "Confirm your registration", body.String())
}

// NotifyCustomer emails the order summary to the buyer.
func (m *Mailer) NotifyCustomer(_ context.Context, order *ordering.Order, customer *identity.User, contact *identity.Contact) error {
	body, err := m.renderOrder(order, customer, contact, false)
	if err != nil {
		return err
	}
	subject := fmt.Sprintf("Your order %s has been placed", shortID(order))
	return m.send(customer.Email, subject, body)
}

// NotifyAdmin emails the order summary to the operator address.
func (m *Mailer) NotifyAdmin(_ context.Context, order *ordering.Order, customer *identity.User, contact *identity.Contact) error {
	if m.cfg.AdminEmail == "" {
		return nil
	}
	body, err := m.renderOrder(order, customer, contact, true)
	if err != nil {
		return err
	}
	subject := fmt.Sprintf("New order %s from %s", shortID(order), customer.Email)
	return m.send(m.cfg.AdminEmail, subject, body)
}

type orderItemView struct {
	Name     string
	Quantity int
	Price    string
	Subtotal string
}

func (m *Mailer) renderOrder(order *ordering.Order, customer *identity.User, contact *identity.Contact, forAdmin bool) (string, error) {
	items := make([]orderItemView, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, orderItemView{
			Name:     item.ProductInfo.Product.Name,
			Quantity: item.Quantity,
			Price:    item.ProductInfo.Price.StringFixed(2),
			Subtotal: item.Subtotal().StringFixed(2),
		})
	}

	var body bytes.Buffer
	err := m.orderTmpl.Execute(&body, map[string]interface{}{
		"OrderID":  shortID(order),
		"Customer": customer.FullName(),
		"Email":    customer.Email,
		"Address":  contact.Address(),
		"Phone":    contact.Phone,
		"Items":    items,
		"Total":    order.Total().StringFixed(2),
		"ForAdmin": forAdmin,
	})
	if err != nil {
		return "", fmt.Errorf("failed to render order email: %w", err)
	}
	return body.String(), nil
}

func (m *Mailer) send(to, subject, htmlBody string) error {
	if !m.cfg.Enabled {
		m.logger.Info("Mail disabled, dropping message",
			zap.String("to", to),
			zap.String("subject", subject))
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}

func shortID(order *ordering.Order) string {
	id := order.ID.String()
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}
