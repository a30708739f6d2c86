package service

import (
	"context"
	"fmt"
	"time"

	"github.com/hbjsyndicate/syndicate-api/internal/models"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

const tracerName = "github.com/hbjsyndicate/syndicate-api/internal/service"

const (
	subjectBusinessNotificationFmt = "New Contact Form Submission - %s"
	subjectClientConfirmationFmt   = "Thank you for contacting %s - We'll be in touch soon!"

	submittedAtLayout = "2/1/2006, 3:04:05 pm MST"

	defaultSendTimeout = 15 * time.Second
)

// NextSteps is the process described to every submitter.
var NextSteps = []string{
	"Our team will review your requirements within 24 hours",
	"We'll prepare a customized proposal for your project",
	"Schedule a consultation call to discuss your vision",
	"Provide you with a detailed timeline and quote",
}

// Message is one rendered email.
type Message struct {
	To      string
	ReplyTo string
	Subject string
	HTML    string
}

// Sender delivers a rendered message.
type Sender interface {
	Send(ctx context.Context, msg *Message) error
}

// Verifier checks that the transport is reachable.
type Verifier interface {
	Verify(ctx context.Context) error
}

// MailerConfig holds the business details the contact emails are built from.
type MailerConfig struct {
	BusinessName  string
	BusinessInbox string
	Phone         string
	WhatsAppURL   string
	ContactEmail  string
	Location      *time.Location
	// SendTimeout bounds each individual send.
	SendTimeout time.Duration
}

// ContactMailer renders and sends the business notification and the client
// confirmation for one submission.
type ContactMailer struct {
	sender Sender
	cfg    MailerConfig
	now    func() time.Time
	tracer trace.Tracer
}

// NewContactMailer creates a mailer that delivers through sender.
func NewContactMailer(sender Sender, cfg MailerConfig) *ContactMailer {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.SendTimeout <= 0 {
		cfg.SendTimeout = defaultSendTimeout
	}
	return &ContactMailer{
		sender: sender,
		cfg:    cfg,
		now:    time.Now,
		tracer: otel.Tracer(tracerName),
	}
}

// BuildBusinessMessage renders the notification sent to the business inbox.
func (m *ContactMailer) BuildBusinessMessage(s models.Submission, at time.Time) (*Message, error) {
	if m.cfg.BusinessInbox == "" {
		return nil, fmt.Errorf("%w: business inbox is empty", ErrNotConfigured)
	}

	phone, phoneLink := formatPhone(s.Phone)
	service := models.Services.Label(s.Service)

	html, err := renderEmailTemplate(templateBusinessNotification, businessEmailData{
		baseEmailData: baseEmailData{
			Title:   "New Contact Form Submission",
			Heading: "New Contact Form Submission",
		},
		FirstName:   s.FirstName,
		LastName:    s.LastName,
		Email:       s.Email,
		Phone:       phone,
		PhoneLink:   phoneLink,
		Company:     s.Company,
		Service:     service,
		Budget:      models.Budgets.Label(s.Budget),
		Timeline:    models.Timelines.Label(s.Timeline),
		Message:     s.Message,
		Newsletter:  s.Newsletter,
		SubmittedAt: at.In(m.cfg.Location).Format(submittedAtLayout),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}

	return &Message{
		To:      m.cfg.BusinessInbox,
		ReplyTo: s.Email,
		Subject: fmt.Sprintf(subjectBusinessNotificationFmt, service),
		HTML:    html,
	}, nil
}

// BuildClientMessage renders the confirmation sent back to the submitter.
func (m *ContactMailer) BuildClientMessage(s models.Submission) (*Message, error) {
	phone, phoneLink := formatPhone(m.cfg.Phone)

	html, err := renderEmailTemplate(templateClientConfirmation, clientEmailData{
		baseEmailData: baseEmailData{
			Title:   fmt.Sprintf(subjectClientConfirmationFmt, m.cfg.BusinessName),
			Heading: fmt.Sprintf("Thank You, %s!", s.FirstName),
		},
		BusinessName: m.cfg.BusinessName,
		Service:      models.Services.Label(s.Service),
		NextSteps:    NextSteps,
		Phone:        phone,
		PhoneLink:    phoneLink,
		WhatsAppURL:  m.cfg.WhatsAppURL,
		ContactEmail: m.cfg.ContactEmail,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}

	return &Message{
		To:      s.Email,
		Subject: fmt.Sprintf(subjectClientConfirmationFmt, m.cfg.BusinessName),
		HTML:    html,
	}, nil
}

// Dispatch renders both emails and sends them concurrently. It returns nil
// only if both were delivered; otherwise a *DeliveryError naming the failed
// side(s). Nothing is sent when rendering fails. A delivered email is not
// recalled when its sibling fails.
//
// Cancellation of ctx does not abort the sends: once started, a dispatch
// runs until both sends finish or hit the per-send timeout.
func (m *ContactMailer) Dispatch(ctx context.Context, s models.Submission) error {
	ctx, span := m.tracer.Start(ctx, "contact.dispatch",
		trace.WithAttributes(attribute.String("contact.service", s.Service)))
	defer span.End()

	business, err := m.BuildBusinessMessage(s, m.now())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "render")
		return err
	}
	client, err := m.BuildClientMessage(s)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "render")
		return err
	}

	sendCtx := context.WithoutCancel(ctx)
	var businessErr, clientErr error

	// A plain Group: a failing send must not cancel its sibling.
	var g errgroup.Group
	g.Go(func() error {
		businessErr = m.send(sendCtx, "business", business)
		return businessErr
	})
	g.Go(func() error {
		clientErr = m.send(sendCtx, "client", client)
		return clientErr
	})

	if g.Wait() == nil {
		return nil
	}

	derr := &DeliveryError{Business: businessErr, Client: clientErr}
	span.RecordError(derr)
	span.SetStatus(codes.Error, "delivery")
	return derr
}

func (m *ContactMailer) send(ctx context.Context, kind string, msg *Message) error {
	ctx, span := m.tracer.Start(ctx, "contact.send",
		trace.WithAttributes(attribute.String("contact.email_kind", kind)))
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, m.cfg.SendTimeout)
	defer cancel()

	if err := m.sender.Send(ctx, msg); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "send")
		return err
	}
	return nil
}

// Verify checks the transport if the sender supports it.
func (m *ContactMailer) Verify(ctx context.Context) error {
	v, ok := m.sender.(Verifier)
	if !ok {
		return nil
	}
	return v.Verify(ctx)
}
