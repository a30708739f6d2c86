package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/hbjsyndicate/syndicate-api/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSender records every message and fails for recipients listed in failFor.
type fakeSender struct {
	mu      sync.Mutex
	sent    []*Message
	failFor map[string]error
	hook    func(ctx context.Context, msg *Message) error
}

func (f *fakeSender) Send(ctx context.Context, msg *Message) error {
	f.mu.Lock()
	f.sent = append(f.sent, msg)
	err := f.failFor[msg.To]
	hook := f.hook
	f.mu.Unlock()

	if hook != nil {
		if herr := hook(ctx, msg); herr != nil {
			return herr
		}
	}
	return err
}

func (f *fakeSender) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

func (f *fakeSender) byRecipient(to string) *Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range f.sent {
		if m.To == to {
			return m
		}
	}
	return nil
}

const (
	testInbox  = "inbox@hbjsyndicate.com"
	testClient = "john@example.com"
)

func testMailer(sender Sender) *ContactMailer {
	loc, _ := time.LoadLocation("Asia/Kolkata")
	return NewContactMailer(sender, MailerConfig{
		BusinessName:  "HBJ Syndicate",
		BusinessInbox: testInbox,
		Phone:         "+91 9173922112",
		WhatsAppURL:   "https://wa.me/919173922112",
		ContactEmail:  "info@hbjsyndicate.com",
		Location:      loc,
		SendTimeout:   time.Second,
	})
}

func testSubmission() models.Submission {
	return models.Submission{
		FirstName: "John",
		LastName:  "Doe",
		Email:     testClient,
		Service:   "web-development",
		Message:   "I need a new website built quickly.",
	}
}

func TestDispatch_BothDelivered(t *testing.T) {
	sender := &fakeSender{}
	err := testMailer(sender).Dispatch(context.Background(), testSubmission())

	require.NoError(t, err)
	assert.Equal(t, 2, sender.count())
	assert.NotNil(t, sender.byRecipient(testInbox))
	assert.NotNil(t, sender.byRecipient(testClient))
}

func TestDispatch_AnyFailureFailsWhole(t *testing.T) {
	boom := errors.New("535 authentication failed")

	tests := []struct {
		name         string
		failFor      map[string]error
		wantBusiness bool
		wantClient   bool
		wantPartial  bool
	}{
		{"business fails", map[string]error{testInbox: boom}, true, false, true},
		{"client fails", map[string]error{testClient: boom}, false, true, true},
		{"both fail", map[string]error{testInbox: boom, testClient: boom}, true, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender := &fakeSender{failFor: tt.failFor}
			err := testMailer(sender).Dispatch(context.Background(), testSubmission())

			require.Error(t, err)
			assert.ErrorIs(t, err, ErrDelivery)
			assert.ErrorIs(t, err, boom)
			assert.Equal(t, 2, sender.count(), "both sends are always attempted")

			var derr *DeliveryError
			require.ErrorAs(t, err, &derr)
			assert.Equal(t, tt.wantBusiness, derr.Business != nil)
			assert.Equal(t, tt.wantClient, derr.Client != nil)
			assert.Equal(t, tt.wantPartial, derr.Partial())
		})
	}
}

func TestDispatch_SendsConcurrently(t *testing.T) {
	var started sync.WaitGroup
	started.Add(2)
	release := make(chan struct{})
	go func() {
		started.Wait()
		close(release)
	}()

	sender := &fakeSender{hook: func(ctx context.Context, _ *Message) error {
		started.Done()
		select {
		case <-release:
			return nil
		case <-time.After(2 * time.Second):
			return errors.New("sibling send never started")
		}
	}}

	require.NoError(t, testMailer(sender).Dispatch(context.Background(), testSubmission()))
}

func TestDispatch_CallerCancellationDoesNotAbort(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sender := &fakeSender{hook: func(ctx context.Context, _ *Message) error {
		return ctx.Err()
	}}
	assert.NoError(t, testMailer(sender).Dispatch(ctx, testSubmission()))
}

func TestDispatch_SendTimeout(t *testing.T) {
	sender := &fakeSender{hook: func(ctx context.Context, msg *Message) error {
		if msg.To == testClient {
			<-ctx.Done()
			return ctx.Err()
		}
		return nil
	}}
	m := testMailer(sender)
	m.cfg.SendTimeout = 20 * time.Millisecond

	err := m.Dispatch(context.Background(), testSubmission())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.ErrorIs(t, err, ErrDelivery)
}

func TestDispatch_NotConfiguredSendsNothing(t *testing.T) {
	sender := &fakeSender{}
	m := testMailer(sender)
	m.cfg.BusinessInbox = ""

	err := m.Dispatch(context.Background(), testSubmission())
	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.Equal(t, 0, sender.count())
}

func TestBuildBusinessMessage(t *testing.T) {
	m := testMailer(&fakeSender{})
	s := testSubmission()
	s.Phone = "9173922112"
	s.Company = "Acme & Sons"
	s.Budget = "1l-3l"
	s.Timeline = "asap"
	s.Newsletter = true
	s.Message = "Line one\n<script>alert(1)</script>"

	at := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	msg, err := m.BuildBusinessMessage(s, at)
	require.NoError(t, err)

	assert.Equal(t, testInbox, msg.To)
	assert.Equal(t, testClient, msg.ReplyTo)
	assert.Equal(t, "New Contact Form Submission - Web Development", msg.Subject)

	for _, want := range []string{
		"John Doe",
		"mailto:john@example.com",
		"+91 91739 22112",
		"tel:+919173922112",
		"Acme &amp; Sons",
		"Web Development",
		"₹1,00,000 - ₹3,00,000",
		"ASAP",
		"Client subscribed to newsletter",
		"Submitted on 1/1/2025, 3:30:00 pm IST",
		"&lt;script&gt;",
	} {
		assert.Contains(t, msg.HTML, want)
	}
	assert.NotContains(t, msg.HTML, "<script>")
}

func TestBuildBusinessMessage_OmitsAbsentFields(t *testing.T) {
	msg, err := testMailer(&fakeSender{}).BuildBusinessMessage(testSubmission(), time.Now())
	require.NoError(t, err)

	for _, absent := range []string{"Phone:", "Company:", "Budget:", "Timeline:", "newsletter"} {
		assert.NotContains(t, msg.HTML, absent)
	}
}

func TestBuildClientMessage(t *testing.T) {
	s := testSubmission()
	s.Service = "cloud-solutions"

	msg, err := testMailer(&fakeSender{}).BuildClientMessage(s)
	require.NoError(t, err)

	assert.Equal(t, testClient, msg.To)
	assert.Empty(t, msg.ReplyTo)
	assert.Equal(t, "Thank you for contacting HBJ Syndicate - We'll be in touch soon!", msg.Subject)
	assert.Contains(t, msg.HTML, "Thank You, John!")
	assert.Contains(t, msg.HTML, "<strong>Cloud Solutions</strong>")
	for _, step := range NextSteps {
		assert.Contains(t, msg.HTML, strings.ReplaceAll(step, "'", "&#39;"))
	}
	assert.Contains(t, msg.HTML, "tel:+919173922112")
	assert.Contains(t, msg.HTML, "https://wa.me/919173922112")
	assert.Contains(t, msg.HTML, "mailto:info@hbjsyndicate.com")
	assert.Contains(t, msg.HTML, "The HBJ Syndicate Team")
}

func TestVerify(t *testing.T) {
	assert.NoError(t, testMailer(&fakeSender{}).Verify(context.Background()))

	m := testMailer(NewSMTPSender(SMTPConfig{Host: "smtp.example.com", Port: 587}))
	assert.ErrorIs(t, m.Verify(context.Background()), ErrNotConfigured)
}

func TestSMTPSender_RejectsBeforeDialing(t *testing.T) {
	s := NewSMTPSender(SMTPConfig{Host: "smtp.example.com", Port: 587})

	err := s.Send(context.Background(), &Message{To: "john@example.com", Subject: "x", HTML: "<p>x</p>"})
	assert.ErrorIs(t, err, ErrNotConfigured)

	s = NewSMTPSender(SMTPConfig{Host: "smtp.example.com", Port: 587, Username: "me@example.com", Password: "pw"})
	err = s.Send(context.Background(), &Message{To: "not an address", Subject: "x", HTML: "<p>x</p>"})
	assert.ErrorContains(t, err, "smtp to")
}

func TestFormatPhone(t *testing.T) {
	tests := []struct {
		in, display, link string
	}{
		{"", "", ""},
		{"9173922112", "+91 91739 22112", "+919173922112"},
		{"+1 650 253 0000", "+1 650-253-0000", "+16502530000"},
		{"call me maybe 12", "call me maybe 12", "12"},
	}
	for _, tt := range tests {
		display, link := formatPhone(tt.in)
		assert.Equal(t, tt.display, display, tt.in)
		assert.Equal(t, tt.link, link, tt.in)
	}
}
