package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"sitecms/internal/captcha"
	"sitecms/internal/logger"
	"sitecms/internal/metrics"
	"sitecms/internal/model"
	"sitecms/internal/notify"
	"sitecms/internal/repository"
)

// Submission channels, used in metrics and logs.
const (
	ChannelContact     = "contact"
	ChannelApplication = "application"
	ChannelReply       = "reply"
)

// ContactSubmission is the public contact form payload.
type ContactSubmission struct {
	Name         string `json:"name" form:"name" validate:"required,max=200"`
	Email        string `json:"email" form:"email" validate:"required,email,max=254"`
	Phone        string `json:"phone" form:"phone" validate:"max=50"`
	Subject      string `json:"subject" form:"subject" validate:"max=200"`
	Message      string `json:"message" form:"message" validate:"max=5000"`
	Honeypot     string `json:"honeypot" form:"honeypot" validate:"-"`
	CaptchaToken string `json:"captchaToken" form:"captchaToken" validate:"-"`
}

// ApplicationSubmission is the public job application payload. CV, when
// present, takes precedence over CVAssetURL. CVAssetURL must be absolute,
// so a client can never point an application at a managed file.
type ApplicationSubmission struct {
	Name         string      `json:"name" form:"name" validate:"required,max=200"`
	Email        string      `json:"email" form:"email" validate:"required,email,max=254"`
	Phone        string      `json:"phone" form:"phone" validate:"max=50"`
	Position     string      `json:"position" form:"position" validate:"max=200"`
	LinkedInURL  string      `json:"linkedinUrl" form:"linkedinUrl" validate:"omitempty,http_url,max=500"`
	Message      string      `json:"message" form:"message" validate:"max=5000"`
	CVAssetURL   string      `json:"cvAssetUrl" form:"cvAssetUrl" validate:"omitempty,http_url,max=500"`
	Honeypot     string      `json:"honeypot" form:"honeypot" validate:"-"`
	CaptchaToken string      `json:"captchaToken" form:"captchaToken" validate:"-"`
	CV           *UploadFile `json:"-" form:"-" validate:"-"`
}

// SubmitResult is returned for every accepted submission, including ones
// silently dropped by the honeypot.
type SubmitResult struct {
	ID string `json:"id"`
}

// IntakeOptions tunes the intake gateway.
type IntakeOptions struct {
	// DevBypass disables the CAPTCHA gate. Local development only.
	DevBypass bool
	// NotifyTimeout caps each background notification.
	NotifyTimeout time.Duration
	// Recipient receives submission notifications unless the company
	// configuration names a notification_email.
	Recipient string
}

// IntakeService runs the public submission pipeline and the admin inbox.
type IntakeService struct {
	contacts repository.ContactMessageRepository
	apps     repository.JobApplicationRepository
	assets   *AssetService
	audit    *AuditService
	content  *SingletonService
	verifier captcha.Verifier
	notifier notify.Notifier
	opts     IntakeOptions
	log      zerolog.Logger
	metrics  *metrics.Metrics

	wg sync.WaitGroup
}

// IntakeDeps groups the collaborators of IntakeService.
type IntakeDeps struct {
	Contacts     repository.ContactMessageRepository
	Applications repository.JobApplicationRepository
	Assets       *AssetService
	Audit        *AuditService
	Content      *SingletonService
	Verifier     captcha.Verifier
	Notifier     notify.Notifier
	Log          zerolog.Logger
	Metrics      *metrics.Metrics
}

// NewIntakeService constructs an IntakeService.
func NewIntakeService(d IntakeDeps, opts IntakeOptions) *IntakeService {
	if opts.NotifyTimeout <= 0 {
		opts.NotifyTimeout = 10 * time.Second
	}
	return &IntakeService{
		contacts: d.Contacts,
		apps:     d.Applications,
		assets:   d.Assets,
		audit:    d.Audit,
		content:  d.Content,
		verifier: d.Verifier,
		notifier: d.Notifier,
		opts:     opts,
		log:      d.Log,
		metrics:  d.Metrics,
	}
}

// Wait blocks until every background notification has finished.
func (s *IntakeService) Wait() {
	s.wg.Wait()
}

// SubmitContact accepts a contact form submission.
func (s *IntakeService) SubmitContact(ctx context.Context, sub ContactSubmission, meta RequestMeta) (*SubmitResult, error) {
	if s.trapped(ctx, ChannelContact, sub.Honeypot, meta) {
		return &SubmitResult{ID: uuid.NewString()}, nil
	}
	if err := s.gate(ctx, ChannelContact, sub.CaptchaToken, meta.IP); err != nil {
		return nil, err
	}

	trimStrings(&sub.Name, &sub.Email, &sub.Phone, &sub.Subject, &sub.Message)
	if err := validateStruct(sub); err != nil {
		s.metrics.Submission(ChannelContact, metrics.OutcomeInvalid)
		return nil, err
	}

	msg, err := s.contacts.Create(ctx, &model.ContactMessage{
		ID:        uuid.NewString(),
		Name:      sub.Name,
		Email:     sub.Email,
		Phone:     model.StringPtr(sub.Phone),
		Subject:   model.StringPtr(sub.Subject),
		Message:   sub.Message,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		s.metrics.Submission(ChannelContact, metrics.OutcomeFailed)
		return nil, &PersistenceError{Op: "create contact message", Err: err}
	}
	s.metrics.Submission(ChannelContact, metrics.OutcomeAccepted)

	s.dispatch(ctx, ChannelContact, func(ctx context.Context) notify.Message {
		return notify.ContactReceived(s.recipient(ctx), msg)
	})
	s.audit.LogEvent(ctx, AuditEvent{
		SubjectID: msg.ID,
		Email:     msg.Email,
		IP:        meta.IP,
		UserAgent: meta.UserAgent,
		Method:    model.AccessMethodContactForm,
		Success:   true,
	})
	return &SubmitResult{ID: msg.ID}, nil
}

// SubmitApplication accepts a job application, storing an uploaded CV
// only after the submission has passed the gate and field validation.
func (s *IntakeService) SubmitApplication(ctx context.Context, sub ApplicationSubmission, meta RequestMeta) (*SubmitResult, error) {
	if s.trapped(ctx, ChannelApplication, sub.Honeypot, meta) {
		return &SubmitResult{ID: uuid.NewString()}, nil
	}
	if err := s.gate(ctx, ChannelApplication, sub.CaptchaToken, meta.IP); err != nil {
		return nil, err
	}

	trimStrings(&sub.Name, &sub.Email, &sub.Phone, &sub.Position, &sub.LinkedInURL, &sub.Message, &sub.CVAssetURL)
	if err := s.validateApplication(sub); err != nil {
		s.metrics.Submission(ChannelApplication, metrics.OutcomeInvalid)
		return nil, err
	}

	cvRef := sub.CVAssetURL
	storedCV := false
	if sub.CV != nil {
		ref, err := s.assets.Store(ctx, *sub.CV, ClassDocument)
		if err != nil {
			s.metrics.Submission(ChannelApplication, metrics.OutcomeFailed)
			return nil, err
		}
		cvRef, storedCV = ref, true
	}

	app, err := s.apps.Create(ctx, &model.JobApplication{
		ID:          uuid.NewString(),
		Name:        sub.Name,
		Email:       sub.Email,
		Phone:       model.StringPtr(sub.Phone),
		Position:    model.StringPtr(sub.Position),
		LinkedInURL: model.StringPtr(sub.LinkedInURL),
		CVURL:       model.StringPtr(cvRef),
		Message:     model.StringPtr(sub.Message),
		CreatedAt:   time.Now().UTC(),
	})
	if err != nil {
		if storedCV {
			s.assets.Delete(ctx, cvRef)
		}
		s.metrics.Submission(ChannelApplication, metrics.OutcomeFailed)
		return nil, &PersistenceError{Op: "create job application", Err: err}
	}
	s.metrics.Submission(ChannelApplication, metrics.OutcomeAccepted)

	s.dispatch(ctx, ChannelApplication, func(ctx context.Context) notify.Message {
		return notify.ApplicationReceived(s.recipient(ctx), app)
	})
	s.audit.LogEvent(ctx, AuditEvent{
		SubjectID: app.ID,
		Email:     app.Email,
		IP:        meta.IP,
		UserAgent: meta.UserAgent,
		Method:    model.AccessMethodJobApplication,
		Success:   true,
	})
	return &SubmitResult{ID: app.ID}, nil
}

func (s *IntakeService) validateApplication(sub ApplicationSubmission) error {
	err := validateStruct(sub)
	var verr *ValidationError
	if err != nil && !errors.As(err, &verr) {
		return err
	}
	if verr == nil {
		verr = newValidationError("invalid submission", map[string]string{})
	}

	if sub.CV != nil {
		if err := s.assets.Validate(*sub.CV, ClassDocument); err != nil {
			var cverr *ValidationError
			if !errors.As(err, &cverr) {
				return err
			}
			verr.Fields["cv"] = cverr.Fields["file"]
		}
	}

	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}

// Reply appends an admin reply to a contact message and emails it to the
// original sender. The result depends only on the reply being stored.
func (s *IntakeService) Reply(ctx context.Context, messageID, text string, meta RequestMeta) (*model.ContactReply, error) {
	if messageID == "" {
		return nil, ErrIDRequired
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, newValidationError("reply is empty", map[string]string{"message": "is required"})
	}

	original, err := s.contacts.FindByID(ctx, messageID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &NotFoundError{Resource: "contact message", ID: messageID}
		}
		return nil, &PersistenceError{Op: "find contact message", Err: err}
	}

	reply, err := s.contacts.CreateReply(ctx, &model.ContactReply{
		ID:        uuid.NewString(),
		MessageID: messageID,
		Reply:     text,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &NotFoundError{Resource: "contact message", ID: messageID}
		}
		return nil, &PersistenceError{Op: "create reply", Err: err}
	}

	s.dispatch(ctx, ChannelReply, func(ctx context.Context) notify.Message {
		return notify.ReplySent(original, reply, s.recipient(ctx))
	})
	s.audit.LogEvent(ctx, AuditEvent{
		SubjectID: messageID,
		Email:     original.Email,
		IP:        meta.IP,
		UserAgent: meta.UserAgent,
		Method:    model.AccessMethodContactReply,
		Success:   true,
	})
	return reply, nil
}

// trapped reports whether the honeypot field was filled in. Trapped
// submissions get a normal-looking response and nothing else.
func (s *IntakeService) trapped(ctx context.Context, channel, honeypot string, meta RequestMeta) bool {
	if strings.TrimSpace(honeypot) == "" {
		return false
	}
	s.metrics.Submission(channel, metrics.OutcomeHoneypot)
	log := logger.FromContext(ctx, s.log)
	log.Info().Str("channel", channel).Str("ip", meta.IP).Msg("honeypot submission dropped")
	return true
}

// gate enforces the CAPTCHA check. It fails closed: an unreachable
// verifier rejects the submission.
func (s *IntakeService) gate(ctx context.Context, channel, token, ip string) error {
	if s.opts.DevBypass {
		return nil
	}
	if strings.TrimSpace(token) == "" {
		s.metrics.Submission(channel, metrics.OutcomeRejected)
		return &SecurityValidationError{Reason: "captcha token is required"}
	}

	err := s.verifier.Verify(ctx, token, ip)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, captcha.ErrNotConfigured):
		return &ConfigurationError{Setting: "CAPTCHA_SECRET", Err: err}
	default:
		s.metrics.Submission(channel, metrics.OutcomeRejected)
		log := logger.FromContext(ctx, s.log)
		log.Info().Err(err).Str("channel", channel).Str("ip", ip).Msg("captcha rejected")
		return &SecurityValidationError{Reason: "captcha verification failed", Err: err}
	}
}

// dispatch sends a notification in the background, bounded by the notify
// timeout. Failures are logged and counted only.
func (s *IntakeService) dispatch(ctx context.Context, channel string, build func(ctx context.Context) notify.Message) {
	log := logger.FromContext(ctx, s.log)
	bg := context.WithoutCancel(ctx)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ctx, cancel := context.WithTimeout(bg, s.opts.NotifyTimeout)
		defer cancel()

		if err := s.notifier.Notify(ctx, build(ctx)); err != nil {
			s.metrics.NotifyFailed(channel)
			log.Warn().Err(err).Str("channel", channel).Msg("notification failed")
		}
	}()
}

// recipient prefers the notification address from the company
// configuration over the configured default.
func (s *IntakeService) recipient(ctx context.Context) string {
	if s.content != nil {
		rec, err := s.content.Get(ctx, model.KindConfig)
		if err == nil {
			if addr := strings.TrimSpace(rec.String("notification_email")); addr != "" {
				return addr
			}
		}
	}
	return s.opts.Recipient
}

func trimStrings(ptrs ...*string) {
	for _, p := range ptrs {
		*p = strings.TrimSpace(*p)
	}
}
