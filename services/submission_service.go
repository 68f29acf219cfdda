package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vincentbastille10/SpectraAIDirectory/config"
	"github.com/vincentbastille10/SpectraAIDirectory/models"
	"github.com/vincentbastille10/SpectraAIDirectory/payments"
	"github.com/vincentbastille10/SpectraAIDirectory/repositories"
)

// ErrMissingFields is returned when name or url are empty after trimming.
var ErrMissingFields = errors.New("name and url are required")

// slugInsertAttempts bounds the retry loop when a concurrent submission wins
// the race for the same slug between the probe and the insert.
const slugInsertAttempts = 3

type SubmissionService interface {
	Submit(req models.SubmitToolRequest) (redirectURL string, toolID uint, err error)
	ConfirmCheckout(sessionID string, toolID uint) (*models.Tool, error)
	CancelCheckout(toolID uint) (bool, error)
	HandleWebhook(payload []byte, signatureHeader string) error
	PurgeStaleDrafts() (int64, error)
}

type submissionService struct {
	toolRepo  repositories.ToolRepository
	eventRepo repositories.WebhookEventRepository
	provider  payments.Provider
	cfg       *config.Config
}

func NewSubmissionService(
	toolRepo repositories.ToolRepository,
	eventRepo repositories.WebhookEventRepository,
	provider payments.Provider,
	cfg *config.Config,
) SubmissionService {
	return &submissionService{
		toolRepo:  toolRepo,
		eventRepo: eventRepo,
		provider:  provider,
		cfg:       cfg,
	}
}

// Submit creates the draft row, opens a hosted checkout session and returns
// the provider URL the browser should be redirected to. A provider failure
// deletes the just-created draft before surfacing.
func (s *submissionService) Submit(req models.SubmitToolRequest) (string, uint, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.URL = strings.TrimSpace(req.URL)
	req.ShortDescription = strings.TrimSpace(req.ShortDescription)
	req.LongDescription = strings.TrimSpace(req.LongDescription)
	req.LogoURL = strings.TrimSpace(req.LogoURL)
	req.Category = strings.TrimSpace(req.Category)
	req.Tags = strings.TrimSpace(req.Tags)

	if req.Name == "" || req.URL == "" {
		return "", 0, ErrMissingFields
	}

	tool, err := s.createDraft(req)
	if err != nil {
		return "", 0, err
	}

	sess, err := s.provider.CreateCheckoutSession(payments.CreateSessionParams{
		PriceID:    s.cfg.StripePriceID,
		SuccessURL: s.cfg.SuccessURL(tool.ID),
		CancelURL:  s.cfg.CancelURL(tool.ID),
		Metadata:   sessionMetadata(tool),
	})
	if err != nil {
		// Compensate: the draft must not outlive a failed initiation.
		if _, delErr := s.toolRepo.DeleteDraft(tool.ID); delErr != nil {
			err = fmt.Errorf("%w (draft cleanup also failed: %v)", err, delErr)
		}
		return "", 0, models.ErrorProvider{Op: "create checkout session", Err: err}
	}

	if err := s.toolRepo.SetCheckoutSession(tool.ID, sess.ID); err != nil {
		return "", 0, err
	}

	return sess.URL, tool.ID, nil
}

func (s *submissionService) createDraft(req models.SubmitToolRequest) (*models.Tool, error) {
	var lastErr error

	for attempt := 0; attempt < slugInsertAttempts; attempt++ {
		slug, err := AssignSlug(s.toolRepo, req.Name)
		if err != nil {
			return nil, err
		}

		tool := &models.Tool{
			Name:             req.Name,
			URL:              req.URL,
			ShortDescription: req.ShortDescription,
			LongDescription:  req.LongDescription,
			LogoURL:          req.LogoURL,
			Category:         req.Category,
			Tags:             req.Tags,
			Slug:             slug,
			Published:        false,
		}

		err = s.toolRepo.Create(tool)
		if err == nil {
			return tool, nil
		}
		if !isDuplicateKey(err) {
			return nil, err
		}
		lastErr = err
	}

	return nil, fmt.Errorf("could not assign a unique slug: %w", lastErr)
}

// ConfirmCheckout handles the browser return. The session is fetched from the
// provider and must report a paid status before anything is published.
func (s *submissionService) ConfirmCheckout(sessionID string, toolID uint) (*models.Tool, error) {
	sess, err := s.provider.GetCheckoutSession(sessionID)
	if err != nil {
		return nil, models.ErrorProvider{Op: "retrieve checkout session", Err: err}
	}

	if sess.PaymentStatus != payments.StatusPaid {
		return nil, models.ErrorPaymentUnconfirmed{SessionID: sessionID}
	}

	return s.publishForSession(sess, toolID)
}

// publishForSession publishes the draft row when it still exists, otherwise
// re-creates it from session metadata. Both paths are idempotent: publishing
// a published row is a no-op and the metadata insert dedupes on session id.
func (s *submissionService) publishForSession(sess *payments.CheckoutSession, toolID uint) (*models.Tool, error) {
	if toolID != 0 {
		tool, err := s.toolRepo.GetByID(toolID)
		if err == nil {
			if err := s.toolRepo.Publish(tool.ID); err != nil {
				return nil, err
			}
			return s.toolRepo.GetByID(tool.ID)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	// The row is gone (or was never created): rebuild it from the fields
	// carried on the session.
	if existing, err := s.toolRepo.GetBySessionID(sess.ID); err == nil {
		if err := s.toolRepo.Publish(existing.ID); err != nil {
			return nil, err
		}
		return s.toolRepo.GetByID(existing.ID)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	return s.insertFromMetadata(sess)
}

func (s *submissionService) insertFromMetadata(sess *payments.CheckoutSession) (*models.Tool, error) {
	name := strings.TrimSpace(sess.Metadata["name"])
	rawURL := strings.TrimSpace(sess.Metadata["url"])
	if name == "" || rawURL == "" {
		return nil, models.ErrorNotFound{Message: "checkout session carries no tool"}
	}

	var lastErr error
	for attempt := 0; attempt < slugInsertAttempts; attempt++ {
		slug, err := AssignSlug(s.toolRepo, name)
		if err != nil {
			return nil, err
		}

		tool := &models.Tool{
			Name:              name,
			URL:               rawURL,
			ShortDescription:  sess.Metadata["short_description"],
			LongDescription:   sess.Metadata["long_description"],
			LogoURL:           sess.Metadata["logo_url"],
			Category:          sess.Metadata["category"],
			Tags:              sess.Metadata["tags"],
			Slug:              slug,
			CheckoutSessionID: sess.ID,
			Published:         true,
		}

		err = s.toolRepo.Create(tool)
		if err == nil {
			return tool, nil
		}
		if !isDuplicateKey(err) {
			return nil, err
		}
		lastErr = err
	}

	return nil, fmt.Errorf("could not assign a unique slug: %w", lastErr)
}

// CancelCheckout deletes the draft iff it is still unpublished.
func (s *submissionService) CancelCheckout(toolID uint) (bool, error) {
	return s.toolRepo.DeleteDraft(toolID)
}

// HandleWebhook processes an asynchronous provider notification. Deliveries
// are deduplicated on the provider event id, so a replay publishes nothing
// twice.
func (s *submissionService) HandleWebhook(payload []byte, signatureHeader string) error {
	event, err := s.provider.ParseEvent(payload, signatureHeader)
	if err != nil {
		return err
	}

	eventID := event.ID
	if eventID == "" {
		eventID = uuid.NewString()
	}

	record := &models.WebhookEvent{
		Provider:        s.provider.Name(),
		ProviderEventID: eventID,
		EventType:       event.Type,
		PayloadJSON:     string(event.Payload),
		SignatureValid:  event.SignatureValid,
	}

	created, err := s.eventRepo.Record(record)
	if err != nil {
		return err
	}
	if !created {
		// Duplicate delivery: already handled.
		return nil
	}

	if event.Type != payments.EventCheckoutCompleted || event.Session == nil {
		return s.eventRepo.MarkProcessed(record.ID, "")
	}

	var toolID uint
	if raw := event.Session.Metadata["tool_id"]; raw != "" {
		if parsed, parseErr := strconv.ParseUint(raw, 10, 32); parseErr == nil {
			toolID = uint(parsed)
		}
	}

	_, err = s.publishForSession(event.Session, toolID)
	processingError := ""
	if err != nil {
		processingError = err.Error()
	}
	if markErr := s.eventRepo.MarkProcessed(record.ID, processingError); markErr != nil && err == nil {
		err = markErr
	}
	return err
}

// PurgeStaleDrafts removes drafts older than the configured TTL. Invoked once
// at startup; abandoned checkouts otherwise leak draft rows forever.
func (s *submissionService) PurgeStaleDrafts() (int64, error) {
	if s.cfg.DraftTTL == 0 {
		return 0, nil
	}
	return s.toolRepo.DeleteStaleDrafts(time.Now().Add(-s.cfg.DraftTTL))
}

func sessionMetadata(tool *models.Tool) map[string]string {
	return map[string]string{
		"tool_id":           strconv.FormatUint(uint64(tool.ID), 10),
		"name":              tool.Name,
		"url":               tool.URL,
		"short_description": tool.ShortDescription,
		"long_description":  tool.LongDescription,
		"logo_url":          tool.LogoURL,
		"category":          tool.Category,
		"tags":              tool.Tags,
	}
}

func isDuplicateKey(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(err.Error(), "duplicate key") ||
		strings.Contains(err.Error(), "UNIQUE constraint failed")
}
