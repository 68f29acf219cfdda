package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/vincentbastille10/SpectraAIDirectory/models"
	"github.com/vincentbastille10/SpectraAIDirectory/payments"
)

// memToolRepo is an in-memory ToolRepository with the same observable
// behavior as the Postgres implementation, including duplicate-slug errors.
type memToolRepo struct {
	mu     sync.Mutex
	nextID uint
	tools  map[uint]*models.Tool
}

func newMemToolRepo() *memToolRepo {
	return &memToolRepo{nextID: 1, tools: map[uint]*models.Tool{}}
}

func (r *memToolRepo) Create(tool *models.Tool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.tools {
		if t.Slug == tool.Slug {
			return errors.New(`duplicate key value violates unique constraint "idx_tools_slug"`)
		}
	}
	tool.ID = r.nextID
	r.nextID++
	now := time.Now()
	tool.CreatedAt = now
	tool.UpdatedAt = now
	cp := *tool
	r.tools[tool.ID] = &cp
	return nil
}

func (r *memToolRepo) GetByID(id uint) (*models.Tool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tools[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *memToolRepo) GetBySlug(slug string) (*models.Tool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.tools {
		if t.Slug == slug {
			cp := *t
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memToolRepo) GetBySessionID(sessionID string) (*models.Tool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.tools {
		if t.CheckoutSessionID == sessionID {
			cp := *t
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memToolRepo) published() []models.Tool {
	var out []models.Tool
	for _, t := range r.tools {
		if t.Published {
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

func matchesQuery(t models.Tool, q string) bool {
	q = strings.ToLower(q)
	for _, field := range []string{t.Name, t.URL, t.ShortDescription, t.LongDescription, t.Category, t.Tags} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

func (r *memToolRepo) GetPublished(params models.ToolListParams, featuredSlug string) ([]models.Tool, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var filtered []models.Tool
	for _, t := range r.published() {
		if params.Query == "" || matchesQuery(t, params.Query) {
			filtered = append(filtered, t)
		}
	}

	if featuredSlug != "" {
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].Slug == featuredSlug && filtered[j].Slug != featuredSlug
		})
	}

	total := int64(len(filtered))
	start := (params.Page - 1) * params.Limit
	if start > len(filtered) {
		start = len(filtered)
	}
	end := start + params.Limit
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[start:end], total, nil
}

func (r *memToolRepo) GetLatestPublished(limit int) ([]models.Tool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.published()
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memToolRepo) GetAllPublished() ([]models.Tool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.published(), nil
}

func (r *memToolRepo) GetPublishedCategories() ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	seen := map[string]bool{}
	var out []string
	for _, t := range r.published() {
		if t.Category != "" && !seen[t.Category] {
			seen[t.Category] = true
			out = append(out, t.Category)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (r *memToolRepo) SlugExists(slug string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.tools {
		if t.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (r *memToolRepo) Publish(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.tools[id]; ok {
		t.Published = true
		t.UpdatedAt = time.Now()
	}
	return nil
}

func (r *memToolRepo) DeleteDraft(id uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.tools[id]; ok && !t.Published {
		delete(r.tools, id)
		return true, nil
	}
	return false, nil
}

func (r *memToolRepo) DeleteStaleDrafts(olderThan time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var purged int64
	for id, t := range r.tools {
		if !t.Published && t.CreatedAt.Before(olderThan) {
			delete(r.tools, id)
			purged++
		}
	}
	return purged, nil
}

func (r *memToolRepo) SetCheckoutSession(id uint, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.tools[id]; ok {
		t.CheckoutSessionID = sessionID
	}
	return nil
}

func (r *memToolRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.tools)
}

// memEventRepo is an in-memory WebhookEventRepository.
type memEventRepo struct {
	mu     sync.Mutex
	nextID uint
	events map[string]*models.WebhookEvent
}

func newMemEventRepo() *memEventRepo {
	return &memEventRepo{nextID: 1, events: map[string]*models.WebhookEvent{}}
}

func (r *memEventRepo) Record(event *models.WebhookEvent) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := event.Provider + "|" + event.ProviderEventID
	if _, ok := r.events[key]; ok {
		return false, nil
	}
	event.ID = r.nextID
	r.nextID++
	event.CreatedAt = time.Now()
	cp := *event
	r.events[key] = &cp
	return true, nil
}

func (r *memEventRepo) MarkProcessed(id uint, processingError string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.events {
		if e.ID == id {
			now := time.Now()
			e.ProcessedAt = &now
			e.ProcessingError = processingError
		}
	}
	return nil
}

func (r *memEventRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

// fakeProvider stands in for the Stripe client.
type fakeProvider struct {
	mu        sync.Mutex
	counter   int
	sessions  map[string]*payments.CheckoutSession
	createErr error
	getErr    error
	nextEvent *payments.Event
	parseErr  error
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{sessions: map[string]*payments.CheckoutSession{}}
}

func (p *fakeProvider) Name() string { return "stripe" }

func (p *fakeProvider) CreateCheckoutSession(params payments.CreateSessionParams) (*payments.CheckoutSession, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.createErr != nil {
		return nil, p.createErr
	}
	p.counter++
	id := fmt.Sprintf("cs_test_%d", p.counter)
	sess := &payments.CheckoutSession{
		ID:            id,
		URL:           "https://checkout.stripe.test/pay/" + id,
		PaymentStatus: "unpaid",
		Metadata:      params.Metadata,
	}
	p.sessions[id] = sess
	cp := *sess
	return &cp, nil
}

func (p *fakeProvider) GetCheckoutSession(id string) (*payments.CheckoutSession, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.getErr != nil {
		return nil, p.getErr
	}
	sess, ok := p.sessions[id]
	if !ok {
		return nil, errors.New("no such checkout session: " + id)
	}
	cp := *sess
	return &cp, nil
}

func (p *fakeProvider) ParseEvent(payload []byte, signatureHeader string) (*payments.Event, error) {
	if p.parseErr != nil {
		return nil, p.parseErr
	}
	return p.nextEvent, nil
}

func (p *fakeProvider) markPaid(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if sess, ok := p.sessions[id]; ok {
		sess.PaymentStatus = payments.StatusPaid
	}
}

func (p *fakeProvider) lastSessionID() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return fmt.Sprintf("cs_test_%d", p.counter)
}
