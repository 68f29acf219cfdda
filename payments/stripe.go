package payments

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
	"github.com/stripe/stripe-go/v79/webhook"
)

// StatusPaid is the provider payment status that allows publication.
const StatusPaid = "paid"

// EventCheckoutCompleted is the notification type that confirms a checkout.
const EventCheckoutCompleted = "checkout.session.completed"

// CheckoutSession is the provider-neutral view of a hosted checkout.
type CheckoutSession struct {
	ID            string
	URL           string
	PaymentStatus string
	Metadata      map[string]string
}

// Event is a decoded provider notification.
type Event struct {
	ID             string
	Type           string
	Session        *CheckoutSession
	Payload        []byte
	SignatureValid bool
}

type CreateSessionParams struct {
	PriceID    string
	SuccessURL string
	CancelURL  string
	Metadata   map[string]string
}

// Provider abstracts the hosted payment provider so services and tests do not
// depend on the Stripe SDK directly.
type Provider interface {
	Name() string
	CreateCheckoutSession(params CreateSessionParams) (*CheckoutSession, error)
	GetCheckoutSession(id string) (*CheckoutSession, error)
	ParseEvent(payload []byte, signatureHeader string) (*Event, error)
}

type StripeProvider struct {
	api           *client.API
	webhookSecret string
}

func NewStripeProvider(secretKey, webhookSecret string) *StripeProvider {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeProvider{
		api:           api,
		webhookSecret: webhookSecret,
	}
}

func (p *StripeProvider) Name() string {
	return "stripe"
}

func (p *StripeProvider) CreateCheckoutSession(in CreateSessionParams) (*CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(in.PriceID),
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(in.SuccessURL),
		CancelURL:  stripe.String(in.CancelURL),
	}
	for key, value := range in.Metadata {
		params.AddMetadata(key, value)
	}
	params.SetIdempotencyKey(uuid.NewString())

	sess, err := p.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, err
	}
	return fromStripeSession(sess), nil
}

func (p *StripeProvider) GetCheckoutSession(id string) (*CheckoutSession, error) {
	sess, err := p.api.CheckoutSessions.Get(id, nil)
	if err != nil {
		return nil, err
	}
	return fromStripeSession(sess), nil
}

// ParseEvent decodes a webhook delivery, verifying the signature header when
// a signing secret is configured.
func (p *StripeProvider) ParseEvent(payload []byte, signatureHeader string) (*Event, error) {
	var stripeEvent stripe.Event
	signatureValid := false

	if p.webhookSecret != "" {
		verified, err := webhook.ConstructEvent(payload, signatureHeader, p.webhookSecret)
		if err != nil {
			return nil, err
		}
		stripeEvent = verified
		signatureValid = true
	} else if err := json.Unmarshal(payload, &stripeEvent); err != nil {
		return nil, err
	}

	event := &Event{
		ID:             stripeEvent.ID,
		Type:           string(stripeEvent.Type),
		Payload:        payload,
		SignatureValid: signatureValid,
	}

	if event.Type == EventCheckoutCompleted && stripeEvent.Data != nil {
		var sess stripe.CheckoutSession
		if err := json.Unmarshal(stripeEvent.Data.Raw, &sess); err != nil {
			return nil, err
		}
		event.Session = fromStripeSession(&sess)
	}

	return event, nil
}

func fromStripeSession(sess *stripe.CheckoutSession) *CheckoutSession {
	return &CheckoutSession{
		ID:            sess.ID,
		URL:           sess.URL,
		PaymentStatus: string(sess.PaymentStatus),
		Metadata:      sess.Metadata,
	}
}
