package payment

import (
	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/checkout/session"
)

type StripeService struct {
	secretKey  string
	successURL string
	cancelURL  string
}

func NewStripeService(secretKey, publicBaseURL string) *StripeService {
	stripe.Key = secretKey
	return &StripeService{
		secretKey:  secretKey,
		successURL: publicBaseURL + "/credits/success?session_id={CHECKOUT_SESSION_ID}",
		cancelURL:  publicBaseURL + "/credits/cancel",
	}
}

func (s *StripeService) CreateCheckoutSession(userEmail string, priceID string, metadata map[string]string) (*stripe.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		CustomerEmail: &userEmail,
		PaymentMethodTypes: stripe.StringSlice([]string{
			"card",
		}),
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(priceID),
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(s.successURL),
		CancelURL:  stripe.String(s.cancelURL),
	}

	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	return session.New(params)
}
