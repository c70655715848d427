// File: internal/payment/provider.go
package payment

import (
	"context"
	"fmt"

	payos "github.com/payOSHQ/payos-lib-golang"

	"shortstay_backend/internal/config"
)

// CheckoutParams describes a checkout session to open with the provider.
type CheckoutParams struct {
	OrderCode   int64
	Amount      float64
	Description string
	ItemName    string
}

// CheckoutSession is an opened provider checkout.
type CheckoutSession struct {
	OrderCode   int64
	CheckoutURL string
}

// Provider statuses as reported back by Verify.
const (
	ProviderStatusPaid      = "PAID"
	ProviderStatusPending   = "PENDING"
	ProviderStatusCancelled = "CANCELLED"
)

// Provider abstracts the external payment gateway.
type Provider interface {
	CreateCheckout(ctx context.Context, params CheckoutParams) (*CheckoutSession, error)
	// Verify returns the provider-side status for an order code.
	Verify(ctx context.Context, orderCode int64) (string, error)
}

type payOSProvider struct {
	returnURL string
	cancelURL string
}

// NewPayOSProvider configures the payOS SDK and returns a Provider backed by
// it.
func NewPayOSProvider(cfg *config.Config) (Provider, error) {
	if err := payos.Key(cfg.PaymentClientID, cfg.PaymentAPIKey, cfg.PaymentChecksumKey); err != nil {
		return nil, fmt.Errorf("failed to configure payOS client: %w", err)
	}
	return &payOSProvider{
		returnURL: cfg.PaymentReturnURL,
		cancelURL: cfg.PaymentCancelURL,
	}, nil
}

func (p *payOSProvider) CreateCheckout(ctx context.Context, params CheckoutParams) (*CheckoutSession, error) {
	amount := int(params.Amount)
	body := payos.CheckoutRequestType{
		OrderCode:   params.OrderCode,
		Amount:      amount,
		Description: params.Description,
		Items: []payos.Item{
			{Name: params.ItemName, Quantity: 1, Price: amount},
		},
		ReturnUrl: p.returnURL,
		CancelUrl: p.cancelURL,
	}

	resp, err := payos.CreatePaymentLink(body)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment link: %w", err)
	}
	return &CheckoutSession{
		OrderCode:   params.OrderCode,
		CheckoutURL: resp.CheckoutUrl,
	}, nil
}

func (p *payOSProvider) Verify(ctx context.Context, orderCode int64) (string, error) {
	info, err := payos.GetPaymentLinkInformation(fmt.Sprintf("%d", orderCode))
	if err != nil {
		return "", fmt.Errorf("failed to fetch payment link information: %w", err)
	}
	return info.Status, nil
}
