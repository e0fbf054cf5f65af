package service

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/pixmora/pixmora-backend/internal/apperr"
	"github.com/pixmora/pixmora-backend/internal/models"
	"github.com/pixmora/pixmora-backend/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v74"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newCreditService(db *gorm.DB) *CreditService {
	return NewCreditService(
		repository.NewCreditAccountRepository(db),
		repository.NewUserRepository(db),
		repository.NewCreditPackageRepository(db),
		repository.NewCreditPurchaseRepository(db),
		nil, // no Stripe calls in these tests
		zap.NewNop(),
	)
}

func TestCreditAndBalance(t *testing.T) {
	db := newTestDB(t)
	svc := newCreditService(db)
	user := createUser(t, db, "carol", "carol@example.com")

	require.NoError(t, svc.Credit(user.ID, 25))

	balance, err := svc.GetBalance(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 25, balance)
}

func TestDebit_InsufficientFundsLeavesBalance(t *testing.T) {
	db := newTestDB(t)
	svc := newCreditService(db)
	user := createUser(t, db, "carol", "carol@example.com")
	require.NoError(t, svc.Credit(user.ID, 5))

	err := svc.Debit(user.ID, 10)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindInsufficientCredits))

	balance, err := svc.GetBalance(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, balance)
}

func TestDebit_ExactBalance(t *testing.T) {
	db := newTestDB(t)
	svc := newCreditService(db)
	user := createUser(t, db, "carol", "carol@example.com")
	require.NoError(t, svc.Credit(user.ID, 10))

	require.NoError(t, svc.Debit(user.ID, 10))

	balance, err := svc.GetBalance(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, balance)
}

func TestCreditDebit_NegativeAmountRejected(t *testing.T) {
	db := newTestDB(t)
	svc := newCreditService(db)
	user := createUser(t, db, "carol", "carol@example.com")

	assert.True(t, apperr.IsKind(svc.Credit(user.ID, -1), apperr.KindValidation))
	assert.True(t, apperr.IsKind(svc.Debit(user.ID, -1), apperr.KindValidation))
}

func TestHandleStripeWebhook_CompletesPurchaseOnce(t *testing.T) {
	db := newTestDB(t)
	svc := newCreditService(db)
	user := createUser(t, db, "carol", "carol@example.com")

	pkg := &models.CreditPackage{Name: "100 Credits", Credits: 100, Price: 9.99, IsActive: true}
	require.NoError(t, db.Create(pkg).Error)

	purchase := &models.CreditPurchase{
		UserID:          user.ID,
		PackageID:       pkg.ID,
		Credits:         pkg.Credits,
		Price:           pkg.Price,
		StripeSessionID: "cs_test_123",
		Status:          models.PurchaseStatusPending,
	}
	require.NoError(t, repository.NewCreditPurchaseRepository(db).Create(purchase))

	event := &stripe.Event{
		Type: "checkout.session.completed",
		Data: &stripe.EventData{
			Raw: json.RawMessage(fmt.Sprintf(`{"id": %q}`, purchase.StripeSessionID)),
		},
	}

	require.NoError(t, svc.HandleStripeWebhook(event))

	balance, err := svc.GetBalance(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, balance)

	// Stripe retries webhooks; a replay must not credit twice.
	require.NoError(t, svc.HandleStripeWebhook(event))
	balance, err = svc.GetBalance(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, balance)
}

// Events for sessions this service never opened (another environment on the
// same endpoint) must be acked, not errored, or Stripe retries forever.
func TestHandleStripeWebhook_UnknownSessionAcked(t *testing.T) {
	db := newTestDB(t)
	svc := newCreditService(db)

	for _, eventType := range []string{
		"checkout.session.completed",
		"checkout.session.expired",
	} {
		event := &stripe.Event{
			Type: eventType,
			Data: &stripe.EventData{
				Raw: json.RawMessage(`{"id": "cs_test_unknown"}`),
			},
		}
		assert.NoError(t, svc.HandleStripeWebhook(event), eventType)
	}

	var count int64
	require.NoError(t, db.Model(&models.CreditPurchase{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}
