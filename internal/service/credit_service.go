package service

import (
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/pixmora/pixmora-backend/internal/apperr"
	"github.com/pixmora/pixmora-backend/internal/models"
	"github.com/pixmora/pixmora-backend/internal/repository"
	"github.com/pixmora/pixmora-backend/pkg/payment"
	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/price"
	"github.com/stripe/stripe-go/v74/product"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CreditService struct {
	accountRepo  *repository.CreditAccountRepository
	userRepo     *repository.UserRepository
	packageRepo  *repository.CreditPackageRepository
	purchaseRepo *repository.CreditPurchaseRepository
	stripeSvc    *payment.StripeService
	logger       *zap.Logger
}

func NewCreditService(
	accountRepo *repository.CreditAccountRepository,
	userRepo *repository.UserRepository,
	packageRepo *repository.CreditPackageRepository,
	purchaseRepo *repository.CreditPurchaseRepository,
	stripeSvc *payment.StripeService,
	logger *zap.Logger,
) *CreditService {
	return &CreditService{
		accountRepo:  accountRepo,
		userRepo:     userRepo,
		packageRepo:  packageRepo,
		purchaseRepo: purchaseRepo,
		stripeSvc:    stripeSvc,
		logger:       logger,
	}
}

func (s *CreditService) GetBalance(userID uuid.UUID) (int, error) {
	account, err := s.accountRepo.GetByUserID(userID)
	if err != nil {
		return 0, apperr.NotFound("credit account not found")
	}
	return account.Balance, nil
}

func (s *CreditService) Credit(userID uuid.UUID, amount int) error {
	if amount < 0 {
		return apperr.Validation("amount must not be negative")
	}
	rows, err := s.accountRepo.Credit(userID, amount)
	if err != nil {
		return err
	}
	if rows == 0 {
		return apperr.NotFound("credit account not found")
	}
	return nil
}

func (s *CreditService) Debit(userID uuid.UUID, amount int) error {
	if amount < 0 {
		return apperr.Validation("amount must not be negative")
	}
	if _, err := s.accountRepo.GetByUserID(userID); err != nil {
		return apperr.NotFound("credit account not found")
	}
	rows, err := s.accountRepo.Debit(userID, amount)
	if err != nil {
		return err
	}
	if rows == 0 {
		return apperr.InsufficientCredits("insufficient credits")
	}
	return nil
}

func (s *CreditService) GetPackages() ([]models.CreditPackage, error) {
	return s.packageRepo.GetAll()
}

func (s *CreditService) GetPurchaseHistory(userID uuid.UUID) ([]models.CreditPurchase, error) {
	return s.purchaseRepo.GetUserPurchaseHistory(userID)
}

// CreateCheckoutSession starts a Stripe checkout for a credit package and
// records a pending purchase keyed by the Stripe session ID.
func (s *CreditService) CreateCheckoutSession(userID uuid.UUID, packageID uuid.UUID) (*models.CheckoutSessionResponse, error) {
	creditPackage, err := s.packageRepo.GetByID(packageID)
	if err != nil {
		return nil, apperr.NotFound("credit package not found")
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, apperr.NotFound("user not found")
	}

	// Packages have no pre-provisioned Stripe catalogue entries; product and
	// price are created per checkout.
	prod, err := product.New(&stripe.ProductParams{
		Name:        stripe.String(creditPackage.Name),
		Description: stripe.String(creditPackage.Description),
	})
	if err != nil {
		return nil, err
	}

	p, err := price.New(&stripe.PriceParams{
		Product:    stripe.String(prod.ID),
		UnitAmount: stripe.Int64(int64(creditPackage.Price * 100)),
		Currency:   stripe.String(string(stripe.CurrencyUSD)),
	})
	if err != nil {
		return nil, err
	}

	session, err := s.stripeSvc.CreateCheckoutSession(user.Email, p.ID, map[string]string{
		"user_id":    userID.String(),
		"package_id": packageID.String(),
	})
	if err != nil {
		return nil, err
	}

	purchase := &models.CreditPurchase{
		UserID:          userID,
		PackageID:       packageID,
		Credits:         creditPackage.Credits,
		Price:           creditPackage.Price,
		StripeSessionID: session.ID,
		Status:          models.PurchaseStatusPending,
	}
	if err := s.purchaseRepo.Create(purchase); err != nil {
		return nil, err
	}

	return &models.CheckoutSessionResponse{ID: session.ID, URL: session.URL}, nil
}

// HandleStripeWebhook completes or fails a pending purchase. Completion
// credits the buyer's account in the same transaction as the status change.
func (s *CreditService) HandleStripeWebhook(event *stripe.Event) error {
	switch event.Type {
	case "checkout.session.completed":
		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			return err
		}

		purchase, err := s.purchaseRepo.GetBySessionID(session.ID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// A session this service never opened, likely from another
			// environment sharing the webhook endpoint. Ack it so Stripe
			// stops retrying.
			s.logger.Warn("webhook for unknown checkout session", zap.String("session_id", session.ID))
			return nil
		}
		if err != nil {
			return err
		}
		if purchase.Status == models.PurchaseStatusCompleted {
			return nil
		}

		if err := s.purchaseRepo.Complete(purchase); err != nil {
			return err
		}
		s.logger.Info("purchase completed",
			zap.String("user_id", purchase.UserID.String()),
			zap.Int("credits", purchase.Credits))
		return nil

	case "checkout.session.expired", "checkout.session.async_payment_failed":
		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			return err
		}

		purchase, err := s.purchaseRepo.GetBySessionID(session.ID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn("webhook for unknown checkout session", zap.String("session_id", session.ID))
			return nil
		}
		if err != nil {
			return err
		}
		purchase.Status = models.PurchaseStatusFailed
		return s.purchaseRepo.Update(purchase)
	}

	return nil
}
