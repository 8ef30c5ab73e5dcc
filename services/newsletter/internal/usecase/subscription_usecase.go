package usecase

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sync"
	"time"

	"newsletter/pkg/logger"
	"newsletter/pkg/metrics"
	"newsletter/services/newsletter/internal/entity"
	"newsletter/services/newsletter/internal/notifier"
	"newsletter/services/newsletter/internal/repo/persistent"
)

var (
	ErrEmailRequired     = errors.New("Email is required")
	ErrInvalidEmail      = errors.New("Invalid email format")
	ErrAlreadySubscribed = errors.New("Email already subscribed")
	ErrSaveFailed        = errors.New("Failed to save subscription")
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const (
	HealthOK    = "ok"
	HealthError = "error"
)

// Health is the storage status reported by the health endpoint.
type Health struct {
	Status          string `json:"status"`
	Storage         string `json:"storage"`
	SubscriberCount int    `json:"subscriberCount"`
	Error           string `json:"error,omitempty"`
}

type SubscriptionUseCase interface {
	Subscribe(email string) (*entity.Subscriber, error)
	ListSubscribers() []entity.Subscriber
	Health() Health
	// Wait blocks until in-flight welcome emails finish or ctx is done.
	Wait(ctx context.Context) error
}

type subscriptionUseCase struct {
	repo     persistent.SubscriberRepository
	notifier notifier.Notifier
	storage  string
	logger   *logger.Logger
	now      func() time.Time

	// mu serialises the read-modify-write of the subscriber file.
	mu       sync.Mutex
	inflight sync.WaitGroup
}

func NewSubscriptionUseCase(repo persistent.SubscriberRepository, n notifier.Notifier, storage string, logger *logger.Logger) SubscriptionUseCase {
	return &subscriptionUseCase{
		repo:     repo,
		notifier: n,
		storage:  storage,
		logger:   logger,
		now:      time.Now,
	}
}

// ValidateEmail checks presence and the local@domain.tld shape.
func ValidateEmail(email string) error {
	if email == "" {
		return ErrEmailRequired
	}
	if !emailPattern.MatchString(email) {
		return ErrInvalidEmail
	}
	return nil
}

func (uc *subscriptionUseCase) Subscribe(email string) (*entity.Subscriber, error) {
	if err := ValidateEmail(email); err != nil {
		metrics.SubscriptionRequests.WithLabelValues(metrics.ResultInvalid).Inc()
		return nil, err
	}

	subscriber, err := uc.add(email)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("New subscription: %s", subscriber.Email)
	metrics.SubscriptionRequests.WithLabelValues(metrics.ResultCreated).Inc()

	if uc.notifier != nil && uc.notifier.Enabled() {
		uc.dispatchWelcome(subscriber.Email)
	}
	return subscriber, nil
}

func (uc *subscriptionUseCase) add(email string) (*entity.Subscriber, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	subscribers, err := uc.repo.ReadAll()
	switch {
	case errors.Is(err, persistent.ErrCorrupt):
		// A document that does not parse is replaced by the new list.
		uc.logger.Error("Error reading subscribers: %v", err)
	case err != nil:
		// Never write over a file that could not be read.
		uc.logger.Error("Error reading subscribers: %v", err)
		metrics.SubscriptionRequests.WithLabelValues(metrics.ResultError).Inc()
		return nil, fmt.Errorf("%w: %v", ErrSaveFailed, err)
	}

	for _, existing := range subscribers {
		if existing.SameEmail(email) {
			metrics.SubscriptionRequests.WithLabelValues(metrics.ResultDuplicate).Inc()
			return nil, ErrAlreadySubscribed
		}
	}

	subscriber := entity.NewSubscriber(email, uc.now())
	subscribers = append(subscribers, subscriber)
	if err := uc.repo.WriteAll(subscribers); err != nil {
		uc.logger.Error("Error writing subscribers: %v", err)
		metrics.SubscriptionRequests.WithLabelValues(metrics.ResultError).Inc()
		return nil, fmt.Errorf("%w: %v", ErrSaveFailed, err)
	}

	metrics.Subscribers.Set(float64(len(subscribers)))
	return &subscriber, nil
}

// dispatchWelcome sends the confirmation email in the background. The
// outcome is logged only.
func (uc *subscriptionUseCase) dispatchWelcome(email string) {
	uc.inflight.Add(1)
	go func() {
		defer uc.inflight.Done()
		if err := uc.notifier.SendWelcome(email); err != nil {
			uc.logger.Error("Failed to send confirmation email to %s: %v", email, err)
			return
		}
		uc.logger.Info("Confirmation email sent to %s", email)
	}()
}

func (uc *subscriptionUseCase) ListSubscribers() []entity.Subscriber {
	subscribers, err := uc.repo.ReadAll()
	if err != nil {
		uc.logger.Error("Error reading subscribers: %v", err)
	}
	metrics.Subscribers.Set(float64(len(subscribers)))
	return subscribers
}

func (uc *subscriptionUseCase) Health() Health {
	subscribers, err := uc.repo.ReadAll()
	if err != nil {
		return Health{Status: HealthError, Storage: uc.storage, Error: err.Error()}
	}
	return Health{
		Status:          HealthOK,
		Storage:         uc.storage,
		SubscriberCount: len(subscribers),
	}
}

func (uc *subscriptionUseCase) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		uc.inflight.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// IsValidationError reports whether err should be answered with 400.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrEmailRequired) ||
		errors.Is(err, ErrInvalidEmail) ||
		errors.Is(err, ErrAlreadySubscribed)
}
