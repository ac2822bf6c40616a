package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/aniladanir/retry"
	"github.com/numrent/virtual-number-service/internal/cache"
	"github.com/numrent/virtual-number-service/internal/catalog"
	"github.com/numrent/virtual-number-service/internal/domain"
	"github.com/numrent/virtual-number-service/internal/provider"
	orderRepo "github.com/numrent/virtual-number-service/internal/repository/order"
)

// Order list partitions.
const (
	PartitionAll     = "all"
	PartitionActive  = "active"
	PartitionHistory = "history"
)

const (
	servicesCacheKey  = "catalog:services"
	countriesCacheKey = "catalog:countries"
)

// ProviderRejection means the provider answered the call but not with the
// signal the operation requires. The raw response is kept for the caller;
// stored state is never mutated on a rejection.
type ProviderRejection struct {
	Raw string
}

func (e *ProviderRejection) Error() string {
	return e.Raw
}

// OrderService drives rented-number orders through their lifecycle
// (WAITING → COMPLETED / CANCELED / USED / EXPIRED) against the remote
// provider and the order store.
type OrderService interface {
	CreateOrder(ctx context.Context, service, country string) (*domain.Order, error)
	PollStatus(ctx context.Context, orderID string) (*domain.StatusResult, error)
	CancelOrder(ctx context.Context, orderID string) error
	RequestAgain(ctx context.Context, orderID string) error
	DeleteOrder(ctx context.Context, orderID string) error
	ListOrders(ctx context.Context, partition string) ([]domain.OrderView, error)
	Balance(ctx context.Context) (string, error)
	AllServices(ctx context.Context) (map[string]string, error)
	AllCountries(ctx context.Context) (map[string]string, error)
	Start()
	Stop()
}

type service struct {
	orders        orderRepo.Repository
	gateway       provider.Gateway
	cache         cache.Cache
	retrier       *retry.Retrier
	logger        *slog.Logger
	stopChan      chan struct{}
	isRunning     bool
	mtx           sync.Mutex
	sweepInterval time.Duration
	catalogTTL    time.Duration
}

func NewOrderService(orders orderRepo.Repository, gateway provider.Gateway, catalogCache cache.Cache, logger *slog.Logger, storeMaxRetry *int, sweepInterval, catalogTTL time.Duration) (OrderService, error) {
	// initialize retrier for store writes that follow a provider mutation
	retrierOpts := make([]retry.Option, 0)
	if storeMaxRetry != nil {
		retrierOpts = append(retrierOpts, retry.WithMaxAttemps(*storeMaxRetry))
	}
	retrier, err := retry.New(retrierOpts...)
	if err != nil {
		return nil, fmt.Errorf("encountered error when initializing retrier: %w", err)
	}

	return &service{
		orders:        orders,
		gateway:       gateway,
		cache:         catalogCache,
		retrier:       retrier,
		logger:        logger,
		stopChan:      make(chan struct{}),
		mtx:           sync.Mutex{},
		sweepInterval: sweepInterval,
		catalogTTL:    catalogTTL,
	}, nil
}

// CreateOrder rents a number for the given service/country pair and records
// it as a WAITING order valid for the next 20 minutes.
func (s *service) CreateOrder(ctx context.Context, svcCode, countryCode string) (*domain.Order, error) {
	if !catalog.KnownService(svcCode) || !catalog.KnownCountry(countryCode) {
		return nil, domain.ErrInvalidSelection
	}

	raw, err := s.gateway.Call(ctx, provider.ActionGetNumber, map[string]string{
		"service": svcCode,
		"country": countryCode,
	})
	if err != nil {
		return nil, err
	}

	// the only accepted shape is ACCESS_NUMBER:<id>:<number>
	parts := strings.Split(raw, ":")
	if len(parts) != 3 || parts[0] != provider.AccessNumberPrefix || parts[1] == "" || parts[2] == "" {
		return nil, &ProviderRejection{Raw: raw}
	}

	now := time.Now().UTC()
	order := &domain.Order{
		ID:          parts[1],
		PhoneNumber: parts[2],
		Service:     svcCode,
		Country:     countryCode,
		Status:      domain.StatusWaiting,
		CreatedAt:   now,
		ExpiresAt:   now.Add(domain.OrderTTL),
	}

	// the provider already allocated the number, so the insert is retried
	// before reporting divergence
	if err := s.persistMutation(ctx, order.ID, func() error {
		return s.orders.Insert(order)
	}); err != nil {
		return nil, err
	}

	return order, nil
}

// PollStatus asks the provider for the current state of an order. Only the
// recognized terminal responses mutate stored state; unknown provider text
// is passed through untouched so a transient hiccup never corrupts the
// record.
func (s *service) PollStatus(ctx context.Context, orderID string) (*domain.StatusResult, error) {
	if _, err := s.orders.GetByID(orderID); err != nil {
		return nil, err
	}

	raw, err := s.gateway.Call(ctx, provider.ActionGetStatus, map[string]string{"id": orderID})
	if err != nil {
		s.logger.Warn("provider unreachable during status poll", "orderId", orderID, "error", err.Error())
		return &domain.StatusResult{Status: domain.StatusUnknown}, nil
	}

	switch {
	case strings.HasPrefix(raw, provider.StatusOKPrefix):
		code := strings.SplitN(raw, ":", 2)[1]
		if err := s.persistMutation(ctx, orderID, func() error {
			return s.orders.Update(orderID, map[string]any{
				"status":   domain.StatusCompleted,
				"sms_code": code,
			})
		}); err != nil {
			return nil, err
		}
		return &domain.StatusResult{Status: string(domain.StatusCompleted), Sms: code}, nil

	case strings.HasPrefix(raw, provider.StatusWaitCode):
		return &domain.StatusResult{Status: string(domain.StatusWaiting)}, nil

	case strings.HasPrefix(raw, provider.StatusCancel):
		if err := s.persistTerminal(ctx, orderID, domain.StatusCanceled); err != nil {
			return nil, err
		}
		return &domain.StatusResult{Status: string(domain.StatusCanceled)}, nil

	case strings.HasPrefix(raw, provider.StatusUsed):
		if err := s.persistTerminal(ctx, orderID, domain.StatusUsed); err != nil {
			return nil, err
		}
		return &domain.StatusResult{Status: string(domain.StatusUsed)}, nil

	default:
		// unknown provider code: read-only feedback to the caller
		return &domain.StatusResult{Status: raw}, nil
	}
}

// CancelOrder asks the provider to cancel the rental. The record is kept and
// marked CANCELED so the order still shows up in history.
func (s *service) CancelOrder(ctx context.Context, orderID string) error {
	if _, err := s.orders.GetByID(orderID); err != nil {
		return err
	}

	raw, err := s.gateway.Call(ctx, provider.ActionSetStatus, map[string]string{
		"status": provider.SetStatusCancel,
		"id":     orderID,
	})
	if err != nil {
		return err
	}
	if raw != provider.AccessCancel {
		return &ProviderRejection{Raw: raw}
	}

	return s.persistTerminal(ctx, orderID, domain.StatusCanceled)
}

// RequestAgain asks the provider to resend a code for the number and resets
// the validity window.
func (s *service) RequestAgain(ctx context.Context, orderID string) error {
	if _, err := s.orders.GetByID(orderID); err != nil {
		return err
	}

	raw, err := s.gateway.Call(ctx, provider.ActionSetStatus, map[string]string{
		"status": provider.SetStatusRetry,
		"id":     orderID,
	})
	if err != nil {
		return err
	}
	if raw != provider.AccessReady {
		return &ProviderRejection{Raw: raw}
	}

	now := time.Now().UTC()
	return s.persistMutation(ctx, orderID, func() error {
		return s.orders.Update(orderID, map[string]any{
			"status":     domain.StatusWaiting,
			"sms_code":   nil,
			"created_at": now,
			"expires_at": now.Add(domain.OrderTTL),
		})
	})
}

// DeleteOrder removes the local record. Deleting an absent id succeeds.
func (s *service) DeleteOrder(ctx context.Context, orderID string) error {
	return s.orders.Delete(orderID)
}

// ListOrders returns orders newest first with catalog names and remaining
// validity resolved. Partition "active" keeps WAITING orders still inside
// their window; "history" keeps everything else, including WAITING orders
// whose window elapsed without a persisted status change.
func (s *service) ListOrders(ctx context.Context, partition string) ([]domain.OrderView, error) {
	orders, err := s.orders.ListAll()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	views := make([]domain.OrderView, 0, len(orders))
	for _, o := range orders {
		switch partition {
		case PartitionActive:
			if !o.Active(now) {
				continue
			}
		case PartitionHistory:
			if o.Active(now) {
				continue
			}
		}

		expiresIn := int(o.ExpiresAt.Sub(now).Seconds())
		if expiresIn < 0 {
			expiresIn = 0
		}

		views = append(views, domain.OrderView{
			ID:          o.ID,
			PhoneNumber: o.PhoneNumber,
			Service:     catalog.ServiceName(o.Service),
			Country:     catalog.CountryName(o.Country),
			Status:      o.Status,
			SmsCode:     o.SmsCode,
			CreatedAt:   o.CreatedAt,
			ExpiresAt:   o.ExpiresAt,
			ExpiresIn:   expiresIn,
		})
	}

	return views, nil
}

// Balance reports the provider account balance.
func (s *service) Balance(ctx context.Context) (string, error) {
	raw, err := s.gateway.Call(ctx, provider.ActionGetBalance, nil)
	if err != nil {
		return "", err
	}

	parts := strings.SplitN(raw, ":", 2)
	if len(parts) != 2 || parts[0] != provider.AccessBalancePrefix {
		return "", &ProviderRejection{Raw: raw}
	}
	return parts[1], nil
}

// AllServices returns the provider's full service catalog.
func (s *service) AllServices(ctx context.Context) (map[string]string, error) {
	return s.providerCatalog(ctx, provider.ActionGetServices, servicesCacheKey)
}

// AllCountries returns the provider's full country catalog.
func (s *service) AllCountries(ctx context.Context) (map[string]string, error) {
	return s.providerCatalog(ctx, provider.ActionGetCountries, countriesCacheKey)
}

// providerCatalog fetches a dynamic catalog payload, preferring the cached
// copy. Cache failures only cost a provider round trip.
func (s *service) providerCatalog(ctx context.Context, action, cacheKey string) (map[string]string, error) {
	if payload, err := s.cache.Get(ctx, cacheKey); err == nil && payload != "" {
		return catalog.ParseMapping(payload)
	}

	payload, err := s.gateway.Call(ctx, action, nil)
	if err != nil {
		return nil, err
	}

	mapping, err := catalog.ParseMapping(payload)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, cacheKey, payload, s.catalogTTL); err != nil {
		s.logger.Warn("failed to cache catalog payload", "action", action, "error", err.Error())
	}

	return mapping, nil
}

// persistTerminal moves an order to a terminal status. The sms code is
// cleared because it is only meaningful on COMPLETED orders.
func (s *service) persistTerminal(ctx context.Context, orderID string, status domain.OrderStatus) error {
	return s.persistMutation(ctx, orderID, func() error {
		return s.orders.Update(orderID, map[string]any{
			"status":   status,
			"sms_code": nil,
		})
	})
}

// persistMutation writes order state that the provider already considers
// true. A failed write here means local and provider state diverged, so the
// write is retried and the divergence logged before the error is surfaced.
func (s *service) persistMutation(ctx context.Context, orderID string, op func() error) error {
	var lastErr error

	retryFunc := func(attempt int) (terminate bool) {
		if lastErr = op(); lastErr != nil {
			s.logger.Error("store write failed after provider mutation",
				"orderId", orderID,
				"attempt", attempt,
				"error", lastErr.Error())
			return false
		}
		return true
	}

	if success := <-s.retrier.Retry(ctx, retryFunc, true); !success {
		return fmt.Errorf("order %s diverged from provider state: %w", orderID, lastErr)
	}
	return nil
}
