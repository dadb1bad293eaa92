package services

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"storefront/internal/models"
	"storefront/internal/observability"
)

// Catalog is the remote catalog API as the storefront uses it.
type Catalog interface {
	FlashDeals(ctx context.Context) ([]models.Product, error)
	Products(ctx context.Context, query string) ([]models.Product, error)
	TrackClick(ctx context.Context, productID string) error
	AdminLogin(ctx context.Context, email string) (models.LoginResult, error)
	Analytics(ctx context.Context) (models.AnalyticsSummary, error)
}

type Storefront struct {
	catalog  Catalog
	logger   *slog.Logger
	tracking sync.WaitGroup
}

func NewStorefront(catalog Catalog, logger *slog.Logger) *Storefront {
	if logger == nil {
		logger = slog.Default()
	}
	return &Storefront{
		catalog: catalog,
		logger:  logger,
	}
}

// Categories returns the category list. It is static for now but goes
// through ctx like every other load.
func (s *Storefront) Categories(ctx context.Context) ([]models.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return models.DefaultCategories(), nil
}

// LoadHome runs the two initial loads concurrently. Each callback fires
// as soon as its own load finishes, in whatever order that happens, and
// receives the load error if there was one. A callback error (the client
// went away) cancels the other load.
func (s *Storefront) LoadHome(
	ctx context.Context,
	onDeals func([]models.Product, error) error,
	onCategories func([]models.Category, error) error,
) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		deals, err := s.catalog.FlashDeals(ctx)
		if err != nil {
			s.logFailure(ctx, "load flash deals", err)
		}
		return onDeals(deals, err)
	})

	g.Go(func() error {
		categories, err := s.Categories(ctx)
		if err != nil {
			s.logFailure(ctx, "load categories", err)
		}
		return onCategories(categories, err)
	})

	return g.Wait()
}

func (s *Storefront) Search(ctx context.Context, query string) ([]models.Product, error) {
	products, err := s.catalog.Products(ctx, query)
	if err != nil {
		s.logFailure(ctx, "search products", err, "query", query)
		return nil, err
	}
	return products, nil
}

// TrackClick records a purchase click in the background. The call is
// detached from ctx's cancellation so it outlives the request; failures
// are only logged.
func (s *Storefront) TrackClick(ctx context.Context, productID string) {
	ctx = context.WithoutCancel(ctx)
	s.tracking.Add(1)
	go func() {
		defer s.tracking.Done()
		if err := s.catalog.TrackClick(ctx, productID); err != nil {
			observability.LoggerFor(ctx, s.logger).Warn("click tracking failed",
				"product_id", productID,
				"error", err,
			)
		}
	}()
}

// WaitForTracking blocks until in-flight click tracking calls finish or
// ctx is done.
func (s *Storefront) WaitForTracking(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.tracking.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Storefront) Login(ctx context.Context, email string) (models.LoginResult, error) {
	result, err := s.catalog.AdminLogin(ctx, email)
	if err != nil {
		s.logFailure(ctx, "admin login", err)
		return models.LoginResult{}, err
	}
	if !result.Success {
		observability.LoggerFor(ctx, s.logger).Info("admin login rejected", "message", result.Message)
	}
	return result, nil
}

func (s *Storefront) Analytics(ctx context.Context) (models.AnalyticsSummary, error) {
	summary, err := s.catalog.Analytics(ctx)
	if err != nil {
		s.logFailure(ctx, "load analytics", err)
		return models.AnalyticsSummary{}, err
	}
	return summary, nil
}

func (s *Storefront) logFailure(ctx context.Context, op string, err error, attrs ...any) {
	if ctx.Err() != nil {
		// client went away, nothing to report
		return
	}
	args := append([]any{"operation", op, "error", err}, attrs...)
	observability.LoggerFor(ctx, s.logger).Error("catalog request failed", args...)
}
