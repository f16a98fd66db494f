// Package catalog loads the reference lists the order form picks from:
// restaurants, customers, drivers, and the products of the selected
// restaurant.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"food-delivery-admin/models"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// ErrStale is returned by SelectRestaurant when a newer selection superseded
// the call before its products arrived. The response was discarded.
var ErrStale = errors.New("product list superseded by a newer selection")

// Source is the subset of the backend client the loader needs.
type Source interface {
	ListRestaurants(ctx context.Context) ([]models.Restaurant, error)
	ListCustomers(ctx context.Context) ([]models.User, error)
	ListDrivers(ctx context.Context) ([]models.Driver, error)
	ListProducts(ctx context.Context, restaurantID string) ([]models.Product, error)
}

type Loader struct {
	src    Source
	logger *slog.Logger

	mu           sync.RWMutex
	restaurants  []models.Restaurant
	customers    []models.User
	drivers      []models.Driver
	products     []models.Product
	restaurantID string
	gen          uint64
}

func NewLoader(src Source, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{src: src, logger: logger}
}

// LoadAll fetches restaurants, customers and drivers concurrently. A failed
// list does not cancel its siblings; whatever loaded is kept and the first
// error is returned.
func (l *Loader) LoadAll(ctx context.Context) error {
	var g errgroup.Group
	g.Go(func() error {
		rs, err := l.src.ListRestaurants(ctx)
		if err != nil {
			return fmt.Errorf("load restaurants: %w", err)
		}
		l.mu.Lock()
		l.restaurants = rs
		l.mu.Unlock()
		return nil
	})
	g.Go(func() error {
		cs, err := l.src.ListCustomers(ctx)
		if err != nil {
			return fmt.Errorf("load customers: %w", err)
		}
		l.mu.Lock()
		l.customers = cs
		l.mu.Unlock()
		return nil
	})
	g.Go(func() error {
		ds, err := l.src.ListDrivers(ctx)
		if err != nil {
			return fmt.Errorf("load drivers: %w", err)
		}
		l.mu.Lock()
		l.drivers = ds
		l.mu.Unlock()
		return nil
	})
	err := g.Wait()
	if err != nil {
		l.logger.Warn("catalog partially loaded", "error", err)
	}
	return err
}

// SelectRestaurant replaces the product list with id's products. Every call
// takes a new generation; a response that is no longer the latest is
// dropped and ErrStale returned. The empty id clears products without a
// request.
func (l *Loader) SelectRestaurant(ctx context.Context, id string) error {
	l.mu.Lock()
	l.gen++
	gen := l.gen
	l.restaurantID = id
	l.products = nil
	l.mu.Unlock()

	if id == "" {
		return nil
	}

	ps, err := l.src.ListProducts(ctx, id)

	l.mu.Lock()
	defer l.mu.Unlock()
	if gen != l.gen {
		l.logger.Debug("discarding stale products", "restaurant_id", id, "gen", gen, "latest", l.gen)
		return ErrStale
	}
	if err != nil {
		return fmt.Errorf("load products: %w", err)
	}
	l.products = ps
	return nil
}

// Reset clears the selection and products. In-flight product loads become
// stale.
func (l *Loader) Reset() {
	l.mu.Lock()
	l.gen++
	l.restaurantID = ""
	l.products = nil
	l.mu.Unlock()
}

// Price is the current catalog price of productID among the loaded products.
func (l *Loader) Price(productID string) (decimal.Decimal, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, p := range l.products {
		if p.ID == productID {
			return p.Price, true
		}
	}
	return decimal.Zero, false
}

func (l *Loader) RestaurantID() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.restaurantID
}

func (l *Loader) Restaurants() []models.Restaurant {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Clone(l.restaurants)
}

func (l *Loader) Customers() []models.User {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Clone(l.customers)
}

func (l *Loader) Drivers() []models.Driver {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Clone(l.drivers)
}

func (l *Loader) Products() []models.Product {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Clone(l.products)
}
