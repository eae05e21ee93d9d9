package product

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"ostocare-be/internal/logger"

	"go.uber.org/zap"
)

// Provider is the read-only source of the full product list, sorted by name.
// On failure it returns an error wrapping ErrLoadFailed, never an empty list.
type Provider interface {
	FetchAll(ctx context.Context) ([]Product, error)
	Get(ctx context.Context, id string) (*Product, error)
}

type repositoryProvider struct {
	repo Repository
}

func NewRepositoryProvider(repo Repository) Provider {
	return &repositoryProvider{repo: repo}
}

func (p *repositoryProvider) FetchAll(ctx context.Context) ([]Product, error) {
	products, err := p.repo.ListOrderedByName(ctx)
	if err != nil {
		logger.FromCtx(ctx).Warn("product fetch failed",
			zap.String("layer", "provider"),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}

	SortByName(products)
	return products, nil
}

func (p *repositoryProvider) Get(ctx context.Context, id string) (*Product, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrProductNotFound
	}

	prod, err := p.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrProductNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}
	return prod, nil
}

// SortByName orders products by name, then id for equal names.
func SortByName(products []Product) {
	sort.SliceStable(products, func(i, j int) bool {
		if products[i].Name != products[j].Name {
			return products[i].Name < products[j].Name
		}
		return products[i].ID < products[j].ID
	})
}
