package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"stunting/config"
	"stunting/domain"
)

type addressUseCase struct {
	repo    domain.AddressRepo
	cache   domain.StatsCache
	TimeOut time.Duration
}

func NewAddressUseCase(repo domain.AddressRepo, cache domain.StatsCache, to time.Duration) domain.AddressUseCase {
	return &addressUseCase{
		repo:    repo,
		cache:   cache,
		TimeOut: to,
	}
}

func (au *addressUseCase) GetAllAddress(ctx context.Context, scope domain.Scope) (*[]domain.Address, error) {
	ctx, cancel := context.WithTimeout(ctx, au.TimeOut)
	defer cancel()

	v, err := au.repo.GetAllAddress(ctx)
	if err != nil {
		return nil, err
	}
	filtered := domain.FilterAddresses(scope, *v)
	return &filtered, nil
}

func (au *addressUseCase) GetAddressByID(ctx context.Context, scope domain.Scope, id uuid.UUID) (*domain.Address, error) {
	ctx, cancel := context.WithTimeout(ctx, au.TimeOut)
	defer cancel()

	v, err := au.repo.GetAddressByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !scope.AllowsAddress(v) {
		return nil, fmt.Errorf("address %s: %w", id, domain.ErrNotFound)
	}
	return v, nil
}

func (au *addressUseCase) CreateAddress(ctx context.Context, payload *domain.AddressPayload) (*domain.Address, error) {
	if err := validateAddress(payload); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, au.TimeOut)
	defer cancel()

	addr := payload.ToAddress()
	if err := au.repo.CreateAddress(ctx, &addr); err != nil {
		return nil, err
	}
	au.invalidate(ctx)
	return &addr, nil
}

func (au *addressUseCase) UpdateAddress(ctx context.Context, id uuid.UUID, payload *domain.AddressPayload) (*domain.Address, error) {
	if err := validateAddress(payload); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, au.TimeOut)
	defer cancel()

	addr := payload.ToAddress()
	v, err := au.repo.UpdateAddress(ctx, id, &addr)
	if err != nil {
		return nil, err
	}
	au.invalidate(ctx)
	return v, nil
}

func (au *addressUseCase) DeleteAddress(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := context.WithTimeout(ctx, au.TimeOut)
	defer cancel()

	if err := au.repo.DeleteAddress(ctx, id); err != nil {
		return err
	}
	au.invalidate(ctx)
	return nil
}

func (au *addressUseCase) invalidate(ctx context.Context) {
	invalidateCache(ctx, au.cache)
}

// invalidateCache drops every cached statistic. Failures are logged, not
// returned.
func invalidateCache(ctx context.Context, cache domain.StatsCache) {
	if cache == nil {
		return
	}
	if err := cache.Invalidate(ctx); err != nil {
		config.GetLogrusInstance().WithError(err).Warn("failed to invalidate statistics cache")
	}
}
