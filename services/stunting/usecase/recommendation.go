package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"stunting/config"
	"stunting/domain"
)

type recommendationUseCase struct {
	childRepo   domain.ChildRepo
	recommender domain.Recommender
	cache       domain.StatsCache
	TimeOut     time.Duration
}

// NewRecommendationUseCase wires the recommender to stored data. to bounds the
// database reads only; the recommender applies its own generation timeout.
func NewRecommendationUseCase(childRepo domain.ChildRepo, rec domain.Recommender, cache domain.StatsCache, to time.Duration) domain.RecommendationUseCase {
	return &recommendationUseCase{
		childRepo:   childRepo,
		recommender: rec,
		cache:       cache,
		TimeOut:     to,
	}
}

func (ru *recommendationUseCase) GetIndividualRecommendation(ctx context.Context, scope domain.Scope, childID uuid.UUID) (*domain.IndividualRecommendation, error) {
	dbCtx, cancel := context.WithTimeout(ctx, ru.TimeOut)
	child, err := ru.childRepo.GetChildByID(dbCtx, childID)
	cancel()
	if err != nil {
		return nil, err
	}
	if !scope.AllowsRecord(child) {
		return nil, fmt.Errorf("child %s: %w", childID, domain.ErrNotFound)
	}

	rec := ru.recommender.Individual(ctx, child)
	return &rec, nil
}

func (ru *recommendationUseCase) GetPolicyRecommendation(ctx context.Context, scope domain.Scope, query domain.StatsQuery) (*domain.PolicyRecommendation, error) {
	log := config.GetLogrusInstance()
	key := cacheKey("policy", scope, query)

	var cached domain.PolicyRecommendation
	if hit, err := ru.cache.Get(ctx, key, &cached); err != nil {
		log.WithError(err).Warn("recommendation cache read failed")
	} else if hit {
		return &cached, nil
	}

	dbCtx, cancel := context.WithTimeout(ctx, ru.TimeOut)
	stats, err := computeStats(dbCtx, ru.childRepo, ru.cache, scope, query)
	cancel()
	if err != nil {
		return nil, err
	}

	rec, generated := ru.recommender.Policy(ctx, stats)
	if !generated {
		// rule-based answers stay uncached until the model answers again
		return &rec, nil
	}
	if err := ru.cache.Set(ctx, key, rec); err != nil {
		log.WithError(err).Warn("recommendation cache write failed")
	}
	return &rec, nil
}
