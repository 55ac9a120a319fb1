package domain

import (
	"context"

	"github.com/google/uuid"
)

type IndividualRecommendation struct {
	HealthStatus    string   `json:"healthStatus"`
	Recommendations []string `json:"recommendations"`
	MealPlan        []string `json:"mealPlan"`
	ParentGuidance  []string `json:"parentGuidance"`
	FollowUp        string   `json:"followUp"`
}

type ActionPlan struct {
	ShortTerm  []string `json:"shortTerm"`
	MediumTerm []string `json:"mediumTerm"`
	LongTerm   []string `json:"longTerm"`
}

type PolicyRecommendation struct {
	Recommendations []string   `json:"recommendations"`
	Priority        string     `json:"priority"`
	Summary         string     `json:"summary"`
	ActionPlan      ActionPlan `json:"actionPlan"`
	Stakeholders    []string   `json:"stakeholders"`
	BudgetEstimate  string     `json:"budgetEstimate"`
}

const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Recommender turns child or region data into recommendations. It never fails:
// any generator error is replaced by a rule-based answer. Policy reports
// whether the answer came from the model.
type Recommender interface {
	Individual(ctx context.Context, child *ChildRecord) IndividualRecommendation
	Policy(ctx context.Context, stats *RegionStats) (PolicyRecommendation, bool)
}

type RecommendationUseCase interface {
	GetIndividualRecommendation(ctx context.Context, scope Scope, childID uuid.UUID) (*IndividualRecommendation, error)
	GetPolicyRecommendation(ctx context.Context, scope Scope, query StatsQuery) (*PolicyRecommendation, error)
}

// StatsCache stores computed statistics and recommendations between requests.
type StatsCache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}) error
	Invalidate(ctx context.Context) error
}
