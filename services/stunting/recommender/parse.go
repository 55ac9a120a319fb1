package recommender

import (
	"errors"
	"strings"

	"github.com/bytedance/sonic"

	"stunting/domain"
)

var errNoJSON = errors.New("no JSON object in model reply")

// extractJSON returns the text between the first '{' and the last '}'.
func extractJSON(reply string) (string, error) {
	start := strings.Index(reply, "{")
	end := strings.LastIndex(reply, "}")
	if start < 0 || end <= start {
		return "", errNoJSON
	}
	return reply[start : end+1], nil
}

type individualReply struct {
	HealthStatus    *string  `json:"healthStatus"`
	Recommendations []string `json:"recommendations"`
	MealPlan        []string `json:"mealPlan"`
	ParentGuidance  []string `json:"parentGuidance"`
	FollowUp        *string  `json:"followUp"`
}

type actionPlanReply struct {
	ShortTerm  []string `json:"shortTerm"`
	MediumTerm []string `json:"mediumTerm"`
	LongTerm   []string `json:"longTerm"`
}

type policyReply struct {
	Recommendations []string         `json:"recommendations"`
	Priority        *string          `json:"priority"`
	Summary         *string          `json:"summary"`
	ActionPlan      *actionPlanReply `json:"actionPlan"`
	Stakeholders    []string         `json:"stakeholders"`
	BudgetEstimate  *string          `json:"budgetEstimate"`
}

func nonEmpty(s *string) bool {
	return s != nil && strings.TrimSpace(*s) != ""
}

// parseIndividual decodes a model reply, taking every missing key from def.
func parseIndividual(reply string, def domain.IndividualRecommendation) (domain.IndividualRecommendation, error) {
	raw, err := extractJSON(reply)
	if err != nil {
		return def, err
	}
	var r individualReply
	if err := sonic.UnmarshalString(raw, &r); err != nil {
		return def, err
	}

	out := def
	if nonEmpty(r.HealthStatus) {
		out.HealthStatus = *r.HealthStatus
	}
	if len(r.Recommendations) > 0 {
		out.Recommendations = r.Recommendations
	}
	if len(r.MealPlan) > 0 {
		out.MealPlan = r.MealPlan
	}
	if len(r.ParentGuidance) > 0 {
		out.ParentGuidance = r.ParentGuidance
	}
	if nonEmpty(r.FollowUp) {
		out.FollowUp = *r.FollowUp
	}
	return out, nil
}

func normalizePriority(p string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(p)) {
	case domain.PriorityHigh, "tinggi":
		return domain.PriorityHigh, true
	case domain.PriorityMedium, "sedang":
		return domain.PriorityMedium, true
	case domain.PriorityLow, "rendah":
		return domain.PriorityLow, true
	}
	return "", false
}

func parsePolicy(reply string, def domain.PolicyRecommendation) (domain.PolicyRecommendation, error) {
	raw, err := extractJSON(reply)
	if err != nil {
		return def, err
	}
	var r policyReply
	if err := sonic.UnmarshalString(raw, &r); err != nil {
		return def, err
	}

	out := def
	if len(r.Recommendations) > 0 {
		out.Recommendations = r.Recommendations
	}
	if r.Priority != nil {
		if p, ok := normalizePriority(*r.Priority); ok {
			out.Priority = p
		}
	}
	if nonEmpty(r.Summary) {
		out.Summary = *r.Summary
	}
	if r.ActionPlan != nil {
		if len(r.ActionPlan.ShortTerm) > 0 {
			out.ActionPlan.ShortTerm = r.ActionPlan.ShortTerm
		}
		if len(r.ActionPlan.MediumTerm) > 0 {
			out.ActionPlan.MediumTerm = r.ActionPlan.MediumTerm
		}
		if len(r.ActionPlan.LongTerm) > 0 {
			out.ActionPlan.LongTerm = r.ActionPlan.LongTerm
		}
	}
	if len(r.Stakeholders) > 0 {
		out.Stakeholders = r.Stakeholders
	}
	if nonEmpty(r.BudgetEstimate) {
		out.BudgetEstimate = *r.BudgetEstimate
	}
	return out, nil
}
