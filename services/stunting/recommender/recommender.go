package recommender

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"stunting/domain"
)

type recommender struct {
	gen     Generator
	timeout time.Duration
	log     *logrus.Logger
}

// New returns a Recommender backed by gen. A nil gen always answers with the
// rule-based fallback.
func New(gen Generator, timeout time.Duration, log *logrus.Logger) domain.Recommender {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &recommender{
		gen:     gen,
		timeout: timeout,
		log:     log,
	}
}

func (r *recommender) generate(ctx context.Context, prompt string) (string, error) {
	if r.gen == nil {
		return "", ErrNoGenerator
	}
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	return r.gen.Generate(ctx, prompt)
}

func (r *recommender) Individual(ctx context.Context, child *domain.ChildRecord) domain.IndividualRecommendation {
	def := fallbackIndividual(child)

	reply, err := r.generate(ctx, individualPrompt(child))
	if err != nil {
		r.log.WithError(err).WithField("child_id", child.ID).Warn("individual recommendation falls back to rules")
		return def
	}

	rec, err := parseIndividual(reply, def)
	if err != nil {
		r.log.WithError(err).WithField("child_id", child.ID).Warn("unparseable individual recommendation, falling back to rules")
		return def
	}
	return rec
}

func (r *recommender) Policy(ctx context.Context, stats *domain.RegionStats) (domain.PolicyRecommendation, bool) {
	def := fallbackPolicy(stats)

	reply, err := r.generate(ctx, policyPrompt(stats))
	if err != nil {
		r.log.WithError(err).WithField("region", stats.Location.Name()).Warn("policy recommendation falls back to rules")
		return def, false
	}

	rec, err := parsePolicy(reply, def)
	if err != nil {
		r.log.WithError(err).WithField("region", stats.Location.Name()).Warn("unparseable policy recommendation, falling back to rules")
		return def, false
	}
	return rec, true
}
