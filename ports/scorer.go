package ports

// SimilarityScorerPort scores a generated text against a reference text,
// returning a value in [0,1]. Consumed when assembling combined audit
// dashboards; the fairness core does not depend on it.
type SimilarityScorerPort interface {
	Score(generated, reference string) float64
}
