package similarity

import (
	"testing"
)

func TestScore_IdenticalTexts(t *testing.T) {
	s := NewScorer()
	score := s.Score("the capital of France is Paris", "the capital of France is Paris")
	if score < 0.999 {
		t.Errorf("identical texts score = %v, want ~1.0", score)
	}
}

func TestScore_DisjointTexts(t *testing.T) {
	s := NewScorer()
	score := s.Score("quarterly revenue grew strongly", "penguins inhabit antarctic coastlines")
	if score != 0 {
		t.Errorf("disjoint texts score = %v, want 0", score)
	}
}

func TestScore_PartialOverlapInRange(t *testing.T) {
	s := NewScorer()
	score := s.Score("the capital of France is Paris", "Paris is in France")
	if score <= 0 || score >= 1 {
		t.Errorf("partial overlap score = %v, want strictly inside (0,1)", score)
	}
}

func TestScore_EmptyInputs(t *testing.T) {
	s := NewScorer()
	if got := s.Score("", ""); got != 1.0 {
		t.Errorf("two empty texts = %v, want 1.0", got)
	}
	if got := s.Score("something", ""); got != 0.0 {
		t.Errorf("one empty text = %v, want 0.0", got)
	}
}

func TestScore_CaseInsensitive(t *testing.T) {
	s := NewScorer()
	if got := s.Score("PARIS FRANCE", "paris france"); got < 0.999 {
		t.Errorf("case difference score = %v, want ~1.0", got)
	}
}

func TestCheckAll_FlagsLowScores(t *testing.T) {
	s := NewScorer()
	outputs := map[string]string{
		"capital": "the capital of France is Paris",
		"planet":  "jupiter is made of cheese and dreams",
	}
	references := map[string]string{
		"capital": "the capital of France is Paris",
		"planet":  "jupiter is the largest planet in the solar system",
	}

	results := s.CheckAll(outputs, references, 0.5)
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	// Sorted by prompt: capital then planet.
	if results[0].Prompt != "capital" || results[0].Hallucination {
		t.Errorf("capital result = %+v, want non-hallucination", results[0])
	}
	if results[1].Prompt != "planet" || !results[1].Hallucination {
		t.Errorf("planet result = %+v, want hallucination", results[1])
	}

	rate := HallucinationRate(results)
	if rate != 0.5 {
		t.Errorf("hallucination rate = %v, want 0.5", rate)
	}
}
