// Package similarity scores generated text against reference text, used by
// the hallucination checks in combined audits.
package similarity

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"fairlens/ports"
)

var tokenPattern = regexp.MustCompile(`[a-z0-9']+`)

// Scorer computes a similarity score in [0,1] between two texts. It blends
// token-set overlap (Jaccard) with cosine similarity over term frequencies,
// so both shared vocabulary and shared emphasis count.
type Scorer struct {
	jaccardWeight float64
}

var _ ports.SimilarityScorerPort = (*Scorer)(nil)

// NewScorer creates a scorer with equal weighting
func NewScorer() *Scorer {
	return &Scorer{jaccardWeight: 0.5}
}

// Score returns the similarity of generated against reference in [0,1].
// Two empty texts score 1.0; one empty text scores 0.0.
func (s *Scorer) Score(generated, reference string) float64 {
	genTokens := tokenize(generated)
	refTokens := tokenize(reference)

	if len(genTokens) == 0 && len(refTokens) == 0 {
		return 1.0
	}
	if len(genTokens) == 0 || len(refTokens) == 0 {
		return 0.0
	}

	score := s.jaccardWeight*jaccard(genTokens, refTokens) + (1-s.jaccardWeight)*cosine(genTokens, refTokens)
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

// CheckResult is the outcome of checking one generated text against its
// reference fact.
type CheckResult struct {
	Prompt        string  `json:"prompt"`
	Score         float64 `json:"score"`
	Hallucination bool    `json:"hallucination"`
}

// CheckAll scores each generated text against its reference and flags scores
// below the threshold as hallucinations.
func (s *Scorer) CheckAll(outputs, references map[string]string, threshold float64) []CheckResult {
	prompts := make([]string, 0, len(outputs))
	for prompt := range outputs {
		prompts = append(prompts, prompt)
	}
	// Stable order for reproducible reports.
	sort.Strings(prompts)

	results := make([]CheckResult, 0, len(prompts))
	for _, prompt := range prompts {
		reference, ok := references[prompt]
		if !ok {
			continue
		}
		score := s.Score(outputs[prompt], reference)
		results = append(results, CheckResult{
			Prompt:        prompt,
			Score:         score,
			Hallucination: score < threshold,
		})
	}
	return results
}

// HallucinationRate is the share of checked outputs flagged as hallucinations
func HallucinationRate(results []CheckResult) float64 {
	if len(results) == 0 {
		return 0
	}
	flagged := 0
	for _, r := range results {
		if r.Hallucination {
			flagged++
		}
	}
	return float64(flagged) / float64(len(results))
}

func tokenize(text string) map[string]int {
	counts := make(map[string]int)
	for _, token := range tokenPattern.FindAllString(strings.ToLower(text), -1) {
		counts[token]++
	}
	return counts
}

func jaccard(a, b map[string]int) float64 {
	intersection := 0
	for token := range a {
		if _, ok := b[token]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

func cosine(a, b map[string]int) float64 {
	var dot, normA, normB float64
	for token, count := range a {
		normA += float64(count * count)
		if other, ok := b[token]; ok {
			dot += float64(count * other)
		}
	}
	for _, count := range b {
		normB += float64(count * count)
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
