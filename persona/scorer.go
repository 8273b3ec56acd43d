package persona

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/EidolonLabs/persona-launchpad/core"
	"github.com/EidolonLabs/persona-launchpad/questions"
)

// Dimension is the fixed persona vector length, one slot per catalog topic.
var Dimension = len(questions.Topics)

// Scorer reduces an agent's accumulated answer events into a persona
// vector. Scoring is a pure function of the ordered event sequence plus the
// agent ID: re-scoring the same prefix always yields the same vector.
type Scorer struct {
	topicByQuestion map[int]string
	topicIndex      map[string]int
}

// NewScorer creates a scorer bound to the question catalog it will be
// scoring answers for.
func NewScorer(catalog []core.Question) *Scorer {
	s := &Scorer{
		topicByQuestion: make(map[int]string, len(catalog)),
		topicIndex:      make(map[string]int, len(questions.Topics)),
	}
	for _, q := range catalog {
		s.topicByQuestion[q.ID] = q.Topic
	}
	for i, topic := range questions.Topics {
		s.topicIndex[topic] = i
	}
	return s
}

// Score computes the persona vector for the given event prefix. The event
// log is never mutated.
func (s *Scorer) Score(agentID string, events []core.AnswerEvent) core.PersonaVector {
	sums := make([]float64, Dimension)
	counts := make([]int, Dimension)

	for _, ev := range events {
		topic, ok := s.topicByQuestion[ev.QuestionID]
		if !ok {
			continue
		}
		i := s.topicIndex[topic]
		sums[i] += EstimateValence(ev.Answer)
		counts[i]++
	}

	dims := make([]float64, Dimension)
	for i := range dims {
		if counts[i] > 0 {
			dims[i] = sums[i] / float64(counts[i])
		}
	}

	return core.PersonaVector{
		AgentID:     agentID,
		Dimensions:  dims,
		Summary:     s.summarize(agentID, dims, counts, len(events)),
		ComputedAt:  time.Now().UTC(),
		SourceCount: len(events),
	}
}

// summarize renders the dominant topic leanings as a human-readable string.
func (s *Scorer) summarize(agentID string, dims []float64, counts []int, total int) string {
	type leaning struct {
		topic  string
		weight float64
		count  int
	}

	var leanings []leaning
	for i, topic := range questions.Topics {
		if counts[i] > 0 {
			leanings = append(leanings, leaning{topic, dims[i], counts[i]})
		}
	}
	if len(leanings) == 0 {
		return fmt.Sprintf("Agent %s has no scored answers yet.", agentID)
	}

	sort.Slice(leanings, func(i, j int) bool {
		ai, aj := abs(leanings[i].weight), abs(leanings[j].weight)
		if ai != aj {
			return ai > aj
		}
		return leanings[i].topic < leanings[j].topic
	})

	top := leanings
	if len(top) > 3 {
		top = top[:3]
	}

	parts := make([]string, 0, len(top))
	for _, l := range top {
		parts = append(parts, fmt.Sprintf("%s toward %s (%.2f over %d answers)", lean(l.weight), l.topic, l.weight, l.count))
	}

	summary := fmt.Sprintf("Agent %s leans: %s. Based on %d answers.", agentID, strings.Join(parts, "; "), total)
	if total < 30 {
		summary += " Low sample size; persona is provisional."
	}
	return summary
}

func lean(w float64) string {
	switch {
	case w > 0.15:
		return "positive"
	case w < -0.15:
		return "negative"
	default:
		return "neutral"
	}
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
