package persona

import (
	"fmt"

	"github.com/EidolonLabs/persona-launchpad/core"
)

// Synthesize produces an answer for a question without any external call,
// derived from the current persona vector. Used when the question bank is
// exhausted before the session target is reached. Deterministic: the same
// vector and question always yield the same text.
func (s *Scorer) Synthesize(vec core.PersonaVector, q core.Question) string {
	weight := 0.0
	if i, ok := s.topicIndex[q.Topic]; ok && i < len(vec.Dimensions) {
		weight = vec.Dimensions[i]
	}

	switch {
	case weight > 0.15:
		return fmt.Sprintf(
			"Drawing on what I have already shared, %s is something I hold in high regard. Asked %q, I would answer from that same positive footing: it guides me and I lean into it.",
			q.Topic, q.Text)
	case weight < -0.15:
		return fmt.Sprintf(
			"From my earlier answers, %s remains a difficult subject for me. Asked %q, I would admit the same unease: I approach it carefully and guard myself around it.",
			q.Topic, q.Text)
	default:
		return fmt.Sprintf(
			"My earlier answers show no strong pull around %s. Asked %q, I would stay measured: I weigh each situation on its own rather than by fixed principle.",
			q.Topic, q.Text)
	}
}
