package persona

import (
	"reflect"
	"testing"

	"github.com/EidolonLabs/persona-launchpad/core"
	"github.com/EidolonLabs/persona-launchpad/questions"
)

func testCatalog() []core.Question {
	return []core.Question{
		{ID: 1, Text: "q1", Topic: "values"},
		{ID: 2, Text: "q2", Topic: "fears"},
		{ID: 3, Text: "q3", Topic: "values"},
	}
}

func testEvents() []core.AnswerEvent {
	return []core.AnswerEvent{
		{AgentID: "a1", QuestionID: 1, Answer: "I love and cherish what I value most.", Sequence: 1},
		{AgentID: "a1", QuestionID: 2, Answer: "I fear being lost and alone, and I avoid it.", Sequence: 2},
		{AgentID: "a1", QuestionID: 3, Answer: "I trust my principles.", Sequence: 3},
	}
}

func TestScoreDeterministic(t *testing.T) {
	scorer := NewScorer(testCatalog())
	events := testEvents()

	first := scorer.Score("a1", events)
	second := scorer.Score("a1", events)

	if !reflect.DeepEqual(first.Dimensions, second.Dimensions) {
		t.Errorf("Dimensions differ across identical scoring runs:\n%v\n%v", first.Dimensions, second.Dimensions)
	}
	if first.Summary != second.Summary {
		t.Errorf("Summaries differ across identical scoring runs")
	}
	if first.SourceCount != len(events) {
		t.Errorf("Expected source count %d, got %d", len(events), first.SourceCount)
	}
}

func TestScoreDeterministicOnPrefixes(t *testing.T) {
	scorer := NewScorer(testCatalog())
	events := testEvents()

	for i := 0; i <= len(events); i++ {
		prefix := events[:i]
		a := scorer.Score("a1", prefix)
		b := scorer.Score("a1", prefix)
		if !reflect.DeepEqual(a.Dimensions, b.Dimensions) || a.Summary != b.Summary {
			t.Fatalf("Scoring prefix of length %d is not deterministic", i)
		}
	}
}

func TestScoreTopicLeanings(t *testing.T) {
	scorer := NewScorer(testCatalog())
	vec := scorer.Score("a1", testEvents())

	if len(vec.Dimensions) != Dimension {
		t.Fatalf("Expected %d dimensions, got %d", Dimension, len(vec.Dimensions))
	}

	valuesIdx, fearsIdx := -1, -1
	for i, topic := range questions.Topics {
		switch topic {
		case "values":
			valuesIdx = i
		case "fears":
			fearsIdx = i
		}
	}

	if vec.Dimensions[valuesIdx] <= 0 {
		t.Errorf("Positive answers about values should score positive, got %f", vec.Dimensions[valuesIdx])
	}
	if vec.Dimensions[fearsIdx] >= 0 {
		t.Errorf("Negative answers about fears should score negative, got %f", vec.Dimensions[fearsIdx])
	}
	if vec.Summary == "" {
		t.Error("Summary should not be empty")
	}
}

func TestScoreEmptyLog(t *testing.T) {
	scorer := NewScorer(testCatalog())
	vec := scorer.Score("a1", nil)

	if vec.SourceCount != 0 {
		t.Errorf("Expected source count 0, got %d", vec.SourceCount)
	}
	for i, d := range vec.Dimensions {
		if d != 0 {
			t.Errorf("Dimension %d should be zero with no events, got %f", i, d)
		}
	}
}

func TestSynthesizeDeterministic(t *testing.T) {
	scorer := NewScorer(testCatalog())
	vec := scorer.Score("a1", testEvents())
	q := core.Question{ID: 9, Text: "How do you handle values under pressure?", Topic: "values"}

	first := scorer.Synthesize(vec, q)
	second := scorer.Synthesize(vec, q)

	if first == "" {
		t.Fatal("Synthesized answer should not be empty")
	}
	if first != second {
		t.Error("Synthesis must be deterministic for the same vector and question")
	}
}

func TestEstimateValenceBounds(t *testing.T) {
	cases := []string{
		"",
		"I love, love, love this.",
		"I fear and hate and regret everything.",
		"Plain text with no affect words at all.",
	}
	for _, text := range cases {
		v := EstimateValence(text)
		if v < -1 || v > 1 {
			t.Errorf("Valence %f out of range for %q", v, text)
		}
	}
}

func TestEstimateConfidenceHedging(t *testing.T) {
	confident := EstimateConfidence("I am certain of my path.")
	hedged := EstimateConfidence("Maybe, perhaps, it depends, I guess.")

	if hedged >= confident {
		t.Errorf("Hedged text should score lower confidence: %f vs %f", hedged, confident)
	}
	for _, c := range []float64{confident, hedged} {
		if c < 0 || c > 1 {
			t.Errorf("Confidence %f out of range", c)
		}
	}
}
