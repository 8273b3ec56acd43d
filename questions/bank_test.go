package questions

import (
	"testing"

	"github.com/EidolonLabs/persona-launchpad/core"
)

func smallCatalog(n int) []core.Question {
	catalog := make([]core.Question, n)
	for i := range catalog {
		catalog[i] = core.Question{ID: i + 1, Text: "question", Topic: Topics[i%len(Topics)]}
	}
	return catalog
}

func TestBankNoRepeats(t *testing.T) {
	bank := NewBank(smallCatalog(10))
	seen := make(map[int]bool)

	for {
		batch := bank.SampleBatch("agent-1", 3)
		if len(batch) == 0 {
			break
		}
		for _, q := range batch {
			if seen[q.ID] {
				t.Fatalf("Question %d issued twice", q.ID)
			}
			seen[q.ID] = true
		}
	}

	if len(seen) != 10 {
		t.Errorf("Expected all 10 questions issued, got %d", len(seen))
	}
}

func TestBankShortBatchAndExhaustion(t *testing.T) {
	bank := NewBank(smallCatalog(5))

	batch := bank.SampleBatch("agent-1", 3)
	if len(batch) != 3 {
		t.Fatalf("Expected full batch of 3, got %d", len(batch))
	}

	batch = bank.SampleBatch("agent-1", 3)
	if len(batch) != 2 {
		t.Fatalf("Expected short batch of 2, got %d", len(batch))
	}

	batch = bank.SampleBatch("agent-1", 3)
	if len(batch) != 0 {
		t.Fatalf("Expected empty batch after exhaustion, got %d", len(batch))
	}
	if bank.RemainingCount("agent-1") != 0 {
		t.Errorf("Expected remaining count 0, got %d", bank.RemainingCount("agent-1"))
	}
}

func TestBankPerAgentCursors(t *testing.T) {
	bank := NewBank(smallCatalog(6))

	first := bank.SampleBatch("agent-1", 4)
	second := bank.SampleBatch("agent-2", 4)

	if first[0].ID != second[0].ID {
		t.Error("Agents should see the catalog in the same deterministic order")
	}
	if bank.RemainingCount("agent-1") != 2 || bank.RemainingCount("agent-2") != 2 {
		t.Error("Cursors should advance independently per agent")
	}
}

func TestBankDeduplication(t *testing.T) {
	catalog := smallCatalog(4)
	catalog = append(catalog, core.Question{ID: 2, Text: "duplicate", Topic: "values"})
	bank := NewBank(catalog)

	if bank.Size() != 4 {
		t.Errorf("Expected catalog deduplicated to 4, got %d", bank.Size())
	}
}

func TestBankReset(t *testing.T) {
	bank := NewBank(smallCatalog(4))
	bank.SampleBatch("agent-1", 4)
	bank.Reset("agent-1")

	if bank.RemainingCount("agent-1") != 4 {
		t.Errorf("Expected cursor rewound to 4 remaining, got %d", bank.RemainingCount("agent-1"))
	}
}

func TestDefaultCatalogStableOrdinals(t *testing.T) {
	a := DefaultCatalog()
	b := DefaultCatalog()

	if len(a) == 0 || len(a) != len(b) {
		t.Fatalf("Catalog should be non-empty and stable, got %d and %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("Catalog entry %d differs between builds", i)
		}
		if a[i].ID != i+1 {
			t.Fatalf("Expected stable ordinal %d, got %d", i+1, a[i].ID)
		}
	}
}
