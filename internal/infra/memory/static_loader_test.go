package memory

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"quiz-runner/internal/domain"
)

const bankYAML = `
science:
  easy:
    - question: What gas do plants absorb?
      options: [Oxygen, Carbon dioxide, Nitrogen]
      correct: 1
      explanation: Plants absorb carbon dioxide for photosynthesis.
    - question: Water boils at sea level at?
      options: ["90C", "100C"]
      correct: 1
`

func TestLoadBankFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bank.yaml")
	if err := os.WriteFile(path, []byte(bankYAML), 0o600); err != nil {
		t.Fatalf("write bank: %v", err)
	}

	loader, err := LoadBankFile(path)
	if err != nil {
		t.Fatalf("load bank: %v", err)
	}
	set, err := loader.LoadSet(context.Background(), domain.SetKey{Category: "science", Difficulty: "easy"})
	if err != nil {
		t.Fatalf("load set: %v", err)
	}
	if len(set.Questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(set.Questions))
	}
	if set.Questions[0].Correct != 1 || set.Questions[0].Explanation == "" {
		t.Fatalf("unexpected first question %+v", set.Questions[0])
	}
	if set.Questions[1].Explanation != "" {
		t.Fatalf("expected empty explanation, got %q", set.Questions[1].Explanation)
	}
}

func TestParseBankRejectsInvalidQuestions(t *testing.T) {
	cases := map[string]string{
		"single option":   "x:\n  easy:\n    - question: q\n      options: [a]\n      correct: 0\n",
		"correct too big": "x:\n  easy:\n    - question: q\n      options: [a, b]\n      correct: 2\n",
		"negative":        "x:\n  easy:\n    - question: q\n      options: [a, b]\n      correct: -1\n",
	}
	for name, doc := range cases {
		if _, err := ParseBank([]byte(doc)); !errors.Is(err, domain.ErrInvalidQuestion) {
			t.Fatalf("%s: expected ErrInvalidQuestion, got %v", name, err)
		}
	}
}

func TestBuiltinSetsAreValid(t *testing.T) {
	loader := NewStaticSetLoader(BuiltinSets())
	keys, err := loader.ListSets(context.Background())
	if err != nil {
		t.Fatalf("list sets: %v", err)
	}
	want := []domain.SetKey{
		{Category: "general", Difficulty: "easy"},
		{Category: "programming", Difficulty: "easy"},
		{Category: "programming", Difficulty: "medium"},
	}
	if len(keys) != len(want) {
		t.Fatalf("expected %d sets, got %v", len(want), keys)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("key %d: expected %v, got %v", i, want[i], keys[i])
		}
	}
	for _, set := range loader.Sets() {
		if len(set.Questions) == 0 {
			t.Fatalf("%s is empty", set.Key())
		}
		if err := set.Validate(); err != nil {
			t.Fatalf("builtin set invalid: %v", err)
		}
	}
}
