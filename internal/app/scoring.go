package app

import (
	"math"

	"quiz-runner/internal/domain"
)

// ComputeScore counts the questions whose recorded answer is the correct option.
func ComputeScore(s *Session) int {
	score := 0
	for i, q := range s.questions {
		if s.answers[i] == q.Correct {
			score++
		}
	}
	return score
}

// Analyze builds the per-question breakdown in question order.
func Analyze(s *Session) []domain.QuestionResult {
	items := make([]domain.QuestionResult, 0, len(s.questions))
	for i, q := range s.questions {
		selected := s.answers[i]
		yours := domain.NotAnsweredText
		if selected != domain.NoAnswer {
			yours = q.Options[selected]
		}
		explanation := q.Explanation
		if explanation == "" {
			explanation = domain.NoExplanationText
		}
		items = append(items, domain.QuestionResult{
			Number:         i + 1,
			Prompt:         q.Prompt,
			Selected:       selected,
			YourAnswer:     yours,
			CorrectAnswer:  q.Options[q.Correct],
			Correct:        selected == q.Correct,
			ElapsedSeconds: s.elapsed[i],
			Explanation:    explanation,
		})
	}
	return items
}

// Summarize derives the aggregate results from the session. Total time is
// zero until the session is finished.
func Summarize(s *Session) domain.Results {
	total := len(s.questions)
	correct := ComputeScore(s)
	wrong := total - correct

	finished := s.finishedAt
	if finished.IsZero() {
		finished = s.startedAt
	}
	seconds := int(math.Round(finished.Sub(s.startedAt).Seconds()))

	return domain.Results{
		Score:          correct,
		Total:          total,
		Correct:        correct,
		Wrong:          wrong,
		TotalSeconds:   seconds,
		CorrectPercent: percent(correct, total),
		WrongPercent:   percent(wrong, total),
		Items:          Analyze(s),
		StartedAt:      s.startedAt,
		FinishedAt:     s.finishedAt,
	}
}

func percent(n, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(n) / float64(total) * 100
}
