package app

import (
	"time"

	"quiz-runner/internal/domain"
)

// DefaultQuestionSeconds is the per-question countdown length.
const DefaultQuestionSeconds = 30

// Session is the state of one quiz attempt. It has a single owner (the
// Controller) and is not safe for concurrent use on its own.
type Session struct {
	questions  []domain.Question
	duration   int
	current    int
	answers    []int
	elapsed    []int
	score      int
	startedAt  time.Time
	finishedAt time.Time
}

// StartSession creates a fresh session over questions. Every answer starts as
// domain.NoAnswer and every elapsed time as 0.
func StartSession(questions []domain.Question, duration int, now time.Time) (*Session, error) {
	if len(questions) == 0 {
		return nil, domain.ErrNoQuestions
	}
	if duration <= 0 {
		duration = DefaultQuestionSeconds
	}
	answers := make([]int, len(questions))
	for i := range answers {
		answers[i] = domain.NoAnswer
	}
	return &Session{
		questions: questions,
		duration:  duration,
		answers:   answers,
		elapsed:   make([]int, len(questions)),
		startedAt: now,
	}, nil
}

func (s *Session) Len() int { return len(s.questions) }

func (s *Session) CurrentIndex() int { return s.current }

// Question returns the question at index i.
func (s *Session) Question(i int) domain.Question { return s.questions[i] }

// Questions returns the active question set.
func (s *Session) Questions() []domain.Question { return s.questions }

// Answer returns the selected option for question i, or domain.NoAnswer.
func (s *Session) Answer(i int) int { return s.answers[i] }

// Answers returns a copy of all recorded answers.
func (s *Session) Answers() []int {
	out := make([]int, len(s.answers))
	copy(out, s.answers)
	return out
}

// Elapsed returns a copy of the recorded per-question seconds.
func (s *Session) Elapsed() []int {
	out := make([]int, len(s.elapsed))
	copy(out, s.elapsed)
	return out
}

func (s *Session) Score() int { return s.score }

func (s *Session) StartedAt() time.Time { return s.startedAt }

func (s *Session) FinishedAt() time.Time { return s.finishedAt }

// Finished reports whether Finish has been called.
func (s *Session) Finished() bool { return !s.finishedAt.IsZero() }

func (s *Session) inRange(i int) bool { return i >= 0 && i < len(s.questions) }

func (s *Session) setCurrent(i int) bool {
	if !s.inRange(i) {
		return false
	}
	s.current = i
	return true
}

// RecordAnswer stores option as the answer for question index. Only the first
// answer on a question records its elapsed time (duration - remaining).
func (s *Session) RecordAnswer(index, option, remaining int) error {
	if !s.inRange(index) {
		return domain.ErrInvalidOption
	}
	if option < 0 || option >= len(s.questions[index].Options) {
		return domain.ErrInvalidOption
	}
	if s.answers[index] == domain.NoAnswer {
		s.elapsed[index] = s.spent(remaining)
	}
	s.answers[index] = option
	return nil
}

// RecordTimeUp charges the full duration to an unanswered question.
func (s *Session) RecordTimeUp(index int) {
	if !s.inRange(index) || s.answers[index] != domain.NoAnswer {
		return
	}
	s.elapsed[index] = s.duration
}

// CaptureElapsed records the time spent browsing an unanswered question
// before navigating away from it.
func (s *Session) CaptureElapsed(index, remaining int) {
	if !s.inRange(index) || s.answers[index] != domain.NoAnswer {
		return
	}
	s.elapsed[index] = s.spent(remaining)
}

// Finish freezes the finish timestamp and computes the score.
func (s *Session) Finish(now time.Time) int {
	s.finishedAt = now
	s.score = ComputeScore(s)
	return s.score
}

func (s *Session) spent(remaining int) int {
	spent := s.duration - remaining
	if spent < 0 {
		return 0
	}
	if spent > s.duration {
		return s.duration
	}
	return spent
}
