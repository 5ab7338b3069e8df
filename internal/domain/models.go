package domain

import (
	"fmt"
	"time"
)

// NoAnswer marks a question that has no selected option.
const NoAnswer = -1

const (
	// NotAnsweredText is shown in the breakdown for unanswered questions.
	NotAnsweredText = "Not answered"
	// NoExplanationText replaces a missing explanation in the breakdown.
	NoExplanationText = "No explanation available."
)

// SetKey identifies a question set in the bank.
type SetKey struct {
	Category   string `json:"category" yaml:"category"`
	Difficulty string `json:"difficulty" yaml:"difficulty"`
}

func (k SetKey) String() string {
	return k.Category + "/" + k.Difficulty
}

// Question models an MCQ question with exactly one correct option.
type Question struct {
	Prompt      string   `json:"question" yaml:"question"`
	Options     []string `json:"options" yaml:"options"`
	Correct     int      `json:"correct" yaml:"correct"`
	Explanation string   `json:"explanation,omitempty" yaml:"explanation,omitempty"`
}

// Validate checks that the question has at least two options and a valid correct index.
func (q Question) Validate() error {
	if len(q.Options) < 2 {
		return fmt.Errorf("%w: %q has %d options", ErrInvalidQuestion, q.Prompt, len(q.Options))
	}
	if q.Correct < 0 || q.Correct >= len(q.Options) {
		return fmt.Errorf("%w: %q correct index %d out of range", ErrInvalidQuestion, q.Prompt, q.Correct)
	}
	return nil
}

// QuestionSet is the ordered list of questions for one category and difficulty.
type QuestionSet struct {
	Category   string     `json:"category" yaml:"category"`
	Difficulty string     `json:"difficulty" yaml:"difficulty"`
	Questions  []Question `json:"questions" yaml:"questions"`
}

// Key returns the bank key of the set.
func (s QuestionSet) Key() SetKey {
	return SetKey{Category: s.Category, Difficulty: s.Difficulty}
}

// Validate checks every question in the set.
func (s QuestionSet) Validate() error {
	for i, q := range s.Questions {
		if err := q.Validate(); err != nil {
			return fmt.Errorf("%s question %d: %w", s.Key(), i+1, err)
		}
	}
	return nil
}

// Phase is the coarse state of a quiz attempt.
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseActive  Phase = "active"
	PhaseResults Phase = "results"
)

// OptionView is one option as shown to the player.
type OptionView struct {
	Text     string `json:"text"`
	Selected bool   `json:"selected"`
}

// TimerView is the countdown as shown to the player.
type TimerView struct {
	Remaining int  `json:"remaining"`
	Urgent    bool `json:"urgent"`
	Running   bool `json:"running"`
}

// View is the snapshot pushed to presentation sinks after every state change.
type View struct {
	AttemptID   string       `json:"attemptId,omitempty"`
	Phase       Phase        `json:"phase"`
	Player      string       `json:"player,omitempty"`
	Category    string       `json:"category,omitempty"`
	Difficulty  string       `json:"difficulty,omitempty"`
	Index       int          `json:"index"`
	Total       int          `json:"total"`
	Prompt      string       `json:"prompt,omitempty"`
	Options     []OptionView `json:"options,omitempty"`
	Timer       TimerView    `json:"timer"`
	CanPrevious bool         `json:"canPrevious"`
	IsLast      bool         `json:"isLast"`
	Answered    []bool       `json:"answered,omitempty"`
	Score       int          `json:"score"`
	Results     *Results     `json:"results,omitempty"`
}

// QuestionResult is one row of the detailed analysis.
type QuestionResult struct {
	Number         int    `json:"number"`
	Prompt         string `json:"question"`
	Selected       int    `json:"selected"`
	YourAnswer     string `json:"yourAnswer"`
	CorrectAnswer  string `json:"correctAnswer"`
	Correct        bool   `json:"correct"`
	ElapsedSeconds int    `json:"elapsedSeconds"`
	Explanation    string `json:"explanation"`
}

// Results summarizes a submitted attempt.
type Results struct {
	Player         string           `json:"player,omitempty"`
	Category       string           `json:"category"`
	Difficulty     string           `json:"difficulty"`
	Score          int              `json:"score"`
	Total          int              `json:"total"`
	Correct        int              `json:"correct"`
	Wrong          int              `json:"wrong"`
	TotalSeconds   int              `json:"totalSeconds"`
	CorrectPercent float64          `json:"correctPercent"`
	WrongPercent   float64          `json:"wrongPercent"`
	Items          []QuestionResult `json:"items"`
	StartedAt      time.Time        `json:"startedAt"`
	FinishedAt     time.Time        `json:"finishedAt"`
}
