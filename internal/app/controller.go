package app

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"quiz-runner/internal/domain"
)

// DefaultPlayer is used when the player leaves the name blank.
const DefaultPlayer = "Quiz Champion"

// QuestionSource provides the question set for a quiz start.
type QuestionSource interface {
	GetQuestions(ctx context.Context, key domain.SetKey) (domain.QuestionSet, error)
}

// ControllerOptions tunes a Controller. Zero values fall back to defaults.
type ControllerOptions struct {
	AttemptID string
	Timer     TimerConfig
	Now       func() time.Time
}

// Controller drives one quiz attempt: it owns the session, the per-question
// timer and the subscribers that render it. Intents and timer ticks are
// serialized through mu.
type Controller struct {
	id     string
	source QuestionSource
	now    func() time.Time

	mu          sync.Mutex
	timer       *Timer
	phase       domain.Phase
	player      string
	set         domain.QuestionSet
	session     *Session
	results     *domain.Results
	subscribers map[chan domain.View]struct{}
	closed      bool
}

func NewController(source QuestionSource, sched Scheduler, opts ControllerOptions) *Controller {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	c := &Controller{
		id:          opts.AttemptID,
		source:      source,
		now:         now,
		phase:       domain.PhaseIdle,
		subscribers: make(map[chan domain.View]struct{}),
	}
	c.timer = NewTimer(sched, opts.Timer, &c.mu, c.handleTickLocked, c.handleExpiryLocked)
	return c
}

// ID returns the attempt ID the controller was created with.
func (c *Controller) ID() string { return c.id }

// Start loads the question set for key and begins a fresh session. It may be
// called in any phase; a failed start leaves the previous session untouched.
func (c *Controller) Start(ctx context.Context, player string, key domain.SetKey) (domain.View, error) {
	set, err := c.source.GetQuestions(ctx, key)
	if err != nil {
		return c.View(), err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	player = strings.TrimSpace(player)
	if player == "" {
		player = DefaultPlayer
	}
	if err := c.beginLocked(set); err != nil {
		return c.viewLocked(), err
	}
	c.player = player
	log.Printf("quiz started: attempt=%s player=%q set=%s questions=%d", c.id, player, set.Key(), len(set.Questions))
	return c.broadcastLocked(), nil
}

// Restart begins a fresh session over the current question set.
func (c *Controller) Restart() (domain.View, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session == nil {
		return c.viewLocked(), domain.ErrNotStarted
	}
	if err := c.beginLocked(c.set); err != nil {
		return c.viewLocked(), err
	}
	log.Printf("quiz restarted: attempt=%s set=%s", c.id, c.set.Key())
	return c.broadcastLocked(), nil
}

func (c *Controller) beginLocked(set domain.QuestionSet) error {
	session, err := StartSession(set.Questions, c.timer.Seconds(), c.now())
	if err != nil {
		return err
	}
	c.timer.stopLocked()
	c.set = set
	c.session = session
	c.results = nil
	c.phase = domain.PhaseActive
	c.timer.startLocked()
	return nil
}

// SelectOption records option as the answer to the current question.
func (c *Controller) SelectOption(option int) (domain.View, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase != domain.PhaseActive {
		return c.viewLocked(), domain.ErrNotActive
	}
	if err := c.session.RecordAnswer(c.session.current, option, c.timer.remaining); err != nil {
		return c.viewLocked(), err
	}
	return c.broadcastLocked(), nil
}

// Previous moves to the previous question; a no-op on the first one.
func (c *Controller) Previous() (domain.View, error) {
	return c.navigate(func(s *Session) int { return s.current - 1 })
}

// Next moves to the next question; a no-op on the last one.
func (c *Controller) Next() (domain.View, error) {
	return c.navigate(func(s *Session) int { return s.current + 1 })
}

// JumpTo moves directly to question index; a no-op when index is out of range.
func (c *Controller) JumpTo(index int) (domain.View, error) {
	return c.navigate(func(*Session) int { return index })
}

func (c *Controller) navigate(target func(*Session) int) (domain.View, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase != domain.PhaseActive {
		return c.viewLocked(), domain.ErrNotActive
	}
	if !c.moveLocked(target(c.session)) {
		return c.viewLocked(), nil
	}
	return c.broadcastLocked(), nil
}

// moveLocked leaves the current question for index, restarting the timer.
// It reports false and changes nothing when index is out of range.
func (c *Controller) moveLocked(index int) bool {
	if !c.session.inRange(index) {
		return false
	}
	c.session.CaptureElapsed(c.session.current, c.timer.remaining)
	c.timer.stopLocked()
	c.session.setCurrent(index)
	c.timer.startLocked()
	return true
}

func (c *Controller) handleTickLocked(int) {
	c.broadcastLocked()
}

// handleExpiryLocked charges the full duration and advances like Next. On the
// last question the timer just stays expired.
func (c *Controller) handleExpiryLocked() {
	if c.phase != domain.PhaseActive {
		return
	}
	c.session.RecordTimeUp(c.session.current)
	c.moveLocked(c.session.current + 1)
	c.broadcastLocked()
}

// Submit stops the timer, scores the attempt and shows the results. Submitting
// again returns the same results.
func (c *Controller) Submit() (domain.Results, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase == domain.PhaseResults && c.results != nil {
		return *c.results, nil
	}
	if c.phase != domain.PhaseActive {
		return domain.Results{}, domain.ErrNotActive
	}

	c.timer.stopLocked()
	c.session.Finish(c.now())
	results := Summarize(c.session)
	results.Player = c.player
	results.Category = c.set.Category
	results.Difficulty = c.set.Difficulty
	c.results = &results
	c.phase = domain.PhaseResults
	log.Printf("quiz submitted: attempt=%s player=%q score=%d/%d time=%ds", c.id, c.player, results.Score, results.Total, results.TotalSeconds)
	c.broadcastLocked()
	return results, nil
}

// View returns the current snapshot without notifying subscribers.
func (c *Controller) View() domain.View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewLocked()
}

// Subscribe returns a channel that receives a view after every change,
// starting with the current one. The caller must invoke cancel to avoid leaks.
func (c *Controller) Subscribe() (<-chan domain.View, func()) {
	ch := make(chan domain.View, 8)

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	c.subscribers[ch] = struct{}{}
	ch <- c.viewLocked()
	c.mu.Unlock()

	cancel := func() {
		c.mu.Lock()
		if _, ok := c.subscribers[ch]; ok {
			delete(c.subscribers, ch)
			close(ch)
		}
		c.mu.Unlock()
	}
	return ch, cancel
}

// Close stops the timer and ends all subscriptions.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.timer.stopLocked()
	for ch := range c.subscribers {
		delete(c.subscribers, ch)
		close(ch)
	}
}

func (c *Controller) broadcastLocked() domain.View {
	view := c.viewLocked()
	for ch := range c.subscribers {
		select {
		case ch <- view:
		default:
			// Drop the oldest update so a slow sink always ends on the latest view.
			select {
			case <-ch:
			default:
			}
			ch <- view
		}
	}
	return view
}

func (c *Controller) viewLocked() domain.View {
	view := domain.View{
		AttemptID: c.id,
		Phase:     c.phase,
		Player:    c.player,
	}
	if c.session == nil {
		return view
	}

	s := c.session
	q := s.questions[s.current]
	view.Category = c.set.Category
	view.Difficulty = c.set.Difficulty
	view.Index = s.current
	view.Total = len(s.questions)
	view.Prompt = q.Prompt
	view.Options = make([]domain.OptionView, len(q.Options))
	for i, text := range q.Options {
		view.Options[i] = domain.OptionView{Text: text, Selected: s.answers[s.current] == i}
	}
	view.Timer = domain.TimerView{
		Remaining: c.timer.remaining,
		Urgent:    c.timer.urgentLocked(),
		Running:   c.timer.state == TimerRunning,
	}
	view.CanPrevious = s.current > 0
	view.IsLast = s.current == len(s.questions)-1
	view.Answered = make([]bool, len(s.questions))
	for i, a := range s.answers {
		view.Answered[i] = a != domain.NoAnswer
	}
	view.Score = s.score
	if c.results != nil {
		results := *c.results
		view.Results = &results
	}
	return view
}
