package app_test

import (
	"context"
	"testing"
	"time"

	"quiz-runner/internal/app"
	"quiz-runner/internal/domain"
	"quiz-runner/internal/infra/memory"
	"github.com/stretchr/testify/require"
)

var twoQuestions = domain.SetKey{Category: "demo", Difficulty: "easy"}

func newTestController(t *testing.T, sets ...domain.QuestionSet) (*app.Controller, *app.ManualScheduler, *fakeClock) {
	t.Helper()
	if len(sets) == 0 {
		sets = []domain.QuestionSet{{Category: "demo", Difficulty: "easy", Questions: questions(1, 0)}}
	}
	repo := memory.NewQuestionRepository(memory.NewStaticSetLoader(sets), time.Minute)
	bank := app.NewQuestionBank(repo, sets[0].Key(), nil)
	sched := app.NewManualScheduler()
	clock := &fakeClock{now: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)}
	c := app.NewController(bank, sched, app.ControllerOptions{AttemptID: "attempt-1", Now: clock.Now})
	t.Cleanup(c.Close)
	return c, sched, clock
}

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

// tick advances the countdown and the wall clock by n seconds.
func tick(sched *app.ManualScheduler, clock *fakeClock, n int) {
	for i := 0; i < n; i++ {
		clock.now = clock.now.Add(time.Second)
		sched.Tick(1)
	}
}

func start(t *testing.T, c *app.Controller, key domain.SetKey) domain.View {
	t.Helper()
	view, err := c.Start(context.Background(), "Alice", key)
	require.NoError(t, err)
	return view
}

func elapsedOf(results domain.Results) []int {
	out := make([]int, len(results.Items))
	for i, item := range results.Items {
		out[i] = item.ElapsedSeconds
	}
	return out
}

func selectedOf(results domain.Results) []int {
	out := make([]int, len(results.Items))
	for i, item := range results.Items {
		out[i] = item.Selected
	}
	return out
}

func TestAnswerThenTimeUpScenario(t *testing.T) {
	c, sched, clock := newTestController(t)
	view := start(t, c, twoQuestions)
	require.Equal(t, domain.PhaseActive, view.Phase)
	require.Equal(t, 2, view.Total)

	tick(sched, clock, 5)
	_, err := c.SelectOption(1)
	require.NoError(t, err)

	view, err = c.Next()
	require.NoError(t, err)
	require.Equal(t, 1, view.Index)
	require.True(t, view.IsLast)

	tick(sched, clock, 30)
	view = c.View()
	require.Equal(t, 1, view.Index, "expiry on the last question does not move")
	require.False(t, view.Timer.Running)
	require.Equal(t, 0, view.Timer.Remaining)

	results, err := c.Submit()
	require.NoError(t, err)
	require.Equal(t, 1, results.Score)
	require.Equal(t, []int{5, 30}, elapsedOf(results))
	require.Equal(t, []int{1, domain.NoAnswer}, selectedOf(results))
	require.True(t, results.Items[0].Correct)
	require.False(t, results.Items[1].Correct)
	require.Equal(t, domain.NotAnsweredText, results.Items[1].YourAnswer)
	require.Equal(t, 35, results.TotalSeconds)
	require.Equal(t, "Alice", results.Player)
}

func TestTimeUpAdvancesToNextQuestion(t *testing.T) {
	c, sched, clock := newTestController(t, domain.QuestionSet{Category: "demo", Difficulty: "easy", Questions: questions(0, 1, 2)})
	start(t, c, twoQuestions)

	tick(sched, clock, 30)
	view := c.View()
	require.Equal(t, 1, view.Index)
	require.True(t, view.Timer.Running)
	require.Equal(t, 30, view.Timer.Remaining)
	require.Equal(t, 1, sched.Pending())

	results, err := c.Submit()
	require.NoError(t, err)
	require.Equal(t, []int{30, 0, 0}, elapsedOf(results))
	require.Equal(t, domain.NoAnswer, results.Items[0].Selected)
}

func TestTimeUpKeepsExistingAnswer(t *testing.T) {
	c, sched, clock := newTestController(t)
	start(t, c, twoQuestions)

	tick(sched, clock, 5)
	_, err := c.SelectOption(3)
	require.NoError(t, err)
	tick(sched, clock, 25)

	require.Equal(t, 1, c.View().Index)
	results, err := c.Submit()
	require.NoError(t, err)
	require.Equal(t, 3, results.Items[0].Selected)
	require.Equal(t, 5, results.Items[0].ElapsedSeconds)
}

func TestNavigationBoundariesAreNoops(t *testing.T) {
	c, sched, clock := newTestController(t, domain.QuestionSet{Category: "demo", Difficulty: "easy", Questions: questions(0, 1, 2)})
	start(t, c, twoQuestions)

	tick(sched, clock, 4)
	view, err := c.Previous()
	require.NoError(t, err)
	require.Equal(t, 0, view.Index)
	require.False(t, view.CanPrevious)
	require.Equal(t, 26, view.Timer.Remaining, "a no-op leaves the timer running")

	for _, target := range []int{-1, 3, 100} {
		view, err = c.JumpTo(target)
		require.NoError(t, err)
		require.Equal(t, 0, view.Index)
	}

	_, _ = c.Next()
	view, _ = c.Next()
	require.Equal(t, 2, view.Index)
	require.True(t, view.IsLast)
	view, err = c.Next()
	require.NoError(t, err)
	require.Equal(t, 2, view.Index)

	view, err = c.JumpTo(0)
	require.NoError(t, err)
	require.Equal(t, 0, view.Index)
	require.Equal(t, 30, view.Timer.Remaining)
}

func TestNavigationCapturesBrowsingTime(t *testing.T) {
	c, sched, clock := newTestController(t, domain.QuestionSet{Category: "demo", Difficulty: "easy", Questions: questions(0, 1, 2)})
	start(t, c, twoQuestions)

	tick(sched, clock, 7)
	_, _ = c.Next()

	tick(sched, clock, 4)
	_, err := c.JumpTo(2)
	require.NoError(t, err)

	tick(sched, clock, 2)
	_, err = c.Previous()
	require.NoError(t, err)

	results, err := c.Submit()
	require.NoError(t, err)
	require.Equal(t, []int{7, 4, 2}, elapsedOf(results))
}

func TestNavigationDoesNotOverwriteAnsweredTime(t *testing.T) {
	c, sched, clock := newTestController(t, domain.QuestionSet{Category: "demo", Difficulty: "easy", Questions: questions(0, 1, 2)})
	start(t, c, twoQuestions)

	tick(sched, clock, 3)
	_, _ = c.SelectOption(0)
	tick(sched, clock, 5)
	_, _ = c.JumpTo(2)
	_, _ = c.JumpTo(0)
	tick(sched, clock, 9)
	_, _ = c.Next()

	results, err := c.Submit()
	require.NoError(t, err)
	require.Equal(t, 3, results.Items[0].ElapsedSeconds)
}

func TestReselectionKeepsFirstElapsed(t *testing.T) {
	c, sched, clock := newTestController(t)
	start(t, c, twoQuestions)

	tick(sched, clock, 2)
	_, err := c.SelectOption(0)
	require.NoError(t, err)
	tick(sched, clock, 6)
	view, err := c.SelectOption(1)
	require.NoError(t, err)
	require.True(t, view.Options[1].Selected)
	require.False(t, view.Options[0].Selected)
	require.Equal(t, []bool{true, false}, view.Answered)

	results, err := c.Submit()
	require.NoError(t, err)
	require.Equal(t, 1, results.Items[0].Selected)
	require.Equal(t, 2, results.Items[0].ElapsedSeconds)
}

func TestSelectOptionRejectsInvalidIndex(t *testing.T) {
	c, _, _ := newTestController(t)
	start(t, c, twoQuestions)

	view, err := c.SelectOption(4)
	require.ErrorIs(t, err, domain.ErrInvalidOption)
	require.Equal(t, []bool{false, false}, view.Answered)
}

func TestStartFallsBackToDefaultSet(t *testing.T) {
	repo := memory.NewQuestionRepository(memory.NewStaticSetLoader(memory.BuiltinSets()), time.Minute)
	bank := app.NewQuestionBank(repo, domain.SetKey{}, nil)
	c := app.NewController(bank, app.NewManualScheduler(), app.ControllerOptions{})
	defer c.Close()

	view, err := c.Start(context.Background(), "", domain.SetKey{Category: "history", Difficulty: "hard"})
	require.NoError(t, err)
	require.Equal(t, "programming", view.Category)
	require.Equal(t, "easy", view.Difficulty)
	require.Equal(t, 10, view.Total)
	require.Equal(t, app.DefaultPlayer, view.Player)
}

func TestFailedStartKeepsPreviousSession(t *testing.T) {
	sets := []domain.QuestionSet{{Category: "demo", Difficulty: "easy", Questions: questions(1, 0)}}
	repo := memory.NewQuestionRepository(memory.NewStaticSetLoader(sets), time.Minute)
	bank := app.NewQuestionBank(repo, domain.SetKey{Category: "missing", Difficulty: "none"}, nil)
	sched := app.NewManualScheduler()
	c := app.NewController(bank, sched, app.ControllerOptions{})
	defer c.Close()

	_, err := c.Start(context.Background(), "Bob", domain.SetKey{Category: "nope", Difficulty: "none"})
	require.ErrorIs(t, err, domain.ErrNoQuestions)
	require.Equal(t, domain.PhaseIdle, c.View().Phase)

	_, err = c.Start(context.Background(), "Bob", twoQuestions)
	require.NoError(t, err)
	sched.Tick(3)

	view, err := c.Start(context.Background(), "Bob", domain.SetKey{Category: "nope", Difficulty: "none"})
	require.ErrorIs(t, err, domain.ErrNoQuestions)
	require.Equal(t, domain.PhaseActive, view.Phase)
	require.Equal(t, "demo", view.Category)
	require.Equal(t, 27, view.Timer.Remaining)
}

func TestSubmitIsIdempotent(t *testing.T) {
	c, sched, clock := newTestController(t)
	start(t, c, twoQuestions)
	_, _ = c.SelectOption(1)
	tick(sched, clock, 3)

	first, err := c.Submit()
	require.NoError(t, err)
	require.Zero(t, sched.Pending(), "submission stops the timer")

	tick(sched, clock, 10)
	second, err := c.Submit()
	require.NoError(t, err)
	require.Equal(t, first, second)

	view := c.View()
	require.Equal(t, domain.PhaseResults, view.Phase)
	require.NotNil(t, view.Results)
	require.Equal(t, 1, view.Score)

	_, err = c.SelectOption(0)
	require.ErrorIs(t, err, domain.ErrNotActive)
	_, err = c.Next()
	require.ErrorIs(t, err, domain.ErrNotActive)
}

func TestIntentsBeforeStart(t *testing.T) {
	c, _, _ := newTestController(t)

	_, err := c.Submit()
	require.ErrorIs(t, err, domain.ErrNotActive)
	_, err = c.Restart()
	require.ErrorIs(t, err, domain.ErrNotStarted)
	_, err = c.JumpTo(0)
	require.ErrorIs(t, err, domain.ErrNotActive)
}

func TestRestartResetsSession(t *testing.T) {
	c, sched, clock := newTestController(t)
	start(t, c, twoQuestions)

	tick(sched, clock, 4)
	_, _ = c.SelectOption(1)
	_, _ = c.Next()
	_, _ = c.SelectOption(0)
	results, err := c.Submit()
	require.NoError(t, err)
	require.Equal(t, 2, results.Score)

	view, err := c.Restart()
	require.NoError(t, err)
	require.Equal(t, domain.PhaseActive, view.Phase)
	require.Equal(t, 0, view.Index)
	require.Equal(t, []bool{false, false}, view.Answered)
	require.Equal(t, 0, view.Score)
	require.Nil(t, view.Results)
	require.True(t, view.Timer.Running)
	require.Equal(t, 30, view.Timer.Remaining)

	results, err = c.Submit()
	require.NoError(t, err)
	require.Equal(t, 0, results.Score)
	require.Equal(t, []int{0, 0}, elapsedOf(results))
	require.Equal(t, []int{domain.NoAnswer, domain.NoAnswer}, selectedOf(results))
}

func TestViewReportsUrgency(t *testing.T) {
	c, sched, clock := newTestController(t)
	start(t, c, twoQuestions)

	tick(sched, clock, 19)
	require.False(t, c.View().Timer.Urgent)
	tick(sched, clock, 1)
	view := c.View()
	require.Equal(t, 10, view.Timer.Remaining)
	require.True(t, view.Timer.Urgent)
}

func TestSubscribeReceivesUpdates(t *testing.T) {
	c, sched, clock := newTestController(t)

	ch, cancel := c.Subscribe()
	defer cancel()

	initial := <-ch
	require.Equal(t, domain.PhaseIdle, initial.Phase)

	start(t, c, twoQuestions)
	started := <-ch
	require.Equal(t, domain.PhaseActive, started.Phase)
	require.Equal(t, "attempt-1", started.AttemptID)

	tick(sched, clock, 1)
	ticked := <-ch
	require.Equal(t, 29, ticked.Timer.Remaining)

	_, _ = c.SelectOption(0)
	selected := <-ch
	require.True(t, selected.Answered[0])
}

func TestSlowSubscriberGetsLatestView(t *testing.T) {
	c, sched, clock := newTestController(t)
	ch, cancel := c.Subscribe()
	defer cancel()

	start(t, c, twoQuestions)
	tick(sched, clock, 20)

	var last domain.View
	for len(ch) > 0 {
		last = <-ch
	}
	require.Equal(t, 10, last.Timer.Remaining)
}

func TestCloseStopsTimerAndSubscriptions(t *testing.T) {
	c, sched, _ := newTestController(t)
	ch, cancel := c.Subscribe()
	defer cancel()
	start(t, c, twoQuestions)

	c.Close()
	require.Zero(t, sched.Pending())

	for range ch {
	}
	_, open := <-ch
	require.False(t, open)
}

func TestControllerWithTickerScheduler(t *testing.T) {
	sets := []domain.QuestionSet{{Category: "demo", Difficulty: "easy", Questions: questions(1, 0)}}
	bank := app.NewQuestionBank(memory.NewQuestionRepository(memory.NewStaticSetLoader(sets), time.Minute), sets[0].Key(), nil)
	c := app.NewController(bank, app.TickerScheduler{}, app.ControllerOptions{
		Timer: app.TimerConfig{Seconds: 2, Interval: 2 * time.Millisecond},
	})
	defer c.Close()

	ch, cancel := c.Subscribe()
	defer cancel()
	start(t, c, twoQuestions)

	deadline := time.After(2 * time.Second)
	for {
		select {
		case view := <-ch:
			if view.Index == 1 && !view.Timer.Running {
				results, err := c.Submit()
				require.NoError(t, err)
				require.Equal(t, []int{2, 2}, elapsedOf(results))
				return
			}
		case <-deadline:
			t.Fatal("timer did not advance through both questions")
		}
	}
}
