package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"quiz-runner/internal/app"
	"quiz-runner/internal/chart"
	"quiz-runner/internal/config"
	"quiz-runner/internal/domain"
	"quiz-runner/internal/infra/memory"
	"github.com/spf13/cobra"
)

// NewPlayCmd runs a single attempt in the terminal.
func NewPlayCmd(configPath *string) *cobra.Command {
	var category, difficulty, name string
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a quiz in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadOrDefault(*configPath)
			if err != nil {
				return err
			}
			b, err := openBackend(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer b.Close()

			service := app.NewRunnerService(memory.NewAttemptStore(), b.bank, app.TickerScheduler{}, timerConfig(cfg))
			ctrl := service.Open()
			defer service.Close(ctrl.ID())

			key := domain.SetKey{Category: category, Difficulty: difficulty}
			return runPlay(cmd.Context(), os.Stdin, cmd.OutOrStdout(), ctrl, name, key)
		},
	}
	cmd.Flags().StringVar(&category, "category", app.DefaultSetKey.Category, "question category")
	cmd.Flags().StringVar(&difficulty, "difficulty", app.DefaultSetKey.Difficulty, "question difficulty")
	cmd.Flags().StringVar(&name, "name", "", "player name")
	return cmd
}

const playHelp = "[1-%d] select  n next  p previous  g <k> jump  s submit  r restart  q quit"

// screen serializes terminal output between the input loop and timer updates.
type screen struct {
	mu            sync.Mutex
	out           io.Writer
	lastKey       string
	lastRemaining int
}

func (s *screen) printf(format string, args ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.out, format, args...)
}

// show redraws the question when it changes and prints a warning for every
// urgent second otherwise.
func (s *screen) show(view domain.View) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if view.Phase != domain.PhaseActive {
		s.lastKey = string(view.Phase)
		return
	}
	key := fmt.Sprintf("%d:%v", view.Index, view.Options)
	if key != s.lastKey {
		s.lastKey = key
		s.lastRemaining = view.Timer.Remaining
		renderQuestion(s.out, view)
		return
	}
	if view.Timer.Running && view.Timer.Urgent && view.Timer.Remaining != s.lastRemaining {
		fmt.Fprintf(s.out, "  ! %ds left\n", view.Timer.Remaining)
	}
	s.lastRemaining = view.Timer.Remaining
}

// runPlay reads commands from in until the player quits or input ends.
func runPlay(ctx context.Context, in io.Reader, out io.Writer, ctrl *app.Controller, name string, key domain.SetKey) error {
	scr := &screen{out: out}

	updates, cancel := ctrl.Subscribe()
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for view := range updates {
			scr.show(view)
		}
	}()
	defer wg.Wait()
	defer cancel()

	view, err := ctrl.Start(ctx, name, key)
	if err != nil {
		return err
	}
	if view.Category != key.Category || view.Difficulty != key.Difficulty {
		scr.printf("No questions for %s, playing %s/%s instead.\n", key, view.Category, view.Difficulty)
	}

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "q" {
			return nil
		}
		if err := playCommand(scr, ctrl, line); err != nil {
			scr.printf("  %v\n", err)
		}
	}
	return scanner.Err()
}

// playCommand applies one command. Redraws come from the subscription so the
// screen follows the same ordered stream as timer updates.
func playCommand(scr *screen, ctrl *app.Controller, line string) error {
	var err error
	fields := strings.Fields(line)
	switch fields[0] {
	case "n":
		_, err = ctrl.Next()
	case "p":
		_, err = ctrl.Previous()
	case "g":
		if len(fields) != 2 {
			return fmt.Errorf("usage: g <question number>")
		}
		k, convErr := strconv.Atoi(fields[1])
		if convErr != nil {
			return fmt.Errorf("usage: g <question number>")
		}
		_, err = ctrl.JumpTo(k - 1)
	case "r":
		if _, err = ctrl.Restart(); err == nil {
			scr.printf("Restarted.\n")
		}
	case "s":
		results, err := ctrl.Submit()
		if err != nil {
			return err
		}
		scr.printf("%s", formatResults(results))
		return nil
	default:
		option, convErr := strconv.Atoi(fields[0])
		if convErr != nil {
			return fmt.Errorf("unknown command %q", line)
		}
		_, err = ctrl.SelectOption(option - 1)
	}
	return err
}

func renderQuestion(w io.Writer, view domain.View) {
	fmt.Fprintf(w, "\nQuestion %d/%d [%s/%s] %ds\n", view.Index+1, view.Total, view.Category, view.Difficulty, view.Timer.Remaining)
	fmt.Fprintln(w, view.Prompt)
	for i, opt := range view.Options {
		marker := " "
		if opt.Selected {
			marker = "*"
		}
		fmt.Fprintf(w, "%s %d) %s\n", marker, i+1, opt.Text)
	}
	fmt.Fprintf(w, playHelp+"\n", len(view.Options))
}

func formatResults(r domain.Results) string {
	var b strings.Builder
	fmt.Fprintf(&b, "\nQuiz complete, %s!\n", r.Player)
	fmt.Fprintf(&b, "Score: %d/%d in %ds\n", r.Score, r.Total, r.TotalSeconds)
	fmt.Fprintln(&b, chart.Bar(r.Correct, r.Wrong, 20))
	for _, item := range r.Items {
		mark := "x"
		if item.Correct {
			mark = "ok"
		}
		fmt.Fprintf(&b, "%d. [%s] %s\n", item.Number, mark, item.Prompt)
		fmt.Fprintf(&b, "   Your answer: %s | Correct answer: %s | %ds\n", item.YourAnswer, item.CorrectAnswer, item.ElapsedSeconds)
		fmt.Fprintf(&b, "   %s\n", item.Explanation)
	}
	fmt.Fprintln(&b, "r restart  q quit")
	return b.String()
}
