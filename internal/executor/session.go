package executor

import (
	"context"

	"github.com/HaiFongPan/kupo/internal/nav"
)

// Session drives a nav.State synchronously: every effect is executed and
// its result applied before Dispatch returns. The interactive browser runs
// effects asynchronously instead; Session serves the batch commands.
type Session struct {
	State nav.State

	exec     *Executor
	previews bool
	quit     bool
}

// NewSession wraps state. Preview effects are skipped unless previews is set.
func NewSession(state nav.State, exec *Executor, previews bool) *Session {
	return &Session{State: state, exec: exec, previews: previews}
}

// Quit reports whether a quit command was processed
func (s *Session) Quit() bool {
	return s.quit
}

// Dispatch applies in and every input that follows from its effects
func (s *Session) Dispatch(ctx context.Context, in nav.Input) {
	queue := []nav.Input{in}
	for len(queue) > 0 {
		var effects []nav.Effect
		s.State, effects = s.State.Apply(queue[0])
		queue = queue[1:]

		for _, eff := range effects {
			switch eff.(type) {
			case nav.Quit:
				s.quit = true
				continue
			case nav.LoadPreview:
				if !s.previews {
					continue
				}
			}
			if result := s.exec.Execute(ctx, eff); result != nil {
				queue = append(queue, result)
			}
		}
	}
}

// Exec runs one command bar line such as "mkdir build"
func (s *Session) Exec(ctx context.Context, line string) {
	s.Dispatch(ctx, nav.OpenCommandBar{})
	s.Dispatch(ctx, nav.CommandInput{Value: line})
	s.Dispatch(ctx, nav.SubmitCommand{})
}
