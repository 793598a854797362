package game

import (
	"fmt"
	"time"
)

type State string

const (
	StateNotStarted  State = "not_started"
	StateRegistering State = "registering"
	StateInProgress  State = "in_progress"
	StateCompleted   State = "completed"
)

// Session is one participant's progress through the walkthrough.
// It is a plain value so stores can serialise it; form values are never kept.
type Session struct {
	ID             string    `json:"id"`
	State          State     `json:"state"`
	UserID         string    `json:"userId,omitempty"`
	Name           string    `json:"name,omitempty"`
	Step           int       `json:"step"`
	StartedAt      time.Time `json:"startedAt"`
	StepEnteredAt  time.Time `json:"stepEnteredAt"`
	Attempts       int       `json:"attempts"`
	CaptchaVariant int       `json:"captchaVariant"`
	Seed           uint64    `json:"seed"`
	Elapsed        int       `json:"elapsed"`
}

// Outcome is the result of one step submission.
type Outcome struct {
	Accepted  bool   `json:"accepted"`
	Completed bool   `json:"completed"`
	Message   string `json:"message,omitempty"`
}

// StepView is what a client renders for the current state.
type StepView struct {
	SessionID  string       `json:"sessionId"`
	State      State        `json:"state"`
	Step       int          `json:"step"`
	TotalSteps int          `json:"totalSteps"`
	Progress   int          `json:"progress"`
	Pattern    *PatternInfo `json:"pattern,omitempty"`
	Display    interface{}  `json:"display,omitempty"`
	Elapsed    int          `json:"elapsed,omitempty"`
}

func NewSession(id string, seed uint64) *Session {
	return &Session{ID: id, State: StateNotStarted, Seed: seed}
}

// Begin opens the registration form.
func (s *Session) Begin() error {
	if s.State != StateNotStarted {
		return fmt.Errorf("%w: begin from %s", ErrInvalidTransition, s.State)
	}
	s.State = StateRegistering
	return nil
}

// Registered starts the clock at step 0 once the participant has a user record.
func (s *Session) Registered(userID, name string, now time.Time) error {
	if s.State != StateRegistering {
		return fmt.Errorf("%w: register from %s", ErrInvalidTransition, s.State)
	}
	s.State = StateInProgress
	s.UserID = userID
	s.Name = name
	s.Step = 0
	s.StartedAt = now
	s.enterStep(0, now)
	return nil
}

func (s *Session) enterStep(step int, now time.Time) {
	s.Step = step
	s.StepEnteredAt = now
	s.Attempts = 0
	s.CaptchaVariant = 0
}

// Submit applies form to the current step. A rejected Outcome with a nil error
// means the step's gate asked for another attempt.
func (s *Session) Submit(step int, form Form, now time.Time) (Outcome, error) {
	if s.State != StateInProgress {
		return Outcome{}, fmt.Errorf("%w: submit from %s", ErrInvalidTransition, s.State)
	}
	if step != s.Step {
		return Outcome{}, fmt.Errorf("%w: got %d, current step is %d", ErrStepMismatch, step, s.Step)
	}
	p := Pattern(s.Step)
	if form == nil || form.Pattern() != p {
		return Outcome{}, fmt.Errorf("%w: expected %s form", ErrInvalidForm, p)
	}
	if err := form.Validate(); err != nil {
		return Outcome{}, err
	}

	if msg, ok := s.gate(p); !ok {
		return Outcome{Message: msg}, nil
	}

	if s.Step < StepCount-1 {
		s.enterStep(s.Step+1, now)
		return Outcome{Accepted: true}, nil
	}

	s.State = StateCompleted
	s.Elapsed = int(now.Sub(s.StartedAt) / time.Second)
	if s.Elapsed < 0 {
		s.Elapsed = 0
	}
	return Outcome{Accepted: true, Completed: true}, nil
}

// gate counts the attempt and reports whether the step lets the participant through.
func (s *Session) gate(p Pattern) (string, bool) {
	switch p {
	case DifficultCancellation:
		s.Attempts++
		switch s.Attempts {
		case 1:
			return "Error: Insufficient reason. Please try again.", false
		case 2:
			return "Error: Invalid phone number. Please try again.", false
		}
	case CaptchaHell:
		s.Attempts++
		if s.Attempts < CaptchaAttempts {
			s.CaptchaVariant = (s.CaptchaVariant + 1) % len(captchaVariants)
			return fmt.Sprintf("Incorrect answer. Attempt %d/%d", s.Attempts, CaptchaAttempts), false
		}
	}
	return "", true
}

// View renders the session at now.
func (s *Session) View(now time.Time) StepView {
	v := StepView{
		SessionID:  s.ID,
		State:      s.State,
		Step:       s.Step,
		TotalSteps: StepCount,
	}
	switch s.State {
	case StateInProgress:
		p := Pattern(s.Step)
		info := p.Info()
		v.Pattern = &info
		v.Progress = (s.Step + 1) * 100 / StepCount
		v.Display = DisplayFor(p, StepState{
			EnteredAt:      s.StepEnteredAt,
			Attempts:       s.Attempts,
			CaptchaVariant: s.CaptchaVariant,
			Seed:           s.Seed,
		}, now)
	case StateCompleted:
		v.Progress = 100
		v.Elapsed = s.Elapsed
	}
	return v
}
