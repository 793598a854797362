package service

import (
	"context"
	"dark_patterns_game/internal/game"
	"dark_patterns_game/internal/model"
	"dark_patterns_game/internal/repository"
	"dark_patterns_game/internal/util"
	"dark_patterns_game/pkg/logger"
	"dark_patterns_game/pkg/monitoring"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ScoreRecorder is the part of ScoreService a game session needs.
type ScoreRecorder interface {
	CreateUser(ctx context.Context, name string) (*model.User, error)
	SubmitScore(ctx context.Context, userID string, value *int) (int, error)
}

// StartResult is returned when a participant registers and the walkthrough begins.
type StartResult struct {
	SessionID string        `json:"sessionId"`
	UserID    string        `json:"userId"`
	Token     string        `json:"token"`
	View      game.StepView `json:"step"`
}

// Completion is the results screen. Saved is false when the score could not be
// stored; the elapsed time is still reported.
type Completion struct {
	Name          string      `json:"name"`
	Elapsed       int         `json:"elapsed"`
	FormattedTime string      `json:"formattedTime"`
	Rating        game.Rating `json:"rating"`
	Saved         bool        `json:"saved"`
}

// StepResult is the answer to one step submission.
type StepResult struct {
	game.Outcome
	View       game.StepView `json:"step"`
	Completion *Completion   `json:"completion,omitempty"`
}

// SessionService drives game sessions and hands finished times to the score service.
type SessionService struct {
	Store    repository.SessionStore
	Scores   ScoreRecorder
	Secret   string
	TokenTTL time.Duration

	Now   func() time.Time
	NewID func() string
	Seed  func() uint64

	locks *sessionLocks
}

func NewSessionService(store repository.SessionStore, scores ScoreRecorder, secret string, tokenTTL time.Duration) *SessionService {
	return &SessionService{
		Store:    store,
		Scores:   scores,
		Secret:   secret,
		TokenTTL: tokenTTL,
		Now:      time.Now,
		NewID:    func() string { return uuid.New().String() },
		Seed:     rand.Uint64,
		locks:    newSessionLocks(),
	}
}

// Start registers name and opens a session at step 0.
func (s *SessionService) Start(ctx context.Context, name string) (*StartResult, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: name is required", util.ErrValidation)
	}

	sess := game.NewSession(s.NewID(), s.Seed())
	if err := sess.Begin(); err != nil {
		return nil, err
	}

	user, err := s.Scores.CreateUser(ctx, name)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	if err := sess.Registered(user.ID, user.Name, now); err != nil {
		return nil, err
	}
	if err := s.Store.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	token, err := util.GenerateSessionToken(sess.ID, user.ID, s.Secret, s.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("sign session token: %w", err)
	}

	logger.Log.Info("Game session started",
		zap.String("sessionID", sess.ID),
		zap.String("userID", user.ID))

	return &StartResult{
		SessionID: sess.ID,
		UserID:    user.ID,
		Token:     token,
		View:      sess.View(now),
	}, nil
}

// Get renders the session's current step.
func (s *SessionService) Get(ctx context.Context, id string) (game.StepView, error) {
	sess, err := s.Store.Load(ctx, id)
	if err != nil {
		return game.StepView{}, err
	}
	return sess.View(s.Now()), nil
}

// Submit applies one step form. On the last step the elapsed time is recorded as
// the participant's score; if that fails the result is still returned with Saved false.
// Submits for one session run one at a time, so a session completes exactly once.
func (s *SessionService) Submit(ctx context.Context, id string, step int, raw json.RawMessage) (*StepResult, error) {
	unlock := s.locks.lock(id)
	defer unlock()

	sess, err := s.Store.Load(ctx, id)
	if err != nil {
		return nil, err
	}

	form, err := game.DecodeForm(step, raw)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	out, err := sess.Submit(step, form, now)
	if err != nil {
		monitoring.StepSubmissions.WithLabelValues(game.Pattern(sess.Step).String(), "invalid").Inc()
		return nil, err
	}
	outcome := "rejected"
	if out.Accepted {
		outcome = "accepted"
	}
	monitoring.StepSubmissions.WithLabelValues(form.Pattern().String(), outcome).Inc()

	if err := s.Store.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	res := &StepResult{Outcome: out, View: sess.View(now)}
	if out.Completed {
		res.Completion = s.complete(ctx, sess)
	}
	return res, nil
}

func (s *SessionService) complete(ctx context.Context, sess *game.Session) *Completion {
	elapsed := sess.Elapsed
	monitoring.CompletionSeconds.Observe(float64(elapsed))

	c := &Completion{
		Name:          sess.Name,
		Elapsed:       elapsed,
		FormattedTime: game.FormatElapsed(elapsed),
		Rating:        game.Rate(elapsed),
		Saved:         true,
	}
	if _, err := s.Scores.SubmitScore(ctx, sess.UserID, &elapsed); err != nil {
		logger.Log.Warn("Failed to save score, returning elapsed time only",
			zap.String("sessionID", sess.ID),
			zap.String("userID", sess.UserID),
			zap.Int("elapsed", elapsed),
			zap.Error(err))
		c.Saved = false
	}
	return c
}

// Restart discards the session. The participant starts over with a new one.
func (s *SessionService) Restart(ctx context.Context, id string) error {
	unlock := s.locks.lock(id)
	defer unlock()

	if _, err := s.Store.Load(ctx, id); err != nil {
		return err
	}
	return s.Store.Delete(ctx, id)
}
