package service_test

import (
	"context"
	"dark_patterns_game/internal/game"
	"dark_patterns_game/internal/model"
	"dark_patterns_game/internal/repository"
	"dark_patterns_game/internal/service"
	"dark_patterns_game/internal/util"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"
)

type stubRecorder struct {
	mu        sync.Mutex
	users     map[string]string
	scores    map[string]int
	submits   int
	submitErr error
}

func newStubRecorder() *stubRecorder {
	return &stubRecorder{users: map[string]string{}, scores: map[string]int{}}
}

func (r *stubRecorder) CreateUser(_ context.Context, name string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := fmt.Sprintf("user-%d", len(r.users)+1)
	r.users[id] = name
	u := &model.User{Name: name}
	u.ID = id
	return u, nil
}

func (r *stubRecorder) SubmitScore(_ context.Context, userID string, value *int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.submits++
	if r.submitErr != nil {
		return 0, r.submitErr
	}
	r.scores[userID] = *value
	return *value, nil
}

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

var stepForms = []string{
	`{"email":"alice@example.com"}`,
	`{"birthDate":"1990-04-12"}`,
	`{"offers":"no"}`,
	`{"address":"1 rue de la Paix"}`,
	`{"cardNumber":"4111","expiry":"12/30","cvv":"123"}`,
	`{}`,
	`{"profession":"designer"}`,
	`{"familyStatus":"single"}`,
	`{"cancellationReason":"too expensive","confirmationPhone":"0600000000"}`,
	`{"confirmationCode":"1234","captchaAnswer":"42"}`,
}

func newSessionService(t *testing.T) (*service.SessionService, *stubRecorder, *fakeClock) {
	t.Helper()
	store := repository.NewMemorySessionStore(time.Hour, 0)
	t.Cleanup(store.Stop)
	rec := newStubRecorder()
	clock := &fakeClock{t: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)}
	svc := service.NewSessionService(store, rec, "test-secret-test-secret-test-secret", time.Hour)
	svc.Now = clock.Now
	svc.Seed = func() uint64 { return 1 }
	return svc, rec, clock
}

// playThrough submits every step, retrying gated steps, advancing the clock per call.
func playThrough(t *testing.T, svc *service.SessionService, clock *fakeClock, id string, perCall time.Duration) *service.StepResult {
	t.Helper()
	ctx := context.Background()
	var res *service.StepResult
	for step := 0; step < game.StepCount; step++ {
		for {
			clock.Advance(perCall)
			var err error
			res, err = svc.Submit(ctx, id, step, json.RawMessage(stepForms[step]))
			if err != nil {
				t.Fatalf("step %d: %v", step, err)
			}
			if res.Accepted {
				break
			}
		}
	}
	return res
}

func TestSessionServiceStart(t *testing.T) {
	svc, rec, _ := newSessionService(t)
	res, err := svc.Start(context.Background(), "Alice")
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if res.SessionID == "" || res.UserID == "" || res.Token == "" {
		t.Fatalf("result = %+v", res)
	}
	if rec.users[res.UserID] != "Alice" {
		t.Fatalf("user not created: %v", rec.users)
	}
	if res.View.State != game.StateInProgress || res.View.Step != 0 {
		t.Fatalf("view = %+v", res.View)
	}

	claims, err := util.ParseSessionToken(res.Token, svc.Secret)
	if err != nil {
		t.Fatalf("ParseSessionToken: %v", err)
	}
	if claims.SessionID != res.SessionID || claims.UserID != res.UserID {
		t.Fatalf("claims = %+v", claims)
	}
}

func TestSessionServiceStartRejectsBlankName(t *testing.T) {
	svc, rec, _ := newSessionService(t)
	if _, err := svc.Start(context.Background(), "  "); !errors.Is(err, util.ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
	if len(rec.users) != 0 {
		t.Fatal("blank name created a user")
	}
}

func TestSessionServiceCompletesAndSavesScore(t *testing.T) {
	svc, rec, clock := newSessionService(t)
	start, err := svc.Start(context.Background(), "Alice")
	if err != nil {
		t.Fatal(err)
	}

	// 10 steps + 2 extra cancellation tries + 3 extra captcha tries = 15 calls.
	res := playThrough(t, svc, clock, start.SessionID, 5*time.Second)
	if !res.Completed || res.Completion == nil {
		t.Fatalf("result = %+v", res)
	}
	c := res.Completion
	if c.Elapsed != 75 || c.FormattedTime != "1m 15s" || !c.Saved || c.Name != "Alice" {
		t.Fatalf("completion = %+v", c)
	}
	if c.Rating.Tier != "lightning" {
		t.Fatalf("rating = %+v", c.Rating)
	}
	if rec.scores[start.UserID] != 75 {
		t.Fatalf("recorded score = %d", rec.scores[start.UserID])
	}

	view, err := svc.Get(context.Background(), start.SessionID)
	if err != nil || view.State != game.StateCompleted {
		t.Fatalf("Get = %+v, %v", view, err)
	}
	if _, err := svc.Submit(context.Background(), start.SessionID, 9, json.RawMessage(stepForms[9])); !errors.Is(err, game.ErrInvalidTransition) {
		t.Fatalf("submit after completion err = %v", err)
	}
}

func TestSessionServiceDegradesWhenScoreFails(t *testing.T) {
	svc, rec, clock := newSessionService(t)
	rec.submitErr = errors.New("database is down")
	start, err := svc.Start(context.Background(), "Bob")
	if err != nil {
		t.Fatal(err)
	}

	res := playThrough(t, svc, clock, start.SessionID, 20*time.Second)
	if res.Completion == nil || res.Completion.Saved {
		t.Fatalf("completion = %+v, want saved=false", res.Completion)
	}
	if res.Completion.Elapsed != 300 {
		t.Fatalf("elapsed = %d, want 300", res.Completion.Elapsed)
	}
}

func TestSessionServiceCancellationGate(t *testing.T) {
	svc, _, clock := newSessionService(t)
	ctx := context.Background()
	start, _ := svc.Start(ctx, "Carol")
	for step := 0; step < int(game.DifficultCancellation); step++ {
		if _, err := svc.Submit(ctx, start.SessionID, step, json.RawMessage(stepForms[step])); err != nil {
			t.Fatal(err)
		}
	}

	form := json.RawMessage(stepForms[8])
	for i := 0; i < 2; i++ {
		res, err := svc.Submit(ctx, start.SessionID, 8, form)
		if err != nil {
			t.Fatal(err)
		}
		if res.Accepted || res.Message == "" || res.View.Step != 8 {
			t.Fatalf("attempt %d = %+v", i+1, res)
		}
	}
	clock.Advance(time.Second)
	res, err := svc.Submit(ctx, start.SessionID, 8, form)
	if err != nil || !res.Accepted || res.View.Step != 9 {
		t.Fatalf("third attempt = %+v, %v", res, err)
	}
}

func TestSessionServiceErrors(t *testing.T) {
	svc, _, _ := newSessionService(t)
	ctx := context.Background()

	if _, err := svc.Get(ctx, "nope"); !errors.Is(err, util.ErrSessionNotFound) {
		t.Fatalf("Get unknown err = %v", err)
	}
	if _, err := svc.Submit(ctx, "nope", 0, nil); !errors.Is(err, util.ErrSessionNotFound) {
		t.Fatalf("Submit unknown err = %v", err)
	}

	start, _ := svc.Start(ctx, "Dan")
	if _, err := svc.Submit(ctx, start.SessionID, 3, json.RawMessage(stepForms[3])); !errors.Is(err, game.ErrStepMismatch) {
		t.Fatalf("wrong step err = %v", err)
	}
	if _, err := svc.Submit(ctx, start.SessionID, 0, json.RawMessage(`{}`)); !errors.Is(err, game.ErrInvalidForm) {
		t.Fatalf("missing email err = %v", err)
	}
}

func TestSessionServiceRestart(t *testing.T) {
	svc, _, _ := newSessionService(t)
	ctx := context.Background()
	start, _ := svc.Start(ctx, "Eve")

	if err := svc.Restart(ctx, start.SessionID); err != nil {
		t.Fatalf("Restart: %v", err)
	}
	if _, err := svc.Get(ctx, start.SessionID); !errors.Is(err, util.ErrSessionNotFound) {
		t.Fatalf("Get after restart err = %v", err)
	}
	if err := svc.Restart(ctx, start.SessionID); !errors.Is(err, util.ErrSessionNotFound) {
		t.Fatalf("second Restart err = %v", err)
	}
}

func TestSessionServiceConcurrentFinalSubmitCompletesOnce(t *testing.T) {
	svc, rec, clock := newSessionService(t)
	ctx := context.Background()
	start, err := svc.Start(ctx, "Frank")
	if err != nil {
		t.Fatal(err)
	}

	for step := 0; step < int(game.CaptchaHell); step++ {
		for {
			clock.Advance(time.Second)
			res, err := svc.Submit(ctx, start.SessionID, step, json.RawMessage(stepForms[step]))
			if err != nil {
				t.Fatalf("step %d: %v", step, err)
			}
			if res.Accepted {
				break
			}
		}
	}
	captcha := json.RawMessage(stepForms[game.CaptchaHell])
	for i := 0; i < 3; i++ {
		if _, err := svc.Submit(ctx, start.SessionID, int(game.CaptchaHell), captcha); err != nil {
			t.Fatal(err)
		}
	}

	const n = 8
	var wg sync.WaitGroup
	results := make(chan *service.StepResult, n)
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := svc.Submit(ctx, start.SessionID, int(game.CaptchaHell), captcha)
			if err != nil {
				errs <- err
				return
			}
			results <- res
		}()
	}
	wg.Wait()
	close(results)
	close(errs)

	completed := 0
	for res := range results {
		if res.Completion != nil {
			completed++
		}
	}
	for err := range errs {
		if !errors.Is(err, game.ErrInvalidTransition) {
			t.Fatalf("unexpected err %v", err)
		}
	}
	if completed != 1 {
		t.Fatalf("completed %d times, want 1", completed)
	}
	if rec.submits != 1 {
		t.Fatalf("score recorded %d times, want 1", rec.submits)
	}
}
