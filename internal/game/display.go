package game

import (
	"fmt"
	"math/rand/v2"
	"time"
)

const (
	baitSwitchDelay   = 3 * time.Second
	urgencyCountdown  = 300
	urgencySpotsEvery = 8
	urgencyFirstSpots = 3

	CancellationAttempts = 3
	CaptchaAttempts      = 4
)

// StepState is the per-step progress a display is computed from.
type StepState struct {
	EnteredAt      time.Time
	Attempts       int
	CaptchaVariant int
	Seed           uint64
}

type NewsletterDisplay struct {
	Headline          string `json:"headline"`
	OptInLabel        string `json:"optInLabel"`
	Prechecked        bool   `json:"prechecked"`
	UnsubscribeNotice string `json:"unsubscribeNotice"`
}

type BaitAndSwitchDisplay struct {
	ButtonLabel string `json:"buttonLabel"`
	Switched    bool   `json:"switched"`
	Hint        string `json:"hint"`
}

type ConfirmshamingDisplay struct {
	Headline     string `json:"headline"`
	AcceptLabel  string `json:"acceptLabel"`
	DeclineLabel string `json:"declineLabel"`
}

type FeeLine struct {
	Label  string `json:"label"`
	Cents  int    `json:"cents"`
	Amount string `json:"amount"`
}

type HiddenCostsDisplay struct {
	Lines      []FeeLine `json:"lines"`
	TotalCents int       `json:"totalCents"`
	Total      string    `json:"total"`
}

type ForcedContinuityDisplay struct {
	Headline string `json:"headline"`
	Notice   string `json:"notice"`
}

type PrivacyToggle struct {
	Key     string `json:"key"`
	Label   string `json:"label"`
	Default bool   `json:"default"`

	get func(PrivacyForm) *bool
}

type PrivacyDisplay struct {
	Toggles []PrivacyToggle `json:"toggles"`
	Notice  string          `json:"notice"`
}

type MisdirectionButton struct {
	Label       string `json:"label"`
	Action      string `json:"action"`
	Highlighted bool   `json:"highlighted"`
}

type MisdirectionDisplay struct {
	Warning string               `json:"warning"`
	Buttons []MisdirectionButton `json:"buttons"`
	Hint    string               `json:"hint"`
}

type FakeUrgencyDisplay struct {
	SecondsLeft int      `json:"secondsLeft"`
	Countdown   string   `json:"countdown"`
	SpotsLeft   int      `json:"spotsLeft"`
	Options     []string `json:"options"`
}

type CancellationDisplay struct {
	Prompt      string `json:"prompt"`
	Attempt     int    `json:"attempt"`
	MaxAttempts int    `json:"maxAttempts"`
	ButtonLabel string `json:"buttonLabel"`
}

type CaptchaDisplay struct {
	Variant     int    `json:"variant"`
	Kind        string `json:"kind"`
	Question    string `json:"question"`
	Attempt     int    `json:"attempt"`
	MaxAttempts int    `json:"maxAttempts"`
}

var privacyToggles = []PrivacyToggle{
	{Key: "shareEmail", Label: "Share my email with our business partners", get: func(f PrivacyForm) *bool { return f.ShareEmail }},
	{Key: "shareLocation", Label: "Share my location for geo-targeted offers", get: func(f PrivacyForm) *bool { return f.ShareLocation }},
	{Key: "shareActivity", Label: "Share my activity to improve the experience", get: func(f PrivacyForm) *bool { return f.ShareActivity }},
	{Key: "shareContacts", Label: "Analyse my contacts to suggest friends", get: func(f PrivacyForm) *bool { return f.ShareContacts }},
	{Key: "shareUsage", Label: "Share my usage data for statistics", get: func(f PrivacyForm) *bool { return f.ShareUsage }},
	{Key: "acceptCookies", Label: "Accept all cookies (recommended)", get: func(f PrivacyForm) *bool { return f.AcceptCookies }},
}

var hiddenFees = []FeeLine{
	{Label: "Free service", Cents: 0},
	{Label: "Processing fee", Cents: 499},
	{Label: "Protection insurance", Cents: 250},
	{Label: "Paperwork fee", Cents: 199},
}

type captchaVariant struct {
	kind     string
	question string
}

var captchaVariants = []captchaVariant{
	{kind: "blurry", question: "Select all traffic lights"},
	{kind: "distorted", question: "Type the characters you see"},
	{kind: "math", question: "What is 15 + 27?"},
}

func formatEuros(cents int) string {
	return fmt.Sprintf("%d.%02d €", cents/100, cents%100)
}

// Countdown returns the fake urgency timer value t whole seconds after the step was shown.
// It counts 300 down to 1 and then starts over, so it never expires.
func Countdown(t int) int {
	if t < 0 {
		t = 0
	}
	return urgencyCountdown - t%urgencyCountdown
}

// SpotsLeft returns the "spots remaining" counter t seconds after the step was shown.
// It starts at 3 and is redrawn from 1..5 every 8 seconds.
func SpotsLeft(seed uint64, t int) int {
	window := t / urgencySpotsEvery
	if window <= 0 {
		return urgencyFirstSpots
	}
	r := rand.New(rand.NewPCG(seed, uint64(window)))
	return r.IntN(5) + 1
}

// ButtonLabel is the bait & switch action label d after the step was shown.
func ButtonLabel(d time.Duration) (string, bool) {
	if d >= baitSwitchDelay {
		return "Subscribe to Premium (19.99 €/month)", true
	}
	return "Continue for free", false
}

// DisplayFor computes what the step shows at now. It holds no timers;
// everything time-based is derived from st.EnteredAt.
func DisplayFor(p Pattern, st StepState, now time.Time) interface{} {
	since := now.Sub(st.EnteredAt)
	if since < 0 {
		since = 0
	}

	switch p {
	case RoachMotel:
		return NewsletterDisplay{
			Headline:          "Exclusive offers!",
			OptInLabel:        "Yes, I want exclusive offers, promotions and news from our business partners",
			Prechecked:        true,
			UnsubscribeNotice: "To unsubscribe, send a registered letter with proof of identity to our head office",
		}
	case BaitAndSwitch:
		label, switched := ButtonLabel(since)
		return BaitAndSwitchDisplay{
			ButtonLabel: label,
			Switched:    switched,
			Hint:        "Special offer! The button will change in a few seconds...",
		}
	case Confirmshaming:
		return ConfirmshamingDisplay{
			Headline:     "Save up to 50%!",
			AcceptLabel:  "Yes, I want to save money with your special offers!",
			DeclineLabel: "No, I prefer paying full price and missing good deals",
		}
	case HiddenCosts:
		lines := make([]FeeLine, len(hiddenFees))
		total := 0
		for i, l := range hiddenFees {
			l.Amount = formatEuros(l.Cents)
			lines[i] = l
			total += l.Cents
		}
		return HiddenCostsDisplay{Lines: lines, TotalCents: total, Total: formatEuros(total)}
	case ForcedContinuity:
		return ForcedContinuityDisplay{
			Headline: "FREE 7-day trial!",
			Notice:   "No charge during the trial. After 7 days: 29.99 €/month (cancel any time from your account)",
		}
	case PrivacyZuckering:
		toggles := make([]PrivacyToggle, len(privacyToggles))
		for i, t := range privacyToggles {
			toggles[i] = PrivacyToggle{Key: t.Key, Label: t.Label, Default: true}
		}
		return PrivacyDisplay{
			Toggles: toggles,
			Notice:  "By continuing you accept our 47-page privacy policy.",
		}
	case Misdirection:
		return MisdirectionDisplay{
			Warning: "Careful! Which button should you pick? Read before clicking!",
			Buttons: []MisdirectionButton{
				{Label: "Cancel registration", Action: "continue", Highlighted: true},
				{Label: "Continue", Action: "cancel"},
			},
			Hint: "The green button does the opposite of what it says",
		}
	case FakeUrgency:
		t := int(since / time.Second)
		left := Countdown(t)
		return FakeUrgencyDisplay{
			SecondsLeft: left,
			Countdown:   fmt.Sprintf("%d:%02d", left/60, left%60),
			SpotsLeft:   SpotsLeft(st.Seed, t),
			Options:     append([]string(nil), familyStatuses...),
		}
	case DifficultCancellation:
		attempt := st.Attempts + 1
		return CancellationDisplay{
			Prompt:      "We are sad to see you go. Can you tell us why?",
			Attempt:     attempt,
			MaxAttempts: CancellationAttempts,
			ButtonLabel: fmt.Sprintf("Confirm cancellation (%d/%d)", attempt, CancellationAttempts),
		}
	case CaptchaHell:
		v := captchaVariants[st.CaptchaVariant%len(captchaVariants)]
		return CaptchaDisplay{
			Variant:     st.CaptchaVariant % len(captchaVariants),
			Kind:        v.kind,
			Question:    v.question,
			Attempt:     st.Attempts + 1,
			MaxAttempts: CaptchaAttempts,
		}
	}
	return nil
}
