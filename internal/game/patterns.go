// Package game models the dark pattern walkthrough: the ten steps, their forms
// and gates, and the per-participant progress state machine.
package game

// Pattern identifies one simulated dark pattern. Its value is the step index.
type Pattern int

const (
	RoachMotel Pattern = iota
	BaitAndSwitch
	Confirmshaming
	HiddenCosts
	ForcedContinuity
	PrivacyZuckering
	Misdirection
	FakeUrgency
	DifficultCancellation
	CaptchaHell
)

// StepCount is the number of steps in a walkthrough.
const StepCount = 10

// PatternInfo describes a pattern for the step header and the post-game explanations.
type PatternInfo struct {
	Step        int    `json:"step"`
	Key         string `json:"key"`
	Name        string `json:"name"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Impact      string `json:"impact"`
}

var catalogue = [StepCount]PatternInfo{
	{
		Key:         "roach_motel",
		Name:        "Roach Motel",
		Title:       "Newsletter",
		Description: "A pre-checked newsletter box that is hard to get out of",
		Impact:      "Signs you up for communications you never asked for",
	},
	{
		Key:         "bait_and_switch",
		Name:        "Bait & Switch",
		Title:       "Confirmation",
		Description: "The button changes what it does at the last moment",
		Impact:      "Makes you perform a different action than the one you expected",
	},
	{
		Key:         "confirmshaming",
		Name:        "Confirmshaming",
		Title:       "Preferences",
		Description: "The opt-out option is worded to make you feel bad",
		Impact:      "Uses guilt to push you into accepting",
	},
	{
		Key:         "hidden_costs",
		Name:        "Hidden Costs",
		Title:       "Billing",
		Description: "Extra fees only show up at the last step",
		Impact:      "You pay more than announced without clear consent",
	},
	{
		Key:         "forced_continuity",
		Name:        "Forced Continuity",
		Title:       "Premium",
		Description: "A free trial that silently turns into a paid subscription",
		Impact:      "Automatic charges without an explicit reminder",
	},
	{
		Key:         "privacy_zuckering",
		Name:        "Privacy Zuckering",
		Title:       "Privacy",
		Description: "Privacy settings default to sharing everything",
		Impact:      "Your personal data is shared without real consent",
	},
	{
		Key:         "misdirection",
		Name:        "Misdirection",
		Title:       "Navigation",
		Description: "Buttons that do the opposite of what their styling suggests",
		Impact:      "Leads you to decisions against your own interest",
	},
	{
		Key:         "fake_urgency",
		Name:        "Fake Urgency",
		Title:       "Urgency",
		Description: "Countdowns and stock counters that are not real",
		Impact:      "Pressures you into hasty decisions",
	},
	{
		Key:         "difficult_cancellation",
		Name:        "Difficult Cancellation",
		Title:       "Cancellation",
		Description: "A deliberately tedious cancellation process",
		Impact:      "Keeps you from unsubscribing easily",
	},
	{
		Key:         "captcha_hell",
		Name:        "Captcha Hell",
		Title:       "Security",
		Description: "A captcha built to be frustrating",
		Impact:      "Discourages you from reaching the service or leaving it",
	},
}

func init() {
	for i := range catalogue {
		catalogue[i].Step = i
	}
}

// Catalogue returns the ten patterns in step order.
func Catalogue() []PatternInfo {
	out := make([]PatternInfo, StepCount)
	copy(out, catalogue[:])
	return out
}

// PatternForStep returns the pattern shown at step, and false when step is out of range.
func PatternForStep(step int) (Pattern, bool) {
	if step < 0 || step >= StepCount {
		return 0, false
	}
	return Pattern(step), true
}

func (p Pattern) Info() PatternInfo {
	return catalogue[p]
}

func (p Pattern) String() string {
	if p < 0 || int(p) >= StepCount {
		return "unknown"
	}
	return catalogue[p].Key
}
