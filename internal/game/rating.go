package game

import "fmt"

// Rating is the verdict shown with a completion time.
type Rating struct {
	Tier    string `json:"tier"`
	Emoji   string `json:"emoji"`
	Comment string `json:"comment"`
}

var ratings = []struct {
	under int
	Rating
}{
	{180, Rating{Tier: "lightning", Emoji: "🚀", Comment: "Incredible! You are very fast"}},
	{300, Rating{Tier: "excellent", Emoji: "⚡", Comment: "Excellent time!"}},
	{420, Rating{Tier: "good", Emoji: "👍", Comment: "Good time"}},
	{600, Rating{Tier: "slowed", Emoji: "🤔", Comment: "The dark patterns slowed you down"}},
}

// Rate classifies a completion time in seconds.
func Rate(seconds int) Rating {
	for _, r := range ratings {
		if seconds < r.under {
			return r.Rating
		}
	}
	return Rating{Tier: "trapped", Emoji: "😅", Comment: "The dark patterns worked on you!"}
}

// FormatElapsed renders whole seconds as "{m}m {s}s".
func FormatElapsed(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%dm %ds", seconds/60, seconds%60)
}
