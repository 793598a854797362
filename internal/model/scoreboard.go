package model

// ScoreEntry is one row of the leaderboard.
// swagger:model ScoreEntry
type ScoreEntry struct {
	ID            string `json:"id"`
	UserName      string `json:"userName"`
	Score         int    `json:"score"`
	CreatedAt     string `json:"createdAt"`
	FormattedTime string `json:"formattedTime"`
}

// Statistics summarises every score. Scores are elapsed seconds, so the
// best score is the lowest one.
// swagger:model Statistics
type Statistics struct {
	TotalUsers     int64 `json:"totalUsers"`
	TotalScores    int64 `json:"totalScores"`
	AverageScore   int   `json:"averageScore"`
	BestScore      int   `json:"bestScore"`
	WorstScore     int   `json:"worstScore"`
	CompletionRate int   `json:"completionRate"`
}

// PendingUser is a registered participant who has not finished yet.
type PendingUser struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ScoreBoard is the dashboard payload.
// swagger:model ScoreBoard
type ScoreBoard struct {
	Scores            []ScoreEntry  `json:"scores"`
	Statistics        Statistics    `json:"statistics"`
	UsersWithoutScore []PendingUser `json:"usersWithoutScore"`
}
