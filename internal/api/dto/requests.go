package dto

type PlaceBetRequest struct {
	UserID     string  `json:"user_id"`
	Line       string  `json:"betting_line"`
	Stake      int64   `json:"stake"`
	Sponsor    string  `json:"sponsor"`
	Multiplier float64 `json:"multiplier"`
}

type ResolveBetRequest struct {
	BetID string `json:"bet_id"`
	Won   bool   `json:"won"`
}

type CompleteQuestRequest struct {
	QuestID string `json:"quest_id"`
	UserID  string `json:"user_id"`
}
