package dto

import (
	"github.com/goosetokens/goose-platform-poc/internal/content"
	"github.com/goosetokens/goose-platform-poc/internal/detection"
	"github.com/goosetokens/goose-platform-poc/internal/ledger"
	"github.com/goosetokens/goose-platform-poc/internal/quest"
	"github.com/goosetokens/goose-platform-poc/internal/room"
	"github.com/goosetokens/goose-platform-poc/internal/stats"
)

type RootResponse struct {
	Message string `json:"message"`
	Storage string `json:"storage"` // "postgres" | "memory" (modo degradado)
}

type BalanceResponse struct {
	UserID  string `json:"user_id"`
	Balance int64  `json:"balance"`
}

type PlaceBetResponse struct {
	Success           bool    `json:"success"`
	BetID             string  `json:"bet_id"`
	NewBalance        int64   `json:"new_balance"`
	Stake             int64   `json:"stake"`
	Sponsor           string  `json:"sponsor"`
	Multiplier        float64 `json:"multiplier"`
	PotentialWinnings int64   `json:"potential_winnings"`
	Message           string  `json:"message"`
}

type ResolveBetResponse struct {
	Success bool      `json:"success"`
	Result  BetResult `json:"result"`
	Message string    `json:"message"`
}

type BetResult struct {
	BetID      string  `json:"bet_id"`
	Won        bool    `json:"won"`
	Stake      int64   `json:"stake"`
	Sponsor    string  `json:"sponsor"`
	Multiplier float64 `json:"multiplier"`
	Winnings   int64   `json:"winnings"`
	NetResult  int64   `json:"net_result"`
	NewBalance int64   `json:"new_balance"`
}

type CompleteQuestResponse struct {
	Success       bool   `json:"success"`
	TokensAwarded int64  `json:"tokens_awarded"`
	NewBalance    int64  `json:"new_balance"`
	Message       string `json:"message"`
}

type MoneyStatsResponse struct {
	UserID string            `json:"user_id"`
	Stats  *stats.MoneyStats `json:"stats"`
}

type UserBetsResponse struct {
	UserID string       `json:"user_id"`
	Bets   []ledger.Bet `json:"bets"`
}

type UserQuestsResponse struct {
	UserID string         `json:"user_id"`
	Quests []quest.Record `json:"quests"`
}

type FunModeResponse struct {
	ObjectsDetected   []detection.Object    `json:"objects_detected"`
	SponsorCategories []string              `json:"sponsor_categories"`
	BettingLines      []content.BettingLine `json:"betting_lines"`
	TotalObjects      int                   `json:"total_objects"`
	Message           string                `json:"message"`
}

type SeriousModeResponse struct {
	FacesDetected int          `json:"faces_detected"`
	Quests        []room.Quest `json:"quests"`
	Message       string       `json:"message"`
}
