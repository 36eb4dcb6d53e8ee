package events

type BetPlaced struct {
	BetID             string  `json:"bet_id"`
	UserID            string  `json:"user_id"`
	Line              string  `json:"line"`
	Stake             int64   `json:"stake"`
	Sponsor           string  `json:"sponsor"`
	Multiplier        float64 `json:"multiplier"`
	PotentialWinnings int64   `json:"potential_winnings"`
	TsUnixMs          int64   `json:"ts_unix_ms"`
}
