package events

import "time"

// Evento emitido após a resolução de uma aposta.
type BetResolved struct {
	BetID     string    `json:"betId"`
	UserID    string    `json:"userId"`
	Status    string    `json:"status"` // "won" | "lost"
	Sponsor   string    `json:"sponsor"`
	Stake     int64     `json:"stake"`
	Winnings  int64     `json:"winnings"`
	NetResult int64     `json:"net_result"`
	Ts        time.Time `json:"ts"`
}
