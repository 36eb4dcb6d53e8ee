package events

import "time"

// Evento emitido quando um usuário completa uma quest e recebe tokens.
type QuestCompleted struct {
	QuestID       string    `json:"questId"`
	UserID        string    `json:"userId"`
	TokensAwarded int64     `json:"tokens_awarded"`
	Ts            time.Time `json:"ts"`
}
