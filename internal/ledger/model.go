package ledger

import "time"

// Status de uma aposta. Uma aposta nasce active e termina em exatamente
// um dos estados won/lost.
const (
	StatusActive = "active"
	StatusWon    = "won"
	StatusLost   = "lost"
)

// Bet é o registro de uma aposta em uma linha gerada
type Bet struct {
	ID                string     `json:"betId"`
	UserID            string     `json:"userId"`
	Line              string     `json:"line"`
	Stake             int64      `json:"stake"`
	Sponsor           string     `json:"sponsor"`
	Multiplier        float64    `json:"multiplier"`
	PotentialWinnings int64      `json:"potential_winnings"`
	Status            string     `json:"status"`
	CreatedAt         time.Time  `json:"created_at"`
	ResolvedAt        *time.Time `json:"resolved_at,omitempty"`
	Winnings          int64      `json:"winnings"`
	NetResult         int64      `json:"net_result"`
}

// settle aplica a transição de estado e os valores derivados do resultado
func (b *Bet) settle(won bool, at time.Time) {
	b.ResolvedAt = &at
	if won {
		b.Status = StatusWon
		b.Winnings = b.PotentialWinnings
		b.NetResult = b.Winnings - b.Stake
		return
	}
	b.Status = StatusLost
	b.Winnings = 0
	b.NetResult = -b.Stake
}
