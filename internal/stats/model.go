package stats

// SponsorStats agrega os valores apostados em um patrocinador.
// net_profit aqui desconta tudo que foi apostado no patrocinador
// (total_won - total_wagered), diferente do net_profit global.
type SponsorStats struct {
	BetsPlaced   int64 `json:"bets_placed"`
	BetsWon      int64 `json:"bets_won"`
	TotalWagered int64 `json:"total_wagered"`
	TotalWon     int64 `json:"total_won"`
	NetProfit    int64 `json:"net_profit"`
}

// MoneyStats agrega o histórico financeiro de apostas de um usuário
type MoneyStats struct {
	UserID           string                  `json:"user_id"`
	TotalWagered     int64                   `json:"total_wagered"`
	TotalWon         int64                   `json:"total_won"`
	TotalLost        int64                   `json:"total_lost"`
	NetProfit        int64                   `json:"net_profit"`
	BetsWon          int64                   `json:"bets_won"`
	BetsLost         int64                   `json:"bets_lost"`
	SponsorBreakdown map[string]SponsorStats `json:"sponsor_breakdown"`
}

// NewMoneyStats retorna estatísticas zeradas para o usuário
func NewMoneyStats(userID string) *MoneyStats {
	return &MoneyStats{
		UserID:           userID,
		SponsorBreakdown: make(map[string]SponsorStats),
	}
}

// BetResult é o resultado de uma aposta resolvida, insumo da agregação
type BetResult struct {
	Sponsor  string
	Stake    int64
	Won      bool
	Winnings int64
}

// apply acumula um resultado nas estatísticas
func (s *MoneyStats) apply(r BetResult) {
	s.TotalWagered += r.Stake
	if r.Won {
		s.TotalWon += r.Winnings
		s.BetsWon++
	} else {
		s.TotalLost += r.Stake
		s.BetsLost++
	}
	s.NetProfit = s.TotalWon - s.TotalLost

	if s.SponsorBreakdown == nil {
		s.SponsorBreakdown = make(map[string]SponsorStats)
	}
	sp := s.SponsorBreakdown[r.Sponsor]
	sp.BetsPlaced++
	sp.TotalWagered += r.Stake
	if r.Won {
		sp.BetsWon++
		sp.TotalWon += r.Winnings
	}
	sp.NetProfit = sp.TotalWon - sp.TotalWagered
	s.SponsorBreakdown[r.Sponsor] = sp
}

// clone devolve uma cópia independente (breakdown incluso)
func (s *MoneyStats) clone() *MoneyStats {
	out := *s
	out.SponsorBreakdown = make(map[string]SponsorStats, len(s.SponsorBreakdown))
	for k, v := range s.SponsorBreakdown {
		out.SponsorBreakdown[k] = v
	}
	return &out
}
