package stats

import (
	"context"
	"testing"

	"go.uber.org/zap"
)

func TestRecordAcumulaFormulas(t *testing.T) {
	agg := NewAggregator(zap.NewNop(), NewMemory(), nil)
	ctx := context.Background()

	// aposta perdida: stake 20 em Food & Beverage
	err := agg.Record(ctx, "user-1", BetResult{Sponsor: "Food & Beverage", Stake: 20, Won: false})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}

	st, err := agg.Get(ctx, "user-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if st.TotalWagered != 20 || st.TotalLost != 20 || st.TotalWon != 0 {
		t.Fatalf("totais = wagered %d won %d lost %d", st.TotalWagered, st.TotalWon, st.TotalLost)
	}
	if st.NetProfit != -20 {
		t.Fatalf("net_profit global = %d, esperado -20", st.NetProfit)
	}
	if st.BetsLost != 1 || st.BetsWon != 0 {
		t.Fatalf("contadores = won %d lost %d", st.BetsWon, st.BetsLost)
	}

	sp, ok := st.SponsorBreakdown["Food & Beverage"]
	if !ok {
		t.Fatal("breakdown do patrocinador ausente")
	}
	if sp.BetsPlaced != 1 || sp.TotalWagered != 20 || sp.NetProfit != -20 {
		t.Fatalf("sponsor = placed %d wagered %d net %d", sp.BetsPlaced, sp.TotalWagered, sp.NetProfit)
	}

	// aposta vencida: stake 10, ganho 15, mesmo patrocinador
	err = agg.Record(ctx, "user-1", BetResult{Sponsor: "Food & Beverage", Stake: 10, Won: true, Winnings: 15})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}

	st, _ = agg.Get(ctx, "user-1")
	// global: total_won - total_lost
	if st.NetProfit != 15-20 {
		t.Fatalf("net_profit global = %d, esperado %d", st.NetProfit, 15-20)
	}
	sp = st.SponsorBreakdown["Food & Beverage"]
	// por patrocinador: total_won - total_wagered
	if sp.NetProfit != 15-30 {
		t.Fatalf("net_profit do patrocinador = %d, esperado %d", sp.NetProfit, 15-30)
	}
	if sp.BetsPlaced != 2 || sp.BetsWon != 1 {
		t.Fatalf("sponsor = placed %d won %d", sp.BetsPlaced, sp.BetsWon)
	}
}

func TestGetUsuarioNovoRetornaZerado(t *testing.T) {
	agg := NewAggregator(zap.NewNop(), NewMemory(), nil)

	st, err := agg.Get(context.Background(), "nunca-apostou")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if st.UserID != "nunca-apostou" {
		t.Fatalf("user_id = %q", st.UserID)
	}
	if st.TotalWagered != 0 || st.NetProfit != 0 || len(st.SponsorBreakdown) != 0 {
		t.Fatalf("estatísticas de usuário novo não estão zeradas: %+v", st)
	}
}

func TestGetRetornaCopia(t *testing.T) {
	agg := NewAggregator(zap.NewNop(), NewMemory(), nil)
	ctx := context.Background()

	_ = agg.Record(ctx, "user-1", BetResult{Sponsor: "General", Stake: 5, Won: false})

	st, _ := agg.Get(ctx, "user-1")
	st.TotalWagered = 999
	st.SponsorBreakdown["General"] = SponsorStats{BetsPlaced: 999}

	fresh, _ := agg.Get(ctx, "user-1")
	if fresh.TotalWagered != 5 {
		t.Fatalf("mutação do chamador vazou pro store: wagered = %d", fresh.TotalWagered)
	}
	if fresh.SponsorBreakdown["General"].BetsPlaced != 1 {
		t.Fatalf("mutação do breakdown vazou pro store")
	}
}
