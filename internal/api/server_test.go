package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/goosetokens/goose-platform-poc/internal/api/dto"
	"github.com/goosetokens/goose-platform-poc/internal/content"
	"github.com/goosetokens/goose-platform-poc/internal/detection"
	"github.com/goosetokens/goose-platform-poc/internal/ledger"
	"github.com/goosetokens/goose-platform-poc/internal/quest"
	"github.com/goosetokens/goose-platform-poc/internal/room"
	"github.com/goosetokens/goose-platform-poc/internal/stats"
	"github.com/goosetokens/goose-platform-poc/internal/wallet"
	"github.com/goosetokens/goose-platform-poc/pkg/contracts/events"
)

// fakePublisher registra os eventos emitidos sem tocar no Kafka
type fakePublisher struct {
	placed   []events.BetPlaced
	resolved []events.BetResolved
	quests   []events.QuestCompleted
}

func (f *fakePublisher) PublishBetPlaced(_ context.Context, e events.BetPlaced) error {
	f.placed = append(f.placed, e)
	return nil
}

func (f *fakePublisher) PublishBetResolved(_ context.Context, e events.BetResolved) error {
	f.resolved = append(f.resolved, e)
	return nil
}

func (f *fakePublisher) PublishQuestCompleted(_ context.Context, e events.QuestCompleted) error {
	f.quests = append(f.quests, e)
	return nil
}

func newTestServer(t *testing.T) (http.Handler, *fakePublisher) {
	t.Helper()
	log := zap.NewNop()

	w := wallet.NewMemory()
	agg := stats.NewAggregator(log, stats.NewMemory(), nil)
	led := ledger.New(log, ledger.NewMemory(), w, agg)
	registry := room.NewRegistry(log)
	hub := room.NewHub(log, registry, func(*http.Request) bool { return true })

	// colaboradores apontando pro nada: os modos de câmera caem no fallback
	detect := detection.New("http://127.0.0.1:1")
	gen := content.New("http://127.0.0.1:1")

	publ := &fakePublisher{}
	srv := NewServer(log, w, led, agg, quest.NewMemory(), detect, gen, hub, publ, "memory")
	return srv.Router(), publ
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return out
}

func TestRootInformaModoDeStorage(t *testing.T) {
	h, _ := newTestServer(t)

	rec := doJSON(t, h, http.MethodGet, "/", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	resp := decode[dto.RootResponse](t, rec)
	if resp.Message != "GooseTokens API is running!" {
		t.Fatalf("message = %q", resp.Message)
	}
	if resp.Storage != "memory" {
		t.Fatalf("storage = %q", resp.Storage)
	}
}

func TestFluxoApostaVencida(t *testing.T) {
	h, publ := newTestServer(t)

	rec := doJSON(t, h, http.MethodPost, "/place-bet", dto.PlaceBetRequest{
		UserID:     "user-1",
		Line:       "Someone will spill coffee on their laptop",
		Stake:      20,
		Sponsor:    "Tech Giants",
		Multiplier: 1.5,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("place-bet status = %d: %s", rec.Code, rec.Body.String())
	}
	placed := decode[dto.PlaceBetResponse](t, rec)
	if !placed.Success || placed.BetID == "" {
		t.Fatalf("resposta = %+v", placed)
	}
	if placed.NewBalance != 80 {
		t.Fatalf("new_balance = %d, esperado 80", placed.NewBalance)
	}
	if placed.PotentialWinnings != 30 {
		t.Fatalf("potential_winnings = %d, esperado 30", placed.PotentialWinnings)
	}
	if len(publ.placed) != 1 || publ.placed[0].BetID != placed.BetID {
		t.Fatalf("evento bet_placed não emitido: %+v", publ.placed)
	}

	rec = doJSON(t, h, http.MethodPost, "/resolve-bet", dto.ResolveBetRequest{BetID: placed.BetID, Won: true})
	if rec.Code != http.StatusOK {
		t.Fatalf("resolve-bet status = %d: %s", rec.Code, rec.Body.String())
	}
	resolved := decode[dto.ResolveBetResponse](t, rec)
	if resolved.Result.Winnings != 30 {
		t.Fatalf("winnings = %d, esperado 30", resolved.Result.Winnings)
	}
	if resolved.Result.NewBalance != 110 {
		t.Fatalf("new_balance = %d, esperado 110 (80 + 30)", resolved.Result.NewBalance)
	}
	if resolved.Message != "Bet won! +10 GooseTokens" {
		t.Fatalf("message = %q", resolved.Message)
	}
	if len(publ.resolved) != 1 || publ.resolved[0].Status != ledger.StatusWon {
		t.Fatalf("evento bet_resolved não emitido: %+v", publ.resolved)
	}

	// saldo e histórico refletem a resolução
	rec = doJSON(t, h, http.MethodGet, "/user/user-1/balance", nil)
	bal := decode[dto.BalanceResponse](t, rec)
	if bal.Balance != 110 {
		t.Fatalf("balance = %d, esperado 110", bal.Balance)
	}

	rec = doJSON(t, h, http.MethodGet, "/user/user-1/bets", nil)
	bets := decode[dto.UserBetsResponse](t, rec)
	if len(bets.Bets) != 1 || bets.Bets[0].Status != ledger.StatusWon {
		t.Fatalf("bets = %+v", bets.Bets)
	}

	rec = doJSON(t, h, http.MethodGet, "/user/user-1/money-stats", nil)
	st := decode[dto.MoneyStatsResponse](t, rec)
	if st.Stats.TotalWon != 30 || st.Stats.NetProfit != 30 {
		t.Fatalf("stats = %+v", st.Stats)
	}
	sp := st.Stats.SponsorBreakdown["Tech Giants"]
	if sp.NetProfit != 30-20 {
		t.Fatalf("net_profit do patrocinador = %d, esperado 10", sp.NetProfit)
	}
}

func TestPlaceBetSaldoInsuficiente(t *testing.T) {
	h, publ := newTestServer(t)

	rec := doJSON(t, h, http.MethodPost, "/place-bet", dto.PlaceBetRequest{
		UserID: "user-1",
		Line:   "all in",
		Stake:  101,
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, esperado 400", rec.Code)
	}
	if len(publ.placed) != 0 {
		t.Fatal("evento emitido pra aposta rejeitada")
	}

	// saldo intacto
	rec = doJSON(t, h, http.MethodGet, "/user/user-1/balance", nil)
	bal := decode[dto.BalanceResponse](t, rec)
	if bal.Balance != wallet.StartingBalance {
		t.Fatalf("balance = %d, esperado %d", bal.Balance, wallet.StartingBalance)
	}
}

func TestPlaceBetPayloadInvalido(t *testing.T) {
	h, _ := newTestServer(t)

	cases := []dto.PlaceBetRequest{
		{Line: "sem usuário", Stake: 10},
		{UserID: "user-1", Stake: 10},
		{UserID: "user-1", Line: "stake zero", Stake: 0},
		{UserID: "user-1", Line: "stake negativo", Stake: -5},
	}
	for i, c := range cases {
		rec := doJSON(t, h, http.MethodPost, "/place-bet", c)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("caso %d: status = %d, esperado 400", i, rec.Code)
		}
	}
}

func TestResolveBetErros(t *testing.T) {
	h, _ := newTestServer(t)

	rec := doJSON(t, h, http.MethodPost, "/resolve-bet", dto.ResolveBetRequest{BetID: "nao-existe", Won: true})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, esperado 404", rec.Code)
	}

	placed := decode[dto.PlaceBetResponse](t, doJSON(t, h, http.MethodPost, "/place-bet", dto.PlaceBetRequest{
		UserID: "user-1", Line: "x", Stake: 10,
	}))
	if placed.BetID == "" {
		t.Fatal("place-bet falhou")
	}

	rec = doJSON(t, h, http.MethodPost, "/resolve-bet", dto.ResolveBetRequest{BetID: placed.BetID, Won: false})
	if rec.Code != http.StatusOK {
		t.Fatalf("resolve status = %d", rec.Code)
	}
	rec = doJSON(t, h, http.MethodPost, "/resolve-bet", dto.ResolveBetRequest{BetID: placed.BetID, Won: true})
	if rec.Code != http.StatusConflict {
		t.Fatalf("resolução duplicada: status = %d, esperado 409", rec.Code)
	}
}

func TestCompleteQuest(t *testing.T) {
	h, publ := newTestServer(t)

	rec := doJSON(t, h, http.MethodPost, "/complete-quest", dto.CompleteQuestRequest{
		QuestID: "quest_0",
		UserID:  "user-1",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	resp := decode[dto.CompleteQuestResponse](t, rec)
	if resp.TokensAwarded != questReward {
		t.Fatalf("tokens_awarded = %d, esperado %d", resp.TokensAwarded, questReward)
	}
	if resp.NewBalance != wallet.StartingBalance+questReward {
		t.Fatalf("new_balance = %d, esperado %d", resp.NewBalance, wallet.StartingBalance+questReward)
	}
	if resp.Message != fmt.Sprintf("Quest completed! You earned %d GooseTokens!", questReward) {
		t.Fatalf("message = %q", resp.Message)
	}
	if len(publ.quests) != 1 || publ.quests[0].QuestID != "quest_0" {
		t.Fatalf("evento quest_completed não emitido: %+v", publ.quests)
	}

	// a quest completada fica consultável no histórico do usuário
	rec = doJSON(t, h, http.MethodGet, "/user/user-1/quests", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("user quests status = %d", rec.Code)
	}
	quests := decode[dto.UserQuestsResponse](t, rec)
	if len(quests.Quests) != 1 {
		t.Fatalf("quests = %+v", quests.Quests)
	}
	q := quests.Quests[0]
	if q.QuestID != "quest_0" || q.Status != "completed" || q.TokensAwarded != questReward {
		t.Fatalf("registro = %+v", q)
	}
	if q.CompletedAt.IsZero() {
		t.Fatal("completed_at não foi preenchido")
	}
}

func TestFunModeComColaboradoresFora(t *testing.T) {
	h, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/fun-mode", bytes.NewReader([]byte("fake-image-bytes")))
	req.Header.Set("Content-Type", "application/octet-stream")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	resp := decode[dto.FunModeResponse](t, rec)
	// detecção fora do ar: resultado de demonstração + linhas mock
	if resp.TotalObjects == 0 || len(resp.BettingLines) == 0 {
		t.Fatalf("fallback não aplicado: %+v", resp)
	}
}

func TestFunModeSemImagem(t *testing.T) {
	h, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/fun-mode", bytes.NewReader(nil))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, esperado 400", rec.Code)
	}
}

func TestSeriousModeComColaboradoresFora(t *testing.T) {
	h, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/serious-mode", bytes.NewReader([]byte("fake-image-bytes")))
	req.Header.Set("Content-Type", "application/octet-stream")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	resp := decode[dto.SeriousModeResponse](t, rec)
	if resp.FacesDetected == 0 || len(resp.Quests) == 0 {
		t.Fatalf("fallback não aplicado: %+v", resp)
	}
	if resp.Quests[0].Status != room.QuestPending {
		t.Fatalf("quest status = %q", resp.Quests[0].Status)
	}
}
