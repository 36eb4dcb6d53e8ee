package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
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

// recompensa fixa por quest completada
const questReward int64 = 10

// Publisher emite eventos do ciclo de apostas/quests; falha de publicação
// não derruba a operação
type Publisher interface {
	PublishBetPlaced(context.Context, events.BetPlaced) error
	PublishBetResolved(context.Context, events.BetResolved) error
	PublishQuestCompleted(context.Context, events.QuestCompleted) error
}

// Server expõe a API pública do GooseTokens: carteira, apostas,
// estatísticas, modos de câmera e o canal realtime das salas
type Server struct {
	log     *zap.Logger
	wallet  wallet.Store
	ledger  *ledger.Ledger
	stats   *stats.Aggregator
	quests  quest.Store
	detect  *detection.Client
	content *content.Client
	hub     *room.Hub
	publ    Publisher
	storage string // "postgres" | "memory"
}

func NewServer(log *zap.Logger, w wallet.Store, l *ledger.Ledger, s *stats.Aggregator, q quest.Store,
	d *detection.Client, c *content.Client, hub *room.Hub, p Publisher, storage string) *Server {
	return &Server{log: log, wallet: w, ledger: l, stats: s, quests: q, detect: d, content: c, hub: hub, publ: p, storage: storage}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Get("/", s.root)
	r.Get("/user/{id}/balance", s.getBalance)
	r.Get("/user/{id}/bets", s.getUserBets)
	r.Get("/user/{id}/quests", s.getUserQuests)
	r.Get("/user/{id}/money-stats", s.getMoneyStats)
	r.Post("/place-bet", s.placeBet)
	r.Post("/resolve-bet", s.resolveBet)
	r.Post("/complete-quest", s.completeQuest)
	r.Post("/fun-mode", s.funMode)
	r.Post("/serious-mode", s.seriousMode)
	r.Get("/ws", s.hub.HandleWS)
	return r
}

// root informa que o serviço está de pé e em qual modo de storage
func (s *Server) root(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, dto.RootResponse{
		Message: "GooseTokens API is running!",
		Storage: s.storage,
	})
}

// getBalance retorna o saldo, criando o usuário com saldo inicial se preciso
func (s *Server) getBalance(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	bal, err := s.wallet.GetBalance(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, dto.BalanceResponse{UserID: userID, Balance: bal})
}

func (s *Server) getUserBets(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	bets, err := s.ledger.ListByUser(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, dto.UserBetsResponse{UserID: userID, Bets: bets})
}

func (s *Server) getUserQuests(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	quests, err := s.quests.ListByUser(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, dto.UserQuestsResponse{UserID: userID, Quests: quests})
}

func (s *Server) getMoneyStats(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	st, err := s.stats.Get(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, dto.MoneyStatsResponse{UserID: userID, Stats: st})
}

// placeBet debita o stake e registra a aposta.
// O débito vem primeiro: aposta só é aceita com saldo confirmado.
func (s *Server) placeBet(w http.ResponseWriter, r *http.Request) {
	var req dto.PlaceBetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	if req.UserID == "" || req.Line == "" || req.Stake <= 0 {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	if req.Sponsor == "" {
		req.Sponsor = "General"
	}
	if req.Multiplier <= 0 {
		req.Multiplier = 1.0
	}

	potential := int64(float64(req.Stake) * req.Multiplier)

	newBal, err := s.wallet.Deduct(r.Context(), req.UserID, req.Stake)
	if err == wallet.ErrInsufficientBalance {
		http.Error(w, "insufficient GooseTokens", http.StatusBadRequest)
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	betID, err := s.ledger.Create(r.Context(), req.UserID, req.Line, req.Stake, req.Sponsor, req.Multiplier, potential)
	if err != nil {
		// devolve o stake debitado; a aposta não foi registrada
		if _, aerr := s.wallet.Award(r.Context(), req.UserID, req.Stake); aerr != nil {
			s.log.Error("stake refund failed", zap.String("userId", req.UserID), zap.Error(aerr))
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	betsPlaced.Inc()
	_ = s.publ.PublishBetPlaced(r.Context(), events.BetPlaced{
		BetID:             betID,
		UserID:            req.UserID,
		Line:              req.Line,
		Stake:             req.Stake,
		Sponsor:           req.Sponsor,
		Multiplier:        req.Multiplier,
		PotentialWinnings: potential,
	})

	writeJSON(w, http.StatusOK, dto.PlaceBetResponse{
		Success:           true,
		BetID:             betID,
		NewBalance:        newBal,
		Stake:             req.Stake,
		Sponsor:           req.Sponsor,
		Multiplier:        req.Multiplier,
		PotentialWinnings: potential,
		Message: fmt.Sprintf("Bet placed! You wagered %d GooseTokens on: %s (Sponsored by %s)",
			req.Stake, req.Line, req.Sponsor),
	})
}

// resolveBet aplica o resultado de uma aposta ativa
func (s *Server) resolveBet(w http.ResponseWriter, r *http.Request) {
	var req dto.ResolveBetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	if req.BetID == "" {
		http.Error(w, "bet_id required", http.StatusBadRequest)
		return
	}

	b, err := s.ledger.Resolve(r.Context(), req.BetID, req.Won)
	switch err {
	case nil:
	case ledger.ErrBetNotFound:
		http.Error(w, "bet not found", http.StatusNotFound)
		return
	case ledger.ErrAlreadyResolved:
		http.Error(w, "bet already resolved", http.StatusConflict)
		return
	default:
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	newBal, err := s.wallet.GetBalance(r.Context(), b.UserID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	betsResolved.WithLabelValues(b.Status).Inc()
	if req.Won {
		tokensAwarded.Add(float64(b.Winnings))
	}
	_ = s.publ.PublishBetResolved(r.Context(), events.BetResolved{
		BetID:     b.ID,
		UserID:    b.UserID,
		Status:    b.Status,
		Sponsor:   b.Sponsor,
		Stake:     b.Stake,
		Winnings:  b.Winnings,
		NetResult: b.NetResult,
	})

	verb, sign := "lost", "-"
	if req.Won {
		verb, sign = "won", "+"
	}
	net := b.NetResult
	if net < 0 {
		net = -net
	}
	writeJSON(w, http.StatusOK, dto.ResolveBetResponse{
		Success: true,
		Result: dto.BetResult{
			BetID:      b.ID,
			Won:        req.Won,
			Stake:      b.Stake,
			Sponsor:    b.Sponsor,
			Multiplier: b.Multiplier,
			Winnings:   b.Winnings,
			NetResult:  b.NetResult,
			NewBalance: newBal,
		},
		Message: fmt.Sprintf("Bet %s! %s%d GooseTokens", verb, sign, net),
	})
}

// completeQuest credita a recompensa fixa da quest
func (s *Server) completeQuest(w http.ResponseWriter, r *http.Request) {
	var req dto.CompleteQuestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	if req.QuestID == "" || req.UserID == "" {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}

	newBal, err := s.wallet.Award(r.Context(), req.UserID, questReward)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	// registro consultável em /user/{id}/quests
	if err := s.quests.Save(r.Context(), &quest.Record{
		QuestID:       req.QuestID,
		UserID:        req.UserID,
		Status:        "completed",
		TokensAwarded: questReward,
		CompletedAt:   time.Now(),
	}); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	tokensAwarded.Add(float64(questReward))
	_ = s.publ.PublishQuestCompleted(r.Context(), events.QuestCompleted{
		QuestID:       req.QuestID,
		UserID:        req.UserID,
		TokensAwarded: questReward,
	})

	writeJSON(w, http.StatusOK, dto.CompleteQuestResponse{
		Success:       true,
		TokensAwarded: questReward,
		NewBalance:    newBal,
		Message:       fmt.Sprintf("Quest completed! You earned %d GooseTokens!", questReward),
	})
}

// funMode detecta objetos na imagem e gera linhas de aposta por patrocinador.
// Colaboradores fora do ar caem nos resultados de fallback, nunca em erro.
func (s *Server) funMode(w http.ResponseWriter, r *http.Request) {
	img, err := readImage(r)
	if err != nil {
		http.Error(w, "image required", http.StatusBadRequest)
		return
	}

	res, err := s.detect.Detect(r.Context(), img, "objects")
	if err != nil {
		s.log.Warn("detection service unavailable, using fallback", zap.Error(err))
		res = detection.Fallback()
	}

	if len(res.Objects) == 0 {
		writeJSON(w, http.StatusOK, dto.FunModeResponse{
			Message:      "No objects detected. Try pointing at something interesting!",
			BettingLines: []content.BettingLine{},
		})
		return
	}

	names := make([]string, len(res.Objects))
	for i, o := range res.Objects {
		names[i] = o.Name
	}

	lines, err := s.content.BettingLines(r.Context(), names, res.SponsorCategories)
	if err != nil {
		s.log.Warn("content generator unavailable, using mock lines", zap.Error(err))
		lines = content.MockBettingLines(res.Objects)
	}

	writeJSON(w, http.StatusOK, dto.FunModeResponse{
		ObjectsDetected:   res.Objects,
		SponsorCategories: res.SponsorCategories,
		BettingLines:      lines,
		TotalObjects:      len(res.Objects),
		Message: fmt.Sprintf("Found %d objects with %d sponsor categories!",
			len(res.Objects), len(res.SponsorCategories)),
	})
}

// seriousMode detecta rostos e sugere quests de networking
func (s *Server) seriousMode(w http.ResponseWriter, r *http.Request) {
	img, err := readImage(r)
	if err != nil {
		http.Error(w, "image required", http.StatusBadRequest)
		return
	}

	res, err := s.detect.Detect(r.Context(), img, "faces")
	if err != nil {
		s.log.Warn("detection service unavailable, using fallback", zap.Error(err))
		res = detection.Fallback()
	}

	if len(res.Faces) == 0 {
		writeJSON(w, http.StatusOK, dto.SeriousModeResponse{
			Message: "No faces detected. Try getting closer to people!",
			Quests:  []room.Quest{},
		})
		return
	}

	quests := make([]room.Quest, 0, len(res.Faces))
	for i, face := range res.Faces {
		prompt, err := s.content.NetworkingPrompt(r.Context(), face.Confidence)
		if err != nil {
			prompt = content.MockNetworkingPrompt(face.Confidence)
		}
		quests = append(quests, room.Quest{
			ID:          fmt.Sprintf("quest_%d", i),
			Type:        "networking",
			Description: prompt,
			Target:      fmt.Sprintf("Person %d", i+1),
			Reward:      questReward,
			Status:      room.QuestPending,
		})
	}

	writeJSON(w, http.StatusOK, dto.SeriousModeResponse{
		FacesDetected: len(res.Faces),
		Quests:        quests,
		Message:       fmt.Sprintf("Found %d people to network with!", len(res.Faces)),
	})
}

// readImage aceita upload multipart (campo "file") ou o corpo cru
func readImage(r *http.Request) ([]byte, error) {
	if f, _, err := r.FormFile("file"); err == nil {
		defer f.Close()
		return io.ReadAll(f)
	}
	b, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}
	if len(b) == 0 {
		return nil, io.EOF
	}
	return b, nil
}

// writeJSON serializa a resposta em JSON e define o status HTTP
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
