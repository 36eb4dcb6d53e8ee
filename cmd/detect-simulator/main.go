package main

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/goosetokens/goose-platform-poc/internal/content"
	"github.com/goosetokens/goose-platform-poc/internal/detection"
	"github.com/goosetokens/goose-platform-poc/internal/shared/config"
	"github.com/goosetokens/goose-platform-poc/internal/shared/logger"
)

var (
	// Catálogo fixo de objetos simulados, já com o mapeamento de patrocinador
	objectCatalog = []detection.Object{
		{Name: "laptop", Sponsor: "Tech Giants", Category: "tech_giants", Multiplier: 1.5},
		{Name: "cell phone", Sponsor: "Tech Giants", Category: "tech_giants", Multiplier: 1.4},
		{Name: "keyboard", Sponsor: "Tech Giants", Category: "tech_giants", Multiplier: 1.3},
		{Name: "mouse", Sponsor: "Tech Giants", Category: "tech_giants", Multiplier: 1.3},
		{Name: "cup", Sponsor: "Food & Beverage", Category: "food_beverage", Multiplier: 1.1},
		{Name: "bottle", Sponsor: "Food & Beverage", Category: "food_beverage", Multiplier: 1.2},
		{Name: "pizza", Sponsor: "Food & Beverage", Category: "food_beverage", Multiplier: 1.3},
		{Name: "donut", Sponsor: "Food & Beverage", Category: "food_beverage", Multiplier: 1.2},
		{Name: "chair", Multiplier: 1.0},
		{Name: "backpack", Multiplier: 1.0},
	}

	// Métricas Prometheus para monitoramento das chamadas simuladas
	detectRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "detect_simulator_requests_total",
		Help: "Total de requisições por endpoint",
	}, []string{"endpoint"})
)

// Server estrutura principal do serviço
type server struct {
	log *zap.Logger
}

func newServer(log *zap.Logger) *server { return &server{log: log} }

// Handler de detecção (mock): sorteia objetos do catálogo e, no modo faces,
// devolve rostos em posições aleatórias
func (s *server) detectHandler(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	detectRequests.WithLabelValues("detect").Inc()

	mode := r.URL.Query().Get("mode")
	if mode == "" {
		mode = "objects"
	}

	res := detection.Result{
		Objects: []detection.Object{},
		Faces:   []detection.Face{},
	}

	if mode == "objects" || mode == "both" {
		n := 1 + rand.Intn(3)
		seen := map[string]bool{}
		for len(res.Objects) < n {
			obj := objectCatalog[rand.Intn(len(objectCatalog))]
			if seen[obj.Name] {
				continue
			}
			seen[obj.Name] = true
			obj.Confidence = rnd(0.55, 0.97)
			res.Objects = append(res.Objects, obj)
			if obj.Category != "" && !contains(res.SponsorCategories, obj.Category) {
				res.SponsorCategories = append(res.SponsorCategories, obj.Category)
			}
		}
	}
	if mode == "faces" || mode == "both" {
		n := rand.Intn(3)
		for i := 0; i < n; i++ {
			res.Faces = append(res.Faces, detection.Face{
				X:          rand.Intn(400),
				Y:          rand.Intn(300),
				Width:      120 + rand.Intn(120),
				Height:     100 + rand.Intn(100),
				Confidence: rnd(0.60, 0.95),
			})
		}
	}

	res.TotalObjects = len(res.Objects)
	res.TotalFaces = len(res.Faces)

	s.log.Info("detect mock",
		zap.String("mode", mode),
		zap.Int("objects", res.TotalObjects),
		zap.Int("faces", res.TotalFaces),
	)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(res)
}

// Handler de geração de linhas de aposta (mock)
func (s *server) bettingLinesHandler(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	detectRequests.WithLabelValues("betting-lines").Inc()

	var req struct {
		Objects           []string `json:"objects"`
		SponsorCategories []string `json:"sponsor_categories"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	objs := make([]detection.Object, 0, len(req.Objects))
	for _, name := range req.Objects {
		obj := detection.Object{Name: name, Multiplier: 1.0}
		for _, cat := range objectCatalog {
			if cat.Name == name {
				obj = cat
				break
			}
		}
		objs = append(objs, obj)
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(content.MockBettingLines(objs))
}

// Handler de geração de prompt de networking (mock)
func (s *server) networkingPromptHandler(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	detectRequests.WithLabelValues("networking-prompt").Inc()

	var req struct {
		Confidence float64 `json:"confidence"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{
		"prompt": content.MockNetworkingPrompt(req.Confidence),
	})
}

func contains(ss []string, v string) bool {
	for _, s := range ss {
		if s == v {
			return true
		}
	}
	return false
}

// gera número aleatório entre min e max
func rnd(min, max float64) float64 {
	return (rand.Float64() * (max - min)) + min
}

func main() {
	cfg := config.Load()
	log, err := logger.New(cfg.ServiceName, cfg.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()
	rand.Seed(time.Now().UnixNano())

	prometheus.MustRegister(detectRequests)

	s := newServer(log)

	// ==== MUX PÚBLICO: detecção e geração de conteúdo
	appMux := http.NewServeMux()
	appMux.HandleFunc("/detect", s.detectHandler)
	appMux.HandleFunc("/generate/betting-lines", s.bettingLinesHandler)
	appMux.HandleFunc("/generate/networking-prompt", s.networkingPromptHandler)

	// ==== MUX DE MÉTRICAS (/healthz, /metrics)
	metricsMux := http.NewServeMux()
	metricsMux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	metricsMux.Handle("/metrics", promhttp.Handler())

	// Servidor de métricas em goroutine
	go func() {
		metricsAddr := fmt.Sprintf(":%s", cfg.MetricsPort)
		log.Info("detect simulator (metrics) running",
			zap.String("addr", metricsAddr),
			zap.String("paths", "/healthz,/metrics"),
		)
		if err := http.ListenAndServe(metricsAddr, metricsMux); err != nil {
			log.Fatal("metrics server error", zap.Error(err))
		}
	}()

	// Servidor público
	publicAddr := fmt.Sprintf(":%s", cfg.HTTPPort)
	log.Info("detect simulator (public) running",
		zap.String("addr", publicAddr),
		zap.String("paths", "/detect,/generate/betting-lines,/generate/networking-prompt"),
	)
	if err := http.ListenAndServe(publicAddr, appMux); err != nil {
		log.Fatal("public server error", zap.Error(err))
	}
}
