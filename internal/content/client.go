package content

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/goosetokens/goose-platform-poc/internal/detection"
)

// BettingLine é uma linha de aposta gerada pro conjunto de objetos detectados.
// O texto vem do gerador externo e é armazenado como chegou.
type BettingLine struct {
	Line            string  `json:"line"`
	Odds            string  `json:"odds"`
	BaseStake       int64   `json:"base_stake"`
	Sponsor         string  `json:"sponsor"`
	Multiplier      float64 `json:"multiplier"`
	MaxPotentialWin int64   `json:"max_potential_win"`
}

// Client chama o serviço externo de geração de texto
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func New(base string) *Client {
	return &Client{
		BaseURL: base,
		HTTP:    &http.Client{Timeout: 5 * time.Second},
	}
}

type generateReq struct {
	Objects           []string `json:"objects"`
	SponsorCategories []string `json:"sponsor_categories"`
}

// BettingLines pede linhas de aposta pros objetos detectados
func (c *Client) BettingLines(ctx context.Context, objects, sponsorCategories []string) ([]BettingLine, error) {
	body, _ := json.Marshal(generateReq{Objects: objects, SponsorCategories: sponsorCategories})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.BaseURL+"/generate/betting-lines", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode >= 300 {
		return nil, fmt.Errorf("content generator http %d", res.StatusCode)
	}

	var out []BettingLine
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}

// NetworkingPrompt pede uma sugestão de quest de networking pra um rosto detectado
func (c *Client) NetworkingPrompt(ctx context.Context, confidence float64) (string, error) {
	body, _ := json.Marshal(map[string]float64{"confidence": confidence})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.BaseURL+"/generate/networking-prompt", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.HTTP.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()
	if res.StatusCode >= 300 {
		return "", fmt.Errorf("content generator http %d", res.StatusCode)
	}

	var out struct {
		Prompt string `json:"prompt"`
	}
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return "", err
	}
	return out.Prompt, nil
}

// MockBettingLines gera linhas locais quando o gerador está fora
func MockBettingLines(objects []detection.Object) []BettingLine {
	generic := []string{
		"At least 3 people will ask about your project setup",
		"Someone will take a photo for their LinkedIn",
		"A team will order food delivery within 30 minutes",
	}

	var lines []BettingLine
	for _, obj := range objects {
		if len(lines) == 3 {
			break
		}
		mult := obj.Multiplier
		if mult == 0 {
			mult = 1.0
		}
		sponsor := obj.Sponsor
		if sponsor == "" {
			sponsor = "General"
		}
		lines = append(lines, BettingLine{
			Line:            fmt.Sprintf("Someone will spill coffee on their %s in the next hour", obj.Name),
			Odds:            "3:1",
			BaseStake:       10,
			Sponsor:         sponsor,
			Multiplier:      mult,
			MaxPotentialWin: int64(10 * mult),
		})
	}
	for i := len(lines); i < 3 && i < len(generic); i++ {
		lines = append(lines, BettingLine{
			Line:            generic[i],
			Odds:            "2:1",
			BaseStake:       10,
			Sponsor:         "General",
			Multiplier:      1.5,
			MaxPotentialWin: 15,
		})
	}
	return lines
}

// MockNetworkingPrompt escolhe uma sugestão local pelo nível de confiança
func MockNetworkingPrompt(confidence float64) string {
	prompts := []string{
		"Introduce yourself and ask about their project",
		"Exchange LinkedIn profiles and discuss tech interests",
		"Ask what brought them to this hackathon",
		"Share your project idea and ask for feedback",
		"Discuss the most interesting tech you've seen today",
	}
	idx := int(confidence*float64(len(prompts))) % len(prompts)
	if idx < 0 {
		idx = 0
	}
	return prompts[idx]
}
