package detection

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Object é um objeto detectado, já classificado por patrocinador
type Object struct {
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
	Sponsor    string  `json:"sponsor,omitempty"`
	Category   string  `json:"category,omitempty"`
	Multiplier float64 `json:"multiplier,omitempty"`
}

// Face é um rosto detectado na imagem
type Face struct {
	X          int     `json:"x"`
	Y          int     `json:"y"`
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	Confidence float64 `json:"confidence"`
}

// Result é a resposta do serviço de detecção, consumida sem inspeção extra
type Result struct {
	Objects           []Object `json:"objects"`
	Faces             []Face   `json:"faces"`
	SponsorCategories []string `json:"sponsor_categories"`
	TotalObjects      int      `json:"total_objects"`
	TotalFaces        int      `json:"total_faces"`
}

// Client chama o serviço externo de detecção de objetos/rostos
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

// Detect envia os bytes da imagem e retorna o resultado decodificado.
// mode: "objects" ou "faces".
func (c *Client) Detect(ctx context.Context, image []byte, mode string) (*Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.BaseURL+"/detect?mode="+mode, bytes.NewReader(image))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/octet-stream")

	res, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode >= 300 {
		return nil, fmt.Errorf("detection http %d", res.StatusCode)
	}

	var out Result
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Fallback retorna um resultado de demonstração pra quando o serviço de
// detecção está fora. As operações de ledger/sala seguem funcionando com ele.
func Fallback() *Result {
	return &Result{
		Objects: []Object{
			{Name: "laptop", Confidence: 0.85, Sponsor: "Tech Giants", Category: "tech_giants", Multiplier: 1.5},
			{Name: "cup", Confidence: 0.75, Sponsor: "Food & Beverage", Category: "food_beverage", Multiplier: 1.2},
			{Name: "cell phone", Confidence: 0.90, Sponsor: "Tech Giants", Category: "tech_giants", Multiplier: 1.4},
		},
		Faces:             []Face{{X: 100, Y: 100, Width: 200, Height: 150, Confidence: 0.8}},
		SponsorCategories: []string{"tech_giants", "food_beverage"},
		TotalObjects:      3,
		TotalFaces:        1,
	}
}
