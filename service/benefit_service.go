package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"ahorro-energia/domain"
)

const (
	defaultAIURL     = "https://api.openai.com/v1/chat/completions"
	defaultAIModel   = "gpt-4o-mini"
	defaultAITimeout = 30 * time.Second
	aiMaxTokens      = 250
)

// BenefitMessages son los mensajes que se muestran después de cada cálculo.
var BenefitMessages = []string{
	"🌞 Las energías renovables ayudan a reducir tu huella de carbono y proteger el planeta.",
	"💸 Pasarte a energías renovables puede disminuir significativamente tus costos mensuales.",
	"⚡ Con energías limpias, aseguras un suministro más estable y menos dependiente de combustibles fósiles.",
	"🌱 Contribuyes al desarrollo sostenible de tu región y fomentas empleos verdes.",
	"🔋 Aprovecha los recursos naturales del Caribe para generar tu propia energía y ser más independiente.",
}

// AIOptions configures the optional explanation backend. An empty APIKey
// disables it and the deterministic summary is used instead.
type AIOptions struct {
	APIKey  string
	URL     string
	Model   string
	Timeout time.Duration
}

type BenefitService struct {
	apiKey     string
	apiURL     string
	model      string
	enabled    bool
	httpClient *http.Client
	intN       func(n int) int
	logger     zerolog.Logger
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func NewBenefitService(opts AIOptions, logger zerolog.Logger) *BenefitService {
	if opts.URL == "" {
		opts.URL = defaultAIURL
	}
	if opts.Model == "" {
		opts.Model = defaultAIModel
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultAITimeout
	}
	return &BenefitService{
		apiKey:  opts.APIKey,
		apiURL:  opts.URL,
		model:   opts.Model,
		enabled: opts.APIKey != "",
		httpClient: &http.Client{
			Timeout: opts.Timeout,
		},
		intN:   rand.IntN,
		logger: logger,
	}
}

// WithRandom replaces the source used to pick benefit messages.
func (s *BenefitService) WithRandom(intN func(n int) int) *BenefitService {
	s.intN = intN
	return s
}

// RandomMessage returns one of BenefitMessages.
func (s *BenefitService) RandomMessage() string {
	return BenefitMessages[s.intN(len(BenefitMessages))]
}

// Explain devuelve una explicación breve del resultado. Si el servicio de IA
// no está configurado o falla, se usa un resumen fijo.
func (s *BenefitService) Explain(
	ctx context.Context,
	municipality domain.Municipality,
	result domain.SavingsResult,
) string {
	if !s.enabled {
		return FallbackExplanation(municipality, result)
	}

	prompt := fmt.Sprintf(`Explica este resultado de ahorro energético para un hogar del Caribe colombiano.

DATOS:
- Municipio: %s
- Consumo mensual: %.1f kWh
- Factura actual: $%.0f COP
- Factura con energías renovables: $%.0f COP
- Ahorro mensual: $%.0f COP (%.0f%%)
- Ahorro anual: $%.0f COP
- kWh ahorrados al mes: %.0f

Genera 2-3 oraciones claras y motivacionales, en español, mencionando los montos en pesos colombianos.`,
		municipality.Name, result.FinalConsumptionKwh, result.FinalCost, result.RenewableCost,
		result.MonthlySavings, result.SavingsPercent, result.AnnualSavings, result.KwhSavedPerMonth)

	explanation, err := s.callLLM(ctx, prompt)
	if err != nil {
		s.logger.Warn().Err(err).Str("municipio", municipality.Key).Msg("explicación con IA no disponible")
		return FallbackExplanation(municipality, result)
	}
	return explanation
}

// FallbackExplanation builds the summary used when no AI backend answers.
func FallbackExplanation(municipality domain.Municipality, result domain.SavingsResult) string {
	return fmt.Sprintf(
		"En %s, con un consumo de %.0f kWh al mes, pasar a energías renovables reduciría tu factura de $%.0f a $%.0f COP. "+
			"Eso es un ahorro de $%.0f COP al mes (%.0f%%) y $%.0f COP al año.",
		municipality.Name, result.FinalConsumptionKwh, result.FinalCost, result.RenewableCost,
		result.MonthlySavings, result.SavingsPercent, result.AnnualSavings)
}

func (s *BenefitService) callLLM(ctx context.Context, prompt string) (string, error) {
	reqBody := chatRequest{
		Model: s.model,
		Messages: []chatMessage{
			{
				Role:    "system",
				Content: "Eres un asesor de eficiencia energética especializado en la región Caribe de Colombia. Explicas en español, con claridad y sin exagerar, cuánto puede ahorrar un hogar al usar energías renovables. Siempre expresas los montos en pesos colombianos (COP).",
			},
			{
				Role:    "user",
				Content: prompt,
			},
		},
		MaxTokens: aiMaxTokens,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", err
	}

	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("no response from AI")
	}

	return parsed.Choices[0].Message.Content, nil
}
