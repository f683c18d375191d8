// Package advice turns a resolved price and a forecast into short Marathi
// guidance for farmers.
package advice

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/sells-group/mandi-advisor/internal/model"
	"github.com/sells-group/mandi-advisor/pkg/anthropic"
)

// Degraded messages returned in place of generated advice.
const (
	MsgNoKey       = "सल्ला उपलब्ध नाही (API Key missing)."
	MsgEmpty       = "सल्ला उपलब्ध नाही."
	MsgUnavailable = "सध्या सल्ला उपलब्ध नाही. (Self-Analysis: Check market trends manually)."
)

// Generator writes advice with a language model. A nil client yields MsgNoKey.
type Generator struct {
	client    anthropic.Client
	model     string
	maxTokens int64
	timeout   time.Duration
}

// NewGenerator creates a Generator.
func NewGenerator(client anthropic.Client, model string, maxTokens int64, timeout time.Duration) *Generator {
	if maxTokens <= 0 {
		maxTokens = 1024
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Generator{client: client, model: model, maxTokens: maxTokens, timeout: timeout}
}

// Generate never fails; problems are reported through the degraded messages.
func (g *Generator) Generate(ctx context.Context, price model.ResolvedPrice, weather model.Weather) string {
	if g == nil || g.client == nil {
		return MsgNoKey
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	resp, err := g.client.CreateMessage(ctx, anthropic.UserMessage(g.model, g.maxTokens, Prompt(price, weather)))
	if err != nil {
		zap.L().Warn("advice: generation failed", zap.String("crop", price.Crop), zap.Error(err))
		return MsgUnavailable
	}
	text := resp.Text()
	if text == "" {
		return MsgEmpty
	}
	return text
}

// Prompt builds the instruction sent to the model.
func Prompt(price model.ResolvedPrice, weather model.Weather) string {
	rain := "No"
	if weather.RainNext3Days {
		rain = "Yes"
	}
	forecast := weather.ForecastText
	if forecast == "" {
		forecast = "Unavailable"
	}

	var sb strings.Builder
	sb.WriteString("You are an expert agricultural advisor for farmers in Maharashtra. ")
	sb.WriteString("Based on the following data, give simple, actionable advice in Marathi. ")
	sb.WriteString("Do not just list numbers. Recommend whether to sell now or hold.\n\nData:\n")
	fmt.Fprintf(&sb, "Crop: %s\n", price.Crop)
	fmt.Fprintf(&sb, "Market: %s\n", price.Market)
	fmt.Fprintf(&sb, "Current Price: ₹%.2f/kg (%s)\n", price.ModalPriceKg, price.Source.Label())
	sb.WriteString("Price Trend: Stable (Assumed)\n")
	fmt.Fprintf(&sb, "Weather Forecast: %s\n", forecast)
	fmt.Fprintf(&sb, "Rain Warning: %s\n", rain)
	sb.WriteString("\nOutput in Marathi only.")
	return sb.String()
}
