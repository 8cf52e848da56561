package service

import (
	"github.com/shopspring/decimal"

	"github.com/set-night/sofia/internal/domain"
)

var perMillion = decimal.NewFromInt(1_000_000)

// BillingService estimates the cost of chat requests from reported token usage.
type BillingService struct {
	promptPrice     decimal.Decimal
	completionPrice decimal.Decimal
}

// NewBillingService takes prices in USD per one million tokens.
func NewBillingService(promptPrice, completionPrice decimal.Decimal) *BillingService {
	return &BillingService{promptPrice: promptPrice, completionPrice: completionPrice}
}

// Cost returns the estimated USD cost of one request.
func (s *BillingService) Cost(u domain.Usage) decimal.Decimal {
	return CalculateCost(u.PromptTokens, u.CompletionTokens, s.promptPrice, s.completionPrice)
}

// CalculateCost prices prompt and completion tokens separately.
func CalculateCost(promptTokens, completionTokens int, promptPrice, completionPrice decimal.Decimal) decimal.Decimal {
	promptCost := decimal.NewFromInt(int64(promptTokens)).Mul(promptPrice).Div(perMillion)
	completionCost := decimal.NewFromInt(int64(completionTokens)).Mul(completionPrice).Div(perMillion)
	return promptCost.Add(completionCost)
}
