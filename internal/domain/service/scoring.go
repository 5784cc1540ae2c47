package service

import (
	"time"

	"TokenPulse/internal/domain/models"
)

// RiskScorer derives the four-category risk assessment from a pair snapshot.
type RiskScorer interface {
	Assess(pair *models.PairSnapshot) models.RiskAssessment
}

// SentimentScorer classifies trading activity for a pair snapshot.
type SentimentScorer interface {
	Analyze(pair *models.PairSnapshot) models.SentimentSnapshot
}

// MomentumScorer computes the 0-100 trading-intensity composite.
type MomentumScorer interface {
	Score(pair *models.PairSnapshot) models.MomentumScore
}

// Predictor builds the speculative scenario bands.
type Predictor interface {
	Project(pair *models.PairSnapshot, sentiment models.SentimentSnapshot) models.Prediction
}

// VerdictBuilder combines risk and sentiment into the terminal verdict.
type VerdictBuilder interface {
	Build(pair *models.PairSnapshot, risk models.RiskAssessment, sentiment models.SentimentSnapshot) models.Verdict
}

// DevTrustScorer weighs a creator profile into a trust result.
type DevTrustScorer interface {
	Score(profile *models.CreatorProfile, pair *models.PairSnapshot, now time.Time) models.DevTrustResult
}

// WalletTrustScorer weighs a wallet summary into a trust result.
type WalletTrustScorer interface {
	Score(summary *models.WalletSummary, now time.Time) models.WalletTrustResult
}
