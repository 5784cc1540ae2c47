package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	icache "TokenPulse/internal/service/cache"
	"TokenPulse/internal/service/metrics"
	"TokenPulse/internal/service/ratelimit"
	"TokenPulse/internal/services/scoring"
	"TokenPulse/internal/usecase"
	applogger "TokenPulse/pkg/logger"
	"TokenPulse/pkg/util"
)

// TokensHandler is the framework-free twin of TokensEchoHandler, used when
// the service is embedded without echo. Carries its own byte cache and
// per-remote rate limiting.
type TokensHandler struct {
	analyzer *usecase.TokenAnalyzer
	dev      *usecase.DevTrustChecker
	cache    icache.BytesCache
	rl       *ratelimit.Limiter
	l        *applogger.Logger
}

func NewTokensHandler(analyzer *usecase.TokenAnalyzer, dev *usecase.DevTrustChecker) *TokensHandler {
	metrics.Register()
	return &TokensHandler{analyzer: analyzer, dev: dev, rl: ratelimit.New()}
}

func (h *TokensHandler) SetCache(c icache.BytesCache) { h.cache = c }

// SetLogger injects a structured logger.
func (h *TokensHandler) SetLogger(l *applogger.Logger) { h.l = l }

func (h *TokensHandler) Analyze() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		endpoint := "analyze"
		defer func() { metrics.ScoringLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

		query := r.URL.Query().Get("q")
		if query == "" {
			if h.l != nil {
				h.l.Warn("tokens.analyze missing query")
			}
			http.Error(w, "q required", http.StatusBadRequest)
			return
		}
		limit := util.ParseIntDefault(r.URL.Query().Get("limit"), 5)
		if !h.rl.Allow(r.RemoteAddr+":analyze", 5, 2) {
			if h.l != nil {
				h.l.Warn("tokens.analyze rate_limited", applogger.String("remote", r.RemoteAddr))
			}
			http.Error(w, "rate limited", http.StatusTooManyRequests)
			return
		}
		cacheKey := "analyze:" + query
		if h.serveCached(w, cacheKey, endpoint) {
			return
		}
		res, err := h.analyzer.Analyze(r.Context(), query, limit)
		if err != nil {
			var verr *scoring.ValidationError
			if errors.As(err, &verr) {
				http.Error(w, verr.Msg, http.StatusBadRequest)
				return
			}
			metrics.ScoringErrors.WithLabelValues(endpoint).Inc()
			if h.l != nil {
				h.l.Error("tokens.analyze error", applogger.Error(err))
			}
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		h.writeJSON(w, cacheKey, endpoint, res, 30*time.Second)
	}
}

func (h *TokensHandler) DevTrust() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		endpoint := "dev_trust"
		defer func() { metrics.ScoringLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

		address := r.URL.Query().Get("address")
		if address == "" {
			if h.l != nil {
				h.l.Warn("tokens.dev_trust missing address")
			}
			http.Error(w, "address required", http.StatusBadRequest)
			return
		}
		mint := r.URL.Query().Get("mint")
		if !h.rl.Allow(r.RemoteAddr+":dev", 3, 1) {
			if h.l != nil {
				h.l.Warn("tokens.dev_trust rate_limited", applogger.String("remote", r.RemoteAddr))
			}
			http.Error(w, "rate limited", http.StatusTooManyRequests)
			return
		}
		cacheKey := "dev:" + address + ":" + mint
		if h.serveCached(w, cacheKey, endpoint) {
			return
		}
		res, err := h.dev.Check(r.Context(), address, mint)
		if err != nil {
			metrics.ScoringErrors.WithLabelValues(endpoint).Inc()
			if h.l != nil {
				h.l.Error("tokens.dev_trust error", applogger.Error(err))
			}
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		h.writeJSON(w, cacheKey, endpoint, res, 60*time.Second)
	}
}

func (h *TokensHandler) serveCached(w http.ResponseWriter, key, endpoint string) bool {
	if h.cache == nil {
		return false
	}
	b, ok, err := h.cache.GetBytes(key)
	if err != nil {
		if h.l != nil {
			h.l.Warn("tokens."+endpoint+" cache_get_error", applogger.Error(err))
		}
		return false
	}
	if !ok {
		if h.l != nil {
			h.l.Debug("tokens."+endpoint+" cache_miss", applogger.String("key", key))
		}
		return false
	}
	w.Header().Set("Content-Type", "application/json")
	if h.l != nil {
		h.l.Debug("tokens."+endpoint+" cache_hit", applogger.String("key", key))
	}
	if _, err := w.Write(b); err != nil && h.l != nil {
		h.l.Warn("tokens."+endpoint+" write_error", applogger.Error(err))
	}
	return true
}

func (h *TokensHandler) writeJSON(w http.ResponseWriter, key, endpoint string, v interface{}, ttl time.Duration) {
	w.Header().Set("Content-Type", "application/json")
	b, err := json.Marshal(v)
	if err != nil {
		if h.l != nil {
			h.l.Error("tokens."+endpoint+" marshal_error", applogger.Error(err))
		}
		http.Error(w, "encode error", http.StatusInternalServerError)
		return
	}
	if h.cache != nil {
		if err := h.cache.SetBytes(key, b, ttl); err != nil && h.l != nil {
			h.l.Warn("tokens."+endpoint+" cache_set_error", applogger.Error(err))
		}
	}
	if _, err := w.Write(b); err != nil && h.l != nil {
		h.l.Warn("tokens."+endpoint+" write_error", applogger.Error(err))
	}
}
