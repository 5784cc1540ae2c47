package api

import (
	"errors"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	models "TokenPulse/internal/domain/models"
	domrepo "TokenPulse/internal/domain/repository"
	"TokenPulse/internal/service/stream"
	"TokenPulse/internal/services/scoring"
	"TokenPulse/internal/usecase"
	xhttp "TokenPulse/pkg/http"
	xlogger "TokenPulse/pkg/logger"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// TokensEchoHandler implements Echo-based HTTP handlers following Clean Architecture.
type TokensEchoHandler struct {
	logger   *xlogger.Logger
	analyzer *usecase.TokenAnalyzer
	dev      *usecase.DevTrustChecker
	wallet   *usecase.WalletChecker
	hub      *stream.Hub
}

func NewTokensEchoHandler(
	logger *xlogger.Logger,
	analyzer *usecase.TokenAnalyzer,
	dev *usecase.DevTrustChecker,
	wallet *usecase.WalletChecker,
	hub *stream.Hub,
) *TokensEchoHandler {
	return &TokensEchoHandler{logger: logger, analyzer: analyzer, dev: dev, wallet: wallet, hub: hub}
}

func (h *TokensEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/analyze", h.Analyze)
	g.GET("/tokens/:chain/:address", h.Token)
	g.GET("/dev/:address", h.DevTrust)
	g.GET("/wallet/:address", h.WalletTrust)
	g.GET("/history/:chain/:address", h.History)
	g.GET("/stream", h.Stream)
}

func (h *TokensEchoHandler) Analyze(c echo.Context) error {
	req := &models.AnalyzeRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.analyzer.Analyze(c.Request().Context(), req.Query, req.Limit)
	if err != nil {
		return h.analysisError(c, "analyze", err)
	}
	c.Response().Header().Set(echo.HeaderCacheControl, "private, max-age=30")
	return xhttp.SuccessResponse(c, res)
}

func (h *TokensEchoHandler) Token(c echo.Context) error {
	req := &models.TokenRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.analyzer.AnalyzeToken(c.Request().Context(), req.Chain, req.Address)
	if err != nil {
		return h.analysisError(c, "token", err)
	}
	c.Response().Header().Set(echo.HeaderCacheControl, "private, max-age=30")
	return xhttp.SuccessResponse(c, res)
}

func (h *TokensEchoHandler) DevTrust(c echo.Context) error {
	req := &models.DevTrustRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.dev.Check(c.Request().Context(), req.Address, req.Mint)
	if err != nil {
		h.logger.Error("dev trust usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *TokensEchoHandler) WalletTrust(c echo.Context) error {
	req := &models.WalletTrustRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.wallet.Check(c.Request().Context(), req.Address)
	if err != nil {
		h.logger.Error("wallet trust usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.InternalError("wallet data unavailable, try again later").WithError(err))
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *TokensEchoHandler) History(c echo.Context) error {
	req := &models.HistoryRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.analyzer.History(c.Request().Context(), req.Chain, req.Address, req.N)
	if err != nil {
		h.logger.Error("history usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.ListResponse(c, res, int64(len(res)))
}

// Stream upgrades to a websocket and pushes rescan results for one token.
func (h *TokensEchoHandler) Stream(c echo.Context) error {
	req := &models.WatchRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	chain := string(domrepo.NormalizeChain(req.Chain))

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", xlogger.Error(err))
		return err
	}
	h.hub.Subscribe(conn, chain, req.Address)
	return nil
}

// analysisError maps pipeline failures onto caller-meaningful statuses:
// a rejected query is a 400, unanimous not-found is a 404, and a full
// provider outage is a 503.
func (h *TokensEchoHandler) analysisError(c echo.Context, op string, err error) error {
	var verr *scoring.ValidationError
	switch {
	case errors.As(err, &verr):
		return xhttp.BadRequestResponse(c, verr.Msg)
	case errors.Is(err, usecase.ErrTokenNotFound):
		return xhttp.AppErrorResponse(c,
			xhttp.NotFoundError("token not found, it may not be indexed yet; try again later"))
	case errors.Is(err, usecase.ErrProvidersDown):
		h.logger.Error(op+" providers down", xlogger.Error(err))
		return xhttp.AppErrorResponse(c,
			xhttp.NewAppError("ERR_UPSTREAM", "", "market data temporarily unavailable", http.StatusServiceUnavailable).WithError(err))
	default:
		h.logger.Error(op+" usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
}
