package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/eloboard/elo-services/internal/ledgersvc/broker"
	"github.com/eloboard/elo-services/internal/ledgersvc/models"
	"github.com/eloboard/elo-services/internal/ledgersvc/service"
	"github.com/eloboard/elo-services/internal/ledgersvc/ws"
	"github.com/go-chi/jwtauth"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	tokenAuth *jwtauth.JWTAuth
	identity  *service.IdentityService
	roster    *service.RosterService
	match     *service.MatchService
	query     *service.QueryService
	broker    *broker.Broker
	hub       *ws.Hub
}

func NewHandler(identity *service.IdentityService, roster *service.RosterService,
	match *service.MatchService, query *service.QueryService,
	b *broker.Broker, hub *ws.Hub) *Handler {
	return &Handler{
		identity: identity,
		roster:   roster,
		match:    match,
		query:    query,
		broker:   b,
		hub:      hub,
	}
}

type Response struct {
	Message string      `json:"message"`
	Code    int         `json:"code"`
	Data    interface{} `json:"data"`
	Error   string      `json:"error,omitempty"`
}

func (rs *Handler) CreateResponse(w http.ResponseWriter, rsp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(rsp.Code)

	json.NewEncoder(w).Encode(rsp)
}

func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	rsp := Response{
		Message: "ledger service is running at port " + os.Getenv("LEDGER_SERVICE_PORT"),
		Code:    200,
		Data:    nil,
	}
	json.NewEncoder(w).Encode(rsp)
}

// ownerID pulls the authenticated owner out of the verified JWT.
func (h *Handler) ownerID(r *http.Request) (int64, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return 0, err
	}

	switch v := claims["user_id"].(type) {
	case float64:
		return int64(v), nil
	case int64:
		return v, nil
	case json.Number:
		return v.Int64()
	}

	return 0, errors.New("token has no user_id claim")
}

// writeError maps the ledger error taxonomy onto HTTP codes.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError

	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		code = http.StatusBadRequest
	case errors.Is(err, models.ErrInvalidCredentials):
		code = http.StatusUnauthorized
	case errors.Is(err, models.ErrDuplicateUser), errors.Is(err, models.ErrDuplicateName):
		code = http.StatusConflict
	case errors.Is(err, models.ErrPlayerNotFound),
		errors.Is(err, models.ErrGameNotFound),
		errors.Is(err, models.ErrUserNotFound):
		code = http.StatusNotFound
	}

	if code == http.StatusInternalServerError {
		log.Errorf("internal error: %s", err)
	}

	h.CreateResponse(w, Response{Code: code, Error: err.Error()})
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) SignupHandler(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		h.writeError(w, models.NewValidationError("malformed request body"))
		return
	}

	u, err := h.identity.Signup(r.Context(), creds.Username, creds.Password)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.CreateResponse(w, Response{
		Message: "user created",
		Code:    http.StatusCreated,
		Data:    u,
	})
}

func (h *Handler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		h.writeError(w, models.NewValidationError("malformed request body"))
		return
	}

	userId, err := h.identity.Validate(r.Context(), creds.Username, creds.Password)
	if err != nil {
		h.writeError(w, err)
		return
	}

	expirationTime := time.Now().Add(7 * 24 * time.Hour).Unix()
	_, tokenString, err := h.tokenAuth.Encode(map[string]interface{}{
		"user_id": userId,
		"exp":     expirationTime,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.CreateResponse(w, Response{
		Message: "authenticated",
		Code:    http.StatusOK,
		Data:    map[string]string{"token": tokenString},
	})
}

// LiveHandler upgrades the connection and streams the owner's match
// events until the client disconnects.
func (h *Handler) LiveHandler(w http.ResponseWriter, r *http.Request) {
	userId, err := h.ownerID(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	if h.hub == nil {
		h.CreateResponse(w, Response{Code: http.StatusServiceUnavailable, Error: "live feed not available"})
		return
	}

	h.hub.Serve(w, r, userId)
}
