package api

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/openblog/backend/errs"
	"github.com/openblog/backend/services"
)

type authHandler struct {
	responder Responder
	logger    zerolog.Logger
	users     *services.UserService
	tokens    TokenManager
}

func newAuthHandler(users *services.UserService, tokens TokenManager) authHandler {
	logger := log.With().Str("handlerName", "authHandler").Logger()

	return authHandler{
		responder: NewResponder(logger),
		logger:    logger,
		users:     users,
		tokens:    tokens,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// login authenticates a user and returns an access token
// @Summary User login
// @Tags Authentication
// @Accept json
// @Produce json
// @Param credentials body loginRequest true "Email and password"
// @Success 200 {object} map[string]string "Access token"
// @Failure 401 {object} ErrorResponse "Invalid credentials"
// @Router /auth/login [post]
func (h authHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input loginRequest
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			h.responder.WriteError(w, errs.NewMalformedPayloadError("login", err))
			return
		}
		if input.Email == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("email"))
			return
		}
		if input.Password == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("password"))
			return
		}

		user, err := h.users.Authenticate(input.Email, input.Password)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		token, err := h.tokens.Issue(user)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalError("failed to issue token"))
			return
		}

		h.responder.WriteOK(w, "Authenticated", map[string]string{
			"token": token,
		})
	}
}

// logout acknowledges a logout. Tokens are stateless, so the client simply
// discards its copy; there is no server-side session to tear down.
// @Summary User logout
// @Tags Authentication
// @Produce json
// @Success 200 {object} map[string]string "Success message"
// @Router /auth/logout [post]
func (h authHandler) logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteOK(w, "Logged out successfully", nil)
	}
}
