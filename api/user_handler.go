package api

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/openblog/backend/database"
	"github.com/openblog/backend/errs"
	"github.com/openblog/backend/models"
	"github.com/openblog/backend/services"
)

type userHandler struct {
	responder Responder
	logger    zerolog.Logger
	users     *services.UserService
	tokens    TokenManager
}

func newUserHandler(users *services.UserService, tokens TokenManager) userHandler {
	logger := log.With().Str("handlerName", "userHandler").Logger()

	return userHandler{
		responder: NewResponder(logger),
		logger:    logger,
		users:     users,
		tokens:    tokens,
	}
}

// listUsers returns one page of users; only admins reach this route
// @Summary List users
// @Description Lists users with filtering and sorting; admin only
// @Tags Users
// @Produce json
// @Param role query string false "Role filter"
// @Param status query string false "Status filter"
// @Param name query string false "Name substring"
// @Param email query string false "Email substring"
// @Param search query string false "Substring across name or email"
// @Param sort_by query string false "Sort field"
// @Param order query string false "asc or desc"
// @Success 200 {object} Page "Page of users"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Router /v1/admin/users [get]
func (h userHandler) listUsers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		filter := database.ParseUserFilter(q, isAdminRequest(r))
		page, perPage := parsePagination(q)

		users, total, err := h.users.List(filter, page, perPage)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteOK(w, "Users fetched successfully", Page{
			Items:   users,
			Total:   total,
			Page:    page,
			PerPage: perPage,
		})
	}
}

// createUser registers an account with an explicit role and returns a token
// @Summary Create user
// @Tags Users
// @Accept json
// @Produce json
// @Param user body services.RegisterUserInput true "User data"
// @Success 201 {object} map[string]any "Created user with access token"
// @Failure 409 {object} ErrorResponse "Email already registered"
// @Router /v1/admin/users [post]
func (h userHandler) createUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input services.RegisterUserInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode user request body")
			h.responder.WriteError(w, errs.NewMalformedPayloadError("user", err))
			return
		}

		user, err := h.users.Register(input)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		token, err := h.tokens.Issue(user)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalError("failed to issue token"))
			return
		}

		h.responder.WriteSuccess(w, http.StatusCreated, "User registered successfully", map[string]any{
			"user":         user,
			"access_token": token,
			"token_type":   "Bearer",
		})
	}
}

// createAuthor registers an account with the role pinned to author
// @Summary Create author
// @Tags Users
// @Accept json
// @Produce json
// @Param user body services.RegisterUserInput true "Author data; any supplied role is overridden"
// @Success 201 {object} map[string]any "Created author with access token"
// @Router /v1/admin/authors [post]
func (h userHandler) createAuthor() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input services.RegisterUserInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode author request body")
			h.responder.WriteError(w, errs.NewMalformedPayloadError("author", err))
			return
		}

		input.Role = models.RoleAuthor
		user, err := h.users.Register(input)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		token, err := h.tokens.Issue(user)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalError("failed to issue token"))
			return
		}

		h.responder.WriteSuccess(w, http.StatusCreated, "Author registered successfully", map[string]any{
			"user":         user,
			"access_token": token,
			"token_type":   "Bearer",
		})
	}
}

// getUser returns one account
// @Summary Get user
// @Tags Users
// @Produce json
// @Param userID path int true "User ID"
// @Success 200 {object} models.User "User details"
// @Failure 404 {object} ErrorResponse "Not Found"
// @Router /v1/admin/users/{userID} [get]
func (h userHandler) getUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := parseUintParam(r, "userID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		user, err := h.users.Get(userID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteOK(w, "User found", user)
	}
}

// updateUser applies a partial update to an account
// @Summary Update user
// @Tags Users
// @Accept json
// @Produce json
// @Param userID path int true "User ID"
// @Param user body services.UpdateUserInput true "Fields to update"
// @Success 200 {object} models.User "Updated user"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Router /v1/admin/users/{userID} [put]
func (h userHandler) updateUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := parseUintParam(r, "userID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var input services.UpdateUserInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode user request body")
			h.responder.WriteError(w, errs.NewMalformedPayloadError("user", err))
			return
		}

		user, err := h.users.Update(userFromCtx(r.Context()), userID, input)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteOK(w, "User updated", user)
	}
}

// deleteUser removes an account
// @Summary Delete user
// @Tags Users
// @Produce json
// @Param userID path int true "User ID"
// @Success 200 {object} map[string]string "Success message"
// @Failure 404 {object} ErrorResponse "Not Found"
// @Router /v1/admin/users/{userID} [delete]
func (h userHandler) deleteUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := parseUintParam(r, "userID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.users.Delete(userFromCtx(r.Context()), userID); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteOK(w, "User deleted", nil)
	}
}
