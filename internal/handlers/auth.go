package handlers

import (
	"errors"
	"net/http"

	"task_manager/internal/models"

	"github.com/gin-gonic/gin"
)

// Single, shared credentials payload for both signup and sign-in.
type authCredentials struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// bindJSONOrBadRequest tries to bind the request body into dst and writes a 400 JSON on failure.
// Returns false if the request was already handled (aborted), true otherwise.
func (h *Handler) bindJSONOrBadRequest(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		if h.log != nil {
			h.log.Infow("bad_request_body", "err", err)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

// @Summary      Register a new user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      authCredentials  true  "Credentials"
// @Success      201   {object}  service.CreatedUser
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /users [post]
func (h *Handler) signUp(c *gin.Context) {
	var input authCredentials
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	u, err := h.services.SignUp(c.Request.Context(), input.Username, input.Password)
	if err != nil {
		if errors.Is(err, models.ErrUsernameTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": "username already taken"})
			return
		}
		if errors.Is(err, models.ErrPasswordEmpty) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "password must not be blank"})
			return
		}
		// Anything else is a server fault; don't echo internals to the client.
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to create user", "sign_up_failed", err, "username", input.Username)
		return
	}

	c.JSON(http.StatusCreated, u)
}

// @Summary      Sign in with username and password
// @Description  Returns a bearer token and its lifetime in seconds.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      authCredentials  true  "Credentials"
// @Success      200   {object}  service.TokenPair
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /auth/sign-in [post]
func (h *Handler) signIn(c *gin.Context) {
	var input authCredentials
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	pair, err := h.services.SignIn(c.Request.Context(), input.Username, input.Password)
	if err != nil {
		// Unknown username and wrong password answer identically.
		if h.log != nil {
			h.log.Infow("sign_in_failed", "username", input.Username)
		}
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	c.JSON(http.StatusOK, pair)
}
