package server

import (
	"fmt"
	"net/http"

	"github.com/Veraticus/dex/internal/common"
	"github.com/Veraticus/dex/internal/contact"
	"github.com/Veraticus/dex/internal/model"
	"github.com/Veraticus/dex/internal/nav"
	"github.com/gin-gonic/gin"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type profileRequest struct {
	DisplayName string `json:"display_name"`
	PhotoURL    string `json:"photo_url"`
}

// authResponse carries the bearer token for later requests.
type authResponse struct {
	User  *model.User `json:"user"`
	Token string      `json:"token"`
}

type contactResponse struct {
	Message      *model.ContactMessage `json:"message"`
	Confirmation string                `json:"confirmation"`
}

func bindJSON(c *gin.Context, out any) bool {
	if err := c.ShouldBindJSON(out); err != nil {
		badRequest(c, fmt.Errorf("%w: %w", common.ErrInvalidInput, err))
		return false
	}
	return true
}

func (s *Server) register(c *gin.Context) {
	var req credentialsRequest
	if !bindJSON(c, &req) {
		return
	}
	user, token, err := s.auth.RegisterToken(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, authResponse{User: user, Token: token})
}

func (s *Server) login(c *gin.Context) {
	var req credentialsRequest
	if !bindJSON(c, &req) {
		return
	}
	user, token, err := s.auth.LoginToken(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, authResponse{User: user, Token: token})
}

func (s *Server) logout(c *gin.Context) {
	if err := s.auth.RevokeToken(c.Request.Context(), bearerToken(c)); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) me(c *gin.Context) {
	c.JSON(http.StatusOK, currentUser(c))
}

func (s *Server) updateProfile(c *gin.Context) {
	var req profileRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := s.auth.UpdateProfileOf(c.Request.Context(), currentUser(c), req.DisplayName, req.PhotoURL)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (s *Server) navItems(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": nav.Items(currentUser(c))})
}

func (s *Server) submitContact(c *gin.Context) {
	var msg model.ContactMessage
	if !bindJSON(c, &msg) {
		return
	}
	stored, err := s.contact.Submit(c.Request.Context(), msg)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, contactResponse{Message: stored, Confirmation: contact.Confirmation})
}
