package controllers

import (
	"errors"
	"net/http"

	"feedback-board/app/authz"
	"feedback-board/app/middleware"
	"feedback-board/app/models"
	"feedback-board/app/repo"
	"feedback-board/app/services"
	"feedback-board/app/session"
	"feedback-board/app/view"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

type UserController struct {
	Users    *repo.UserRepository
	Feedback *services.FeedbackService
	Sessions *session.Manager
	View     *view.Renderer
	Log      zerolog.Logger
}

func NewUserController(users *repo.UserRepository, feedback *services.FeedbackService, sessions *session.Manager, v *view.Renderer, log zerolog.Logger) *UserController {
	return &UserController{Users: users, Feedback: feedback, Sessions: sessions, View: v, Log: log}
}

type userPage struct {
	User     *models.User
	Feedback []models.Feedback
}

// Show renders a user's profile and feedback list. Session presence is
// checked before the target user is even looked up, so an anonymous caller
// learns nothing about which usernames exist.
func (c *UserController) Show(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	ident := middleware.GetIdentity(r.Context())
	if err := authz.OwnerAction(ident, username); err != nil {
		denyOwner(c.Sessions, w, r, err, noticePleaseLoginView)
		return
	}
	user, err := c.Users.FindByUsername(r.Context(), username)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		c.Log.Error().Err(err).Msg("load user failed")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	feedback, err := c.Feedback.ListByOwner(r.Context(), username)
	if err != nil {
		c.Log.Error().Err(err).Msg("list feedback failed")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	c.View.Render(w, "user_page", view.Page{
		Title:   user.Username,
		Ident:   username,
		Notices: c.Sessions.PopFlashes(w, r),
		Data:    userPage{User: user, Feedback: feedback},
	})
}

// Delete removes the account and everything it owns, then drops the session:
// deleting yourself logs you out.
func (c *UserController) Delete(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	ident := middleware.GetIdentity(r.Context())
	err := c.Feedback.DeleteAccount(r.Context(), ident, username)
	switch {
	case errors.Is(err, authz.ErrNoSession), errors.Is(err, authz.ErrUnauthorized):
		denyOwner(c.Sessions, w, r, err, noticePleaseLoginAct)
		return
	case errors.Is(err, repo.ErrNotFound):
		http.NotFound(w, r)
		return
	case err != nil:
		c.Log.Error().Err(err).Msg("delete user failed")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	c.Sessions.ClearAndFlash(w, r, "User deleted.")
	redirect(w, r, "/")
}
