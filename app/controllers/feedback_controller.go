package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"feedback-board/app/authz"
	"feedback-board/app/dto"
	"feedback-board/app/middleware"
	"feedback-board/app/models"
	"feedback-board/app/repo"
	"feedback-board/app/services"
	"feedback-board/app/session"
	"feedback-board/app/view"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

type FeedbackController struct {
	Feedback *services.FeedbackService
	Sessions *session.Manager
	View     *view.Renderer
	Log      zerolog.Logger
}

func NewFeedbackController(feedback *services.FeedbackService, sessions *session.Manager, v *view.Renderer, log zerolog.Logger) *FeedbackController {
	return &FeedbackController{Feedback: feedback, Sessions: sessions, View: v, Log: log}
}

type feedbackFormPage struct {
	Form     dto.FeedbackForm
	Username string
}

type updateFormPage struct {
	Form     dto.FeedbackForm
	Feedback *models.Feedback
}

// AddForm shows the creation form. This is a /users/{username} route, so
// session presence is checked before anything else.
func (c *FeedbackController) AddForm(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	ident := middleware.GetIdentity(r.Context())
	if err := authz.OwnerAction(ident, username); err != nil {
		denyOwner(c.Sessions, w, r, err, noticePleaseLoginView)
		return
	}
	c.renderAddForm(w, r, username, dto.FeedbackForm{}, nil)
}

func (c *FeedbackController) Add(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	ident := middleware.GetIdentity(r.Context())
	if err := authz.OwnerAction(ident, username); err != nil {
		denyOwner(c.Sessions, w, r, err, noticePleaseLoginView)
		return
	}
	form := dto.FeedbackFormFromRequest(r)
	if errs := form.Validate(); len(errs) > 0 {
		c.renderAddForm(w, r, username, form, errs)
		return
	}
	// Owner comes from the authorized identity; the path segment only
	// gated access above.
	if _, err := c.Feedback.Create(r.Context(), ident, form.Title, form.Content); err != nil {
		c.Log.Error().Err(err).Msg("create feedback failed")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	redirect(w, r, "/users/"+username)
}

// UpdateForm loads the feedback row first: an unknown id is a 404 no matter
// who asks. Only then are session and ownership checked.
func (c *FeedbackController) UpdateForm(w http.ResponseWriter, r *http.Request) {
	fb, ok := c.resolve(w, r)
	if !ok {
		return
	}
	ident := middleware.GetIdentity(r.Context())
	if err := authz.OwnerAction(ident, fb.Username); err != nil {
		denyOwner(c.Sessions, w, r, err, noticePleaseLoginAct)
		return
	}
	form := dto.FeedbackForm{Title: fb.Title, Content: fb.Content}
	c.renderUpdateForm(w, r, fb, form, nil)
}

func (c *FeedbackController) Update(w http.ResponseWriter, r *http.Request) {
	fb, ok := c.resolve(w, r)
	if !ok {
		return
	}
	ident := middleware.GetIdentity(r.Context())
	form := dto.FeedbackFormFromRequest(r)
	if errs := form.Validate(); len(errs) > 0 {
		if err := authz.OwnerAction(ident, fb.Username); err != nil {
			denyOwner(c.Sessions, w, r, err, noticePleaseLoginAct)
			return
		}
		c.renderUpdateForm(w, r, fb, form, errs)
		return
	}
	_, err := c.Feedback.Update(r.Context(), ident, fb.ID, form.Title, form.Content)
	switch {
	case errors.Is(err, authz.ErrNoSession), errors.Is(err, authz.ErrUnauthorized):
		denyOwner(c.Sessions, w, r, err, noticePleaseLoginAct)
		return
	case errors.Is(err, repo.ErrNotFound):
		http.NotFound(w, r)
		return
	case err != nil:
		c.Log.Error().Err(err).Msg("update feedback failed")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	redirect(w, r, "/users/"+fb.Username)
}

func (c *FeedbackController) Delete(w http.ResponseWriter, r *http.Request) {
	fb, ok := c.resolve(w, r)
	if !ok {
		return
	}
	ident := middleware.GetIdentity(r.Context())
	err := c.Feedback.Delete(r.Context(), ident, fb.ID)
	switch {
	case errors.Is(err, authz.ErrNoSession), errors.Is(err, authz.ErrUnauthorized):
		denyOwner(c.Sessions, w, r, err, noticePleaseLoginAct)
		return
	case errors.Is(err, repo.ErrNotFound):
		http.NotFound(w, r)
		return
	case err != nil:
		c.Log.Error().Err(err).Msg("delete feedback failed")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	c.Sessions.Flash(w, r, "Feedback deleted.")
	redirect(w, r, "/users/"+fb.Username)
}

// Show is the one public feedback route.
func (c *FeedbackController) Show(w http.ResponseWriter, r *http.Request) {
	fb, ok := c.resolve(w, r)
	if !ok {
		return
	}
	ident, _ := middleware.GetIdentity(r.Context()).Username()
	c.View.Render(w, "feedback_page", view.Page{
		Title:   fb.Title,
		Ident:   ident,
		Notices: c.Sessions.PopFlashes(w, r),
		Data:    fb,
	})
}

// resolve parses {id} and loads the feedback row, writing a 404 on a bad or
// unknown id.
func (c *FeedbackController) resolve(w http.ResponseWriter, r *http.Request) (*models.Feedback, bool) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
	if err != nil {
		http.NotFound(w, r)
		return nil, false
	}
	fb, err := c.Feedback.Get(r.Context(), uint(id))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			http.NotFound(w, r)
			return nil, false
		}
		c.Log.Error().Err(err).Msg("load feedback failed")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return nil, false
	}
	return fb, true
}

func (c *FeedbackController) renderAddForm(w http.ResponseWriter, r *http.Request, username string, form dto.FeedbackForm, errs []string) {
	c.View.Render(w, "feedback_form", view.Page{
		Title:   "Add feedback",
		Ident:   username,
		Notices: c.Sessions.PopFlashes(w, r),
		Errors:  errs,
		Data:    feedbackFormPage{Form: form, Username: username},
	})
}

func (c *FeedbackController) renderUpdateForm(w http.ResponseWriter, r *http.Request, fb *models.Feedback, form dto.FeedbackForm, errs []string) {
	c.View.Render(w, "update_feedback", view.Page{
		Title:   "Edit feedback",
		Ident:   fb.Username,
		Notices: c.Sessions.PopFlashes(w, r),
		Errors:  errs,
		Data:    updateFormPage{Form: form, Feedback: fb},
	})
}
