package controllers

import (
	"errors"
	"net/http"

	"feedback-board/app/dto"
	"feedback-board/app/middleware"
	"feedback-board/app/repo"
	"feedback-board/app/services"
	"feedback-board/app/session"
	"feedback-board/app/view"

	"github.com/rs/zerolog"
)

type AuthController struct {
	Auth     *services.AuthService
	Sessions *session.Manager
	View     *view.Renderer
	Log      zerolog.Logger
}

func NewAuthController(auth *services.AuthService, sessions *session.Manager, v *view.Renderer, log zerolog.Logger) *AuthController {
	return &AuthController{Auth: auth, Sessions: sessions, View: v, Log: log}
}

func (c *AuthController) Home(w http.ResponseWriter, r *http.Request) {
	redirect(w, r, "/register")
}

func (c *AuthController) RegisterForm(w http.ResponseWriter, r *http.Request) {
	c.renderRegister(w, r, dto.RegisterForm{}, nil)
}

func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	form := dto.RegisterFormFromRequest(r)
	if errs := form.Validate(); len(errs) > 0 {
		c.renderRegister(w, r, form, errs)
		return
	}
	user, err := c.Auth.Register(r.Context(), services.RegisterParams{
		Username:  form.Username,
		Password:  form.Password,
		Email:     form.Email,
		FirstName: form.FirstName,
		LastName:  form.LastName,
	})
	switch {
	case errors.Is(err, repo.ErrDuplicateUsername):
		c.renderRegister(w, r, form, []string{"Username taken."})
		return
	case errors.Is(err, repo.ErrDuplicateEmail):
		c.renderRegister(w, r, form, []string{"E-mail taken."})
		return
	case err != nil:
		c.Log.Error().Err(err).Msg("register failed")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if err := c.Sessions.SetIdentity(w, r, user.Username); err != nil {
		c.Log.Error().Err(err).Msg("session bind failed")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	redirect(w, r, "/users/"+user.Username)
}

func (c *AuthController) LoginForm(w http.ResponseWriter, r *http.Request) {
	c.renderLogin(w, r, dto.LoginForm{}, nil)
}

func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	form := dto.LoginFormFromRequest(r)
	if errs := form.Validate(); len(errs) > 0 {
		c.renderLogin(w, r, form, errs)
		return
	}
	user, err := c.Auth.Authenticate(r.Context(), form.Username, form.Password)
	switch {
	case errors.Is(err, services.ErrUnknownUser):
		c.renderLogin(w, r, form, []string{"Incorrect username."})
		return
	case errors.Is(err, services.ErrBadPassword):
		c.renderLogin(w, r, form, []string{"Incorrect password."})
		return
	case err != nil:
		c.Log.Error().Err(err).Msg("login failed")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if err := c.Sessions.SetIdentity(w, r, user.Username); err != nil {
		c.Log.Error().Err(err).Msg("session bind failed")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	redirect(w, r, "/users/"+user.Username)
}

// Logout clears the session and goes home. Logging out while not logged in
// is the same redirect without a notice.
func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	if middleware.GetIdentity(r.Context()).Present() {
		c.Sessions.ClearAndFlash(w, r, "Logged out.")
	}
	redirect(w, r, "/")
}

func (c *AuthController) renderRegister(w http.ResponseWriter, r *http.Request, form dto.RegisterForm, errs []string) {
	ident, _ := middleware.GetIdentity(r.Context()).Username()
	c.View.Render(w, "register_form", view.Page{
		Title:   "Register",
		Ident:   ident,
		Notices: c.Sessions.PopFlashes(w, r),
		Errors:  errs,
		Data:    form,
	})
}

func (c *AuthController) renderLogin(w http.ResponseWriter, r *http.Request, form dto.LoginForm, errs []string) {
	ident, _ := middleware.GetIdentity(r.Context()).Username()
	c.View.Render(w, "login_form", view.Page{
		Title:   "Log in",
		Ident:   ident,
		Notices: c.Sessions.PopFlashes(w, r),
		Errors:  errs,
		Data:    form,
	})
}
