package router

import (
	"net/http"

	"feedback-board/app/controllers"
	"feedback-board/app/middleware"
	"feedback-board/app/session"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

func New(authCtrl *controllers.AuthController, userCtrl *controllers.UserController, fbCtrl *controllers.FeedbackController, sessions *session.Manager, log zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Logging(log))
	r.Use(middleware.WithIdentity(sessions))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Get("/", authCtrl.Home)
	r.Get("/register", authCtrl.RegisterForm)
	r.Post("/register", authCtrl.Register)
	r.Get("/login", authCtrl.LoginForm)
	r.Post("/login", authCtrl.Login)
	r.Get("/logout", authCtrl.Logout)

	r.Get("/users/{username}", userCtrl.Show)
	r.Post("/users/{username}/delete", userCtrl.Delete)
	r.Get("/users/{username}/feedback/add", fbCtrl.AddForm)
	r.Post("/users/{username}/feedback/add", fbCtrl.Add)

	r.Get("/feedback/{id}", fbCtrl.Show)
	r.Get("/feedback/{id}/update", fbCtrl.UpdateForm)
	r.Post("/feedback/{id}/update", fbCtrl.Update)
	r.Post("/feedback/{id}/delete", fbCtrl.Delete)

	return r
}
