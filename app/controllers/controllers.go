// Package controllers maps the HTTP surface onto the services. Every failure
// here resolves to a redirect plus a flash notice; nothing is fatal.
package controllers

import (
	"errors"
	"net/http"

	"feedback-board/app/authz"
	"feedback-board/app/middleware"
	"feedback-board/app/session"
)

const (
	noticeUnauthorized    = "Unauthorized action."
	noticePleaseLoginView = "Please login to view page."
	noticePleaseLoginAct  = "Please login to complete action."
)

func redirect(w http.ResponseWriter, r *http.Request, to string) {
	http.Redirect(w, r, to, http.StatusFound)
}

// denyOwner turns a guard error into the user-facing outcome: no session
// flashes the route's login notice and redirects to /login; an ownership
// mismatch flashes "Unauthorized action." and redirects to the denied
// caller's own profile, leaking nothing about the attempted target.
func denyOwner(sessions *session.Manager, w http.ResponseWriter, r *http.Request, err error, loginNotice string) {
	switch {
	case errors.Is(err, authz.ErrNoSession):
		sessions.Flash(w, r, loginNotice)
		redirect(w, r, "/login")
	case errors.Is(err, authz.ErrUnauthorized):
		sessions.Flash(w, r, noticeUnauthorized)
		own, _ := middleware.GetIdentity(r.Context()).Username()
		redirect(w, r, "/users/"+own)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
