// Package dto carries the HTML form payloads and their field constraints,
// matching the column caps of the data model.
package dto

import (
	"net/http"
	"strings"
)

type RegisterForm struct {
	Username  string
	Password  string
	Email     string
	FirstName string
	LastName  string
}

func RegisterFormFromRequest(r *http.Request) RegisterForm {
	return RegisterForm{
		Username:  strings.TrimSpace(r.PostFormValue("username")),
		Password:  r.PostFormValue("password"),
		Email:     strings.TrimSpace(r.PostFormValue("email")),
		FirstName: strings.TrimSpace(r.PostFormValue("first_name")),
		LastName:  strings.TrimSpace(r.PostFormValue("last_name")),
	}
}

func (f RegisterForm) Validate() []string {
	var errs []string
	errs = appendRequired(errs, "Username", f.Username)
	errs = appendRequired(errs, "Password", f.Password)
	errs = appendRequired(errs, "E-mail", f.Email)
	errs = appendRequired(errs, "First Name", f.FirstName)
	errs = appendRequired(errs, "Last Name", f.LastName)
	errs = appendMax(errs, "Username", f.Username, 20)
	errs = appendMax(errs, "E-mail", f.Email, 50)
	errs = appendMax(errs, "First Name", f.FirstName, 30)
	errs = appendMax(errs, "Last Name", f.LastName, 30)
	return errs
}

type LoginForm struct {
	Username string
	Password string
}

func LoginFormFromRequest(r *http.Request) LoginForm {
	return LoginForm{
		Username: strings.TrimSpace(r.PostFormValue("username")),
		Password: r.PostFormValue("password"),
	}
}

func (f LoginForm) Validate() []string {
	var errs []string
	errs = appendRequired(errs, "Username", f.Username)
	errs = appendRequired(errs, "Password", f.Password)
	return errs
}

type FeedbackForm struct {
	Title   string
	Content string
}

func FeedbackFormFromRequest(r *http.Request) FeedbackForm {
	return FeedbackForm{
		Title:   strings.TrimSpace(r.PostFormValue("title")),
		Content: strings.TrimSpace(r.PostFormValue("content")),
	}
}

func (f FeedbackForm) Validate() []string {
	var errs []string
	errs = appendRequired(errs, "Title", f.Title)
	errs = appendRequired(errs, "Content", f.Content)
	errs = appendMax(errs, "Title", f.Title, 100)
	return errs
}

func appendRequired(errs []string, field, value string) []string {
	if value == "" {
		errs = append(errs, field+" is required.")
	}
	return errs
}

func appendMax(errs []string, field, value string, max int) []string {
	if len(value) > max {
		errs = append(errs, field+" is too long.")
	}
	return errs
}
