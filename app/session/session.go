// Package session binds a browser session to at most one authenticated
// username. The browser holds a signed cookie carrying an opaque session id;
// the record behind it lives in a Store.
package session

import (
	"net/http"
	"time"

	"feedback-board/app/authz"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const defaultTTL = 24 * time.Hour

type Config struct {
	CookieName string
	Secret     string
	TTL        time.Duration
	Secure     bool
	Logger     zerolog.Logger
}

type Manager struct {
	store  Store
	codec  cookieCodec
	name   string
	ttl    time.Duration
	secure bool
	log    zerolog.Logger
}

func NewManager(store Store, cfg Config) *Manager {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Manager{
		store:  store,
		codec:  cookieCodec{secret: []byte(cfg.Secret), ttl: ttl},
		name:   cfg.CookieName,
		ttl:    ttl,
		secure: cfg.Secure,
		log:    cfg.Logger,
	}
}

// load resolves the caller's session record, if any. A missing, invalid or
// expired cookie all read as "no session".
func (m *Manager) load(r *http.Request) (string, *Record) {
	cookie, err := r.Cookie(m.name)
	if err != nil {
		return "", nil
	}
	id, ok := m.codec.decode(cookie.Value)
	if !ok {
		return "", nil
	}
	rec, err := m.store.Get(r.Context(), id)
	if err != nil {
		m.log.Error().Err(err).Msg("session load failed")
		return "", nil
	}
	if rec == nil {
		return "", nil
	}
	return id, rec
}

// Identity returns the identity the session has authenticated as, or
// anonymous. Session absence is an ordinary result, never an error.
func (m *Manager) Identity(r *http.Request) authz.Identity {
	_, rec := m.load(r)
	if rec == nil || rec.Username == "" {
		return authz.Anonymous()
	}
	return authz.Authenticated(rec.Username)
}

// SetIdentity binds the current session to username, creating the session if
// the caller has none. Rebinding the same username is an idempotent self-loop;
// switching users goes through Clear first.
func (m *Manager) SetIdentity(w http.ResponseWriter, r *http.Request, username string) error {
	id, rec := m.load(r)
	if rec == nil {
		id = uuid.NewString()
		rec = &Record{}
	}
	rec.Username = username
	if err := m.store.Save(r.Context(), id, rec, m.ttl); err != nil {
		return err
	}
	m.writeCookie(w, id)
	return nil
}

// Clear unbinds the session. Calling it with no session bound is a no-op.
func (m *Manager) Clear(w http.ResponseWriter, r *http.Request) {
	m.dropRecord(r)
	http.SetCookie(w, &http.Cookie{
		Name:     m.name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearAndFlash unbinds the session and queues msg for the page after the
// redirect, in one step. The old record is dropped and a fresh anonymous one
// takes its place, so the response carries a single Set-Cookie for the
// session rather than a deletion followed by a replacement.
func (m *Manager) ClearAndFlash(w http.ResponseWriter, r *http.Request, msg string) {
	m.dropRecord(r)
	id := uuid.NewString()
	rec := &Record{Flashes: []string{msg}}
	if err := m.store.Save(r.Context(), id, rec, m.ttl); err != nil {
		m.log.Error().Err(err).Msg("session save failed")
	}
	m.writeCookie(w, id)
}

// Flash queues a notice for the next rendered page. An anonymous session is
// created if needed so notices survive the redirect that follows.
func (m *Manager) Flash(w http.ResponseWriter, r *http.Request, msg string) {
	id, rec := m.load(r)
	if rec == nil {
		id = uuid.NewString()
		rec = &Record{}
		m.writeCookie(w, id)
	}
	rec.Flashes = append(rec.Flashes, msg)
	if err := m.store.Save(r.Context(), id, rec, m.ttl); err != nil {
		m.log.Error().Err(err).Msg("session save failed")
	}
}

// PopFlashes drains and returns any queued notices.
func (m *Manager) PopFlashes(w http.ResponseWriter, r *http.Request) []string {
	id, rec := m.load(r)
	if rec == nil || len(rec.Flashes) == 0 {
		return nil
	}
	flashes := rec.Flashes
	rec.Flashes = nil
	if err := m.store.Save(r.Context(), id, rec, m.ttl); err != nil {
		m.log.Error().Err(err).Msg("session save failed")
	}
	return flashes
}

func (m *Manager) dropRecord(r *http.Request) {
	id, rec := m.load(r)
	if rec == nil {
		return
	}
	if err := m.store.Delete(r.Context(), id); err != nil {
		m.log.Error().Err(err).Msg("session delete failed")
	}
}

func (m *Manager) writeCookie(w http.ResponseWriter, sessionID string) {
	value, err := m.codec.encode(sessionID)
	if err != nil {
		m.log.Error().Err(err).Msg("session cookie encode failed")
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     m.name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(m.ttl / time.Second),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
