package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

// CookieName identifies the session cookie.
const CookieName = "muse-user-session-id"

const (
	keyPrefix = "session:"
	maxAge    = 31 * 24 * time.Hour
)

// Flash is a one-shot categorized message shown on the next rendered page.
type Flash struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// Data is the per-visitor state carried between requests.
type Data struct {
	SignedIn     bool    `json:"signed_in"`
	Username     string  `json:"username"`
	Flashes      []Flash `json:"flashes,omitempty"`
	ReturnTo     string  `json:"return_to,omitempty"`
	RedirectPath string  `json:"redirect_path,omitempty"`
}

// Store persists sessions in Badger, keyed by the cookie's session id.
// Entries expire with the cookie.
type Store struct {
	db *badger.DB
}

// NewStore opens (or creates) the session database at path. An empty path
// uses an in-memory database, which tests rely on.
func NewStore(path string) (*Store, error) {
	var opts badger.Options
	if path == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(path)
	}
	opts = opts.WithLogger(nil).WithNumVersionsToKeep(1)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("opening session store: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Session is one visitor's state bound to its store.
type Session struct {
	ID string
	Data

	store *Store
}

// Get returns the session for the request's cookie, or a fresh one when the
// cookie is missing or its id is unknown or expired.
func (s *Store) Get(r *http.Request) (*Session, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return s.fresh(), nil
	}

	var data Data
	err = s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyPrefix + cookie.Value))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &data)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return s.fresh(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading session: %w", err)
	}

	return &Session{ID: cookie.Value, Data: data, store: s}, nil
}

func (s *Store) fresh() *Session {
	return &Session{ID: uuid.NewString(), store: s}
}

// Save persists the session and (re)issues its cookie.
func (sess *Session) Save(w http.ResponseWriter) error {
	data, err := json.Marshal(sess.Data)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}

	err = sess.store.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry([]byte(keyPrefix+sess.ID), data).WithTTL(maxAge)
		return txn.SetEntry(entry)
	})
	if err != nil {
		return fmt.Errorf("saving session: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    sess.ID,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
	})
	return nil
}

// AddFlash queues a message for the next rendered page.
func (sess *Session) AddFlash(kind, message string) {
	sess.Flashes = append(sess.Flashes, Flash{Kind: kind, Message: message})
}

// PopFlashes drains the queued messages.
func (sess *Session) PopFlashes() []Flash {
	flashes := sess.Flashes
	sess.Flashes = nil
	return flashes
}

// SignIn marks the session as authenticated for username.
func (sess *Session) SignIn(username string) {
	sess.SignedIn = true
	sess.Username = username
}

// SignOut clears the authenticated identity but keeps the session alive for
// flash delivery.
func (sess *Session) SignOut() {
	sess.SignedIn = false
	sess.Username = ""
}
