// Package auth keeps gardener sessions in Redis and guards the API with a
// session cookie. Generate production keys with `openssl rand -base64 32`.
package auth

import (
	"bytes"
	"context"
	"encoding/base32"
	"encoding/gob"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"github.com/redis/go-redis/v9"
)

const (
	defaultSessionKeyPrefix = "gardenhub:session:"
	defaultSessionMaxAge    = 7 * 24 * time.Hour
)

// SessionOptions configures a RedisStore.
type SessionOptions struct {
	// AuthKey signs the cookie (32 or 64 bytes). EncryptionKey encrypts it
	// (16, 24 or 32 bytes).
	AuthKey       []byte
	EncryptionKey []byte
	// Secure restricts the cookie to HTTPS.
	Secure bool
	// MaxAge defaults to seven days.
	MaxAge time.Duration
	// KeyPrefix defaults to "gardenhub:session:".
	KeyPrefix string
}

// RedisStore is a sessions.Store that keeps session values in Redis under
// KeyPrefix+id with a TTL of MaxAge. The cookie only carries the signed,
// encrypted session id. Values are gob-encoded.
type RedisStore struct {
	client    *redis.Client
	codecs    []securecookie.Codec
	options   sessions.Options
	keyPrefix string
}

// NewSessionStore returns a RedisStore using client.
func NewSessionStore(client *redis.Client, opts SessionOptions) *RedisStore {
	if opts.MaxAge <= 0 {
		opts.MaxAge = defaultSessionMaxAge
	}
	if opts.KeyPrefix == "" {
		opts.KeyPrefix = defaultSessionKeyPrefix
	}
	return &RedisStore{
		client:    client,
		codecs:    securecookie.CodecsFromPairs(opts.AuthKey, opts.EncryptionKey),
		keyPrefix: opts.KeyPrefix,
		options: sessions.Options{
			Path:     "/",
			MaxAge:   int(opts.MaxAge / time.Second),
			HttpOnly: true,
			Secure:   opts.Secure,
			SameSite: http.SameSiteLaxMode,
		},
	}
}

func (s *RedisStore) Get(r *http.Request, name string) (*sessions.Session, error) {
	return sessions.GetRegistry(r).Get(s, name)
}

// New returns the stored session named by the request cookie. A missing,
// tampered or expired cookie yields a fresh session without an error.
func (s *RedisStore) New(r *http.Request, name string) (*sessions.Session, error) {
	session := sessions.NewSession(s, name)
	opts := s.options
	session.Options = &opts
	session.IsNew = true

	id, ok := s.sessionID(r, name)
	if !ok {
		return session, nil
	}
	values, err := s.load(r.Context(), id)
	if err != nil {
		return session, nil
	}
	session.ID = id
	session.Values = values
	session.IsNew = false
	return session, nil
}

// Save writes the session to Redis and sets the cookie. A negative MaxAge
// deletes both.
func (s *RedisStore) Save(r *http.Request, w http.ResponseWriter, session *sessions.Session) error {
	if session.Options.MaxAge < 0 {
		if session.ID != "" {
			if err := s.client.Del(r.Context(), s.key(session.ID)).Err(); err != nil {
				return fmt.Errorf("delete session: %w", err)
			}
		}
		http.SetCookie(w, sessions.NewCookie(session.Name(), "", session.Options))
		return nil
	}

	if session.ID == "" {
		session.ID = newSessionID()
	}
	ttl := time.Duration(session.Options.MaxAge) * time.Second
	if err := s.store(r.Context(), session.ID, session.Values, ttl); err != nil {
		return err
	}

	encoded, err := securecookie.EncodeMulti(session.Name(), session.ID, s.codecs...)
	if err != nil {
		return fmt.Errorf("encode session cookie: %w", err)
	}
	http.SetCookie(w, sessions.NewCookie(session.Name(), encoded, session.Options))
	return nil
}

func (s *RedisStore) sessionID(r *http.Request, name string) (string, bool) {
	c, err := r.Cookie(name)
	if err != nil {
		return "", false
	}
	var id string
	if err := securecookie.DecodeMulti(name, c.Value, &id, s.codecs...); err != nil {
		return "", false
	}
	return id, id != ""
}

func (s *RedisStore) key(id string) string { return s.keyPrefix + id }

func (s *RedisStore) store(ctx context.Context, id string, values map[any]any, ttl time.Duration) error {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(values); err != nil {
		return fmt.Errorf("encode session values: %w", err)
	}
	if err := s.client.Set(ctx, s.key(id), buf.Bytes(), ttl).Err(); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

var errSessionNotFound = errors.New("session not found")

func (s *RedisStore) load(ctx context.Context, id string) (map[any]any, error) {
	data, err := s.client.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, errSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	values := make(map[any]any)
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&values); err != nil {
		return nil, fmt.Errorf("decode session values: %w", err)
	}
	return values, nil
}

func newSessionID() string {
	return strings.TrimRight(base32.StdEncoding.EncodeToString(securecookie.GenerateRandomKey(32)), "=")
}
