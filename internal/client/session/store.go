// Package session keeps the client-side authentication state of the console.
//
// Two slots are persisted independently in the local key/value store: the
// bearer token ("access_token") and the identity of the logged-in user
// ("user_info", JSON). The identity is also held in memory; the token is
// re-read and re-decoded on every expiry check.
//
// Whenever the session is torn down (logout, detected expiry, 401 from the
// API) the Store notifies its subscribers so that navigation can react
// without the transport layer knowing about it.
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophadmin/internal/client/repositories/kv"
	"github.com/dmitrijs2005/gophadmin/internal/client/token"
	"github.com/dmitrijs2005/gophadmin/internal/common"
	"github.com/dmitrijs2005/gophadmin/internal/dbx"
	"github.com/dmitrijs2005/gophadmin/internal/logging"
)

// Identity describes the logged-in user.
type Identity struct {
	Name string `json:"name"`
	Role string `json:"role"`

	// Placeholder is set for an identity synthesized from a bare token.
	Placeholder bool `json:"-"`
}

// PlaceholderIdentity is used when a token is restored without a cached
// identity and no profile loader is configured.
var PlaceholderIdentity = Identity{Name: "default user", Role: "user", Placeholder: true}

// Reason tells subscribers why a session ended.
type Reason string

const (
	ReasonLogout       Reason = "logout"
	ReasonExpired      Reason = "expired"
	ReasonUnauthorized Reason = "unauthorized"
)

// Event is delivered to subscribers after the session has been cleared.
type Event struct {
	Reason Reason
}

// ProfileLoader fetches the real identity of the token holder.
type ProfileLoader func(ctx context.Context) (Identity, error)

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the wall clock used for expiry checks.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLogger sets the logger. The default discards output.
func WithLogger(l logging.Logger) Option {
	return func(s *Store) { s.log = l }
}

// WithProfileLoader makes Init resolve a token without a cached identity
// through l instead of synthesizing PlaceholderIdentity.
func WithProfileLoader(l ProfileLoader) Option {
	return func(s *Store) { s.loadProfile = l }
}

// Store is the session context shared by the HTTP client and the router.
// It is safe for concurrent use.
type Store struct {
	db          *sql.DB
	repo        kv.Repository
	now         func() time.Time
	log         logging.Logger
	loadProfile ProfileLoader

	mu        sync.RWMutex
	identity  *Identity
	listeners map[int]func(context.Context, Event)
	nextID    int
}

// NewStore returns a Store persisting into the kv table of db.
func NewStore(db *sql.DB, opts ...Option) *Store {
	s := &Store{
		db:        db,
		repo:      kv.NewSQLiteRepository(db),
		now:       time.Now,
		log:       logging.Nop(),
		listeners: make(map[int]func(context.Context, Event)),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Init restores the session at process start.
//
// A cached identity is restored; an unreadable one is discarded together
// with the token. A live token without identity is resolved through the
// profile loader, or gets PlaceholderIdentity when none is configured.
// Finally an expired session is cleared, which notifies subscribers.
func (s *Store) Init(ctx context.Context) error {
	raw, found, err := s.repo.Get(ctx, common.UserInfoKey)
	if err != nil {
		return fmt.Errorf("restore identity: %w", err)
	}

	if found {
		var id Identity
		if err := json.Unmarshal([]byte(raw), &id); err != nil {
			s.log.Warn(ctx, "discarding unreadable identity", "error", err)
			if err := s.wipe(ctx); err != nil {
				return err
			}
		} else {
			s.setMemIdentity(&id)
		}
	}

	if s.IsExpired(ctx) {
		s.log.Info(ctx, "stored session is expired")
		return s.Clear(ctx, ReasonExpired)
	}

	if !s.IsLoggedIn() {
		s.resolveIdentity(ctx)
	}
	return nil
}

func (s *Store) resolveIdentity(ctx context.Context) {
	if s.loadProfile == nil {
		s.log.Warn(ctx, "token restored without identity, using placeholder")
		id := PlaceholderIdentity
		s.setMemIdentity(&id)
		return
	}

	id, err := s.loadProfile(ctx)
	if err != nil {
		s.log.Warn(ctx, "profile lookup failed, staying logged out", "error", err)
		return
	}
	if err := s.SetIdentity(ctx, id); err != nil {
		s.log.Warn(ctx, "caching profile failed", "error", err)
	}
}

// Start persists a freshly issued token together with its identity.
func (s *Store) Start(ctx context.Context, tok string, id Identity) error {
	if tok == "" {
		return fmt.Errorf("empty token: %w", common.ErrInvalidInput)
	}
	blob, err := json.Marshal(id)
	if err != nil {
		return err
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := kv.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, common.AccessTokenKey, tok); err != nil {
			return err
		}
		return repo.Set(ctx, common.UserInfoKey, string(blob))
	})
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}

	s.setMemIdentity(&id)
	return nil
}

// SetIdentity stores id in memory and persists it.
func (s *Store) SetIdentity(ctx context.Context, id Identity) error {
	blob, err := json.Marshal(id)
	if err != nil {
		return err
	}
	if err := s.repo.Set(ctx, common.UserInfoKey, string(blob)); err != nil {
		return err
	}
	s.setMemIdentity(&id)
	return nil
}

// SetToken persists the bearer token.
func (s *Store) SetToken(ctx context.Context, tok string) error {
	if tok == "" {
		return fmt.Errorf("empty token: %w", common.ErrInvalidInput)
	}
	return s.repo.Set(ctx, common.AccessTokenKey, tok)
}

// Token returns the persisted bearer token, or "" when there is none.
func (s *Store) Token(ctx context.Context) (string, error) {
	tok, _, err := s.repo.Get(ctx, common.AccessTokenKey)
	return tok, err
}

// Clear ends the session: the in-memory identity and both persisted slots
// are removed, then subscribers are notified. Clearing an empty session is
// not an error.
func (s *Store) Clear(ctx context.Context, reason Reason) error {
	err := s.wipe(ctx)
	s.emit(ctx, Event{Reason: reason})
	return err
}

func (s *Store) wipe(ctx context.Context) error {
	s.setMemIdentity(nil)

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return kv.NewSQLiteRepository(tx).Delete(ctx, common.AccessTokenKey, common.UserInfoKey)
	})
	if err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// IsExpired reports whether requests should be treated as unauthenticated.
// A missing token, an undecodable token, a token whose expiry is at or
// before now and a failing storage read all count as expired.
func (s *Store) IsExpired(ctx context.Context) bool {
	_, ok := s.ActiveToken(ctx)
	return !ok
}

// ActiveToken reads the persisted token once and returns it together with
// whether it is still live. ok is false in every case IsExpired reports true.
func (s *Store) ActiveToken(ctx context.Context) (tok string, ok bool) {
	tok, found, err := s.repo.Get(ctx, common.AccessTokenKey)
	if err != nil {
		s.log.Warn(ctx, "reading token failed", "error", err)
		return "", false
	}
	if !found || token.Expired(tok, s.now()) {
		return "", false
	}
	return tok, true
}

// ExpiresAt returns the claimed expiry of the persisted token.
func (s *Store) ExpiresAt(ctx context.Context) (time.Time, bool) {
	tok, found, err := s.repo.Get(ctx, common.AccessTokenKey)
	if err != nil || !found {
		return time.Time{}, false
	}
	return token.DecodeExpiry(tok)
}

// IsLoggedIn reports whether an identity is present.
func (s *Store) IsLoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity != nil
}

// IsAuthenticated reports a present identity backed by a live token.
func (s *Store) IsAuthenticated(ctx context.Context) bool {
	return s.IsLoggedIn() && !s.IsExpired(ctx)
}

// Identity returns the current identity.
func (s *Store) Identity() (Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.identity == nil {
		return Identity{}, false
	}
	return *s.identity, true
}

// Role returns the role of the current identity or "".
func (s *Store) Role() string {
	id, _ := s.Identity()
	return id.Role
}

// Subscribe registers fn for session-ended events. The returned func
// removes the subscription.
func (s *Store) Subscribe(fn func(context.Context, Event)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

func (s *Store) emit(ctx context.Context, ev Event) {
	s.mu.RLock()
	fns := make([]func(context.Context, Event), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.mu.RUnlock()

	for _, fn := range fns {
		fn(ctx, ev)
	}
}

func (s *Store) setMemIdentity(id *Identity) {
	s.mu.Lock()
	s.identity = id
	s.mu.Unlock()
}
