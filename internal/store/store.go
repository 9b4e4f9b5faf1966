// Package store persists the local side of a game: the latest GameState, the
// local player's profile and the selected mode. Values are validated when
// read, and anything that fails validation is dropped instead of trusted.
package store

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"courtchess/internal/game"
	"courtchess/internal/protocol"
)

var ErrNotFound = errors.New("key not found")

// Backend is a byte-oriented key-value store.
type Backend interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Delete(key string) error
	Close() error
}

// Mode is how the two players share a game.
type Mode string

const (
	ModeLink    Mode = "link"
	ModeHotseat Mode = "hotseat"
)

func ParseMode(s string) (Mode, bool) {
	switch Mode(s) {
	case ModeLink, ModeHotseat:
		return Mode(s), true
	default:
		return "", false
	}
}

// Profile is the local player's identity.
type Profile struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// NewProfile assigns a fresh id to name.
func NewProfile(name string) (Profile, error) {
	p := Profile{Name: name, ID: uuid.NewString()}
	if err := p.validate(); err != nil {
		return Profile{}, err
	}
	return p, nil
}

func (p Profile) Player() game.Player { return game.Player{Name: p.Name, ID: p.ID} }

func (p Profile) validate() error {
	if err := protocol.ValidateName(p.Name); err != nil {
		return err
	}
	if _, err := uuid.Parse(p.ID); err != nil {
		return fmt.Errorf("profile id %q: %w", p.ID, err)
	}
	return nil
}

const (
	keyState   = "courtchess/state"
	keyProfile = "courtchess/profile"
	keyMode    = "courtchess/mode"
)

// Store layers typed, validated records over a Backend.
type Store struct {
	backend Backend
	log     *zap.Logger
}

func New(b Backend, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{backend: b, log: log}
}

func (s *Store) Close() error { return s.backend.Close() }

// State returns the saved game. ok is false when nothing valid is stored.
func (s *Store) State() (game.GameState, bool, error) {
	var st game.GameState
	ok, err := load(s, keyState, &st, protocol.ValidateStateShape, func() error {
		if err := protocol.ValidateState(&st); err != nil {
			return err
		}
		if err := protocol.Check(st); err != nil {
			return err
		}
		if !st.Verify() {
			return protocol.ErrChecksumMismatch
		}
		return nil
	})
	return st, ok, err
}

func (s *Store) SaveState(st game.GameState) error {
	if err := protocol.ValidateState(&st); err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	return save(s, keyState, st)
}

// ClearState forgets the saved game.
func (s *Store) ClearState() error {
	if err := s.backend.Delete(keyState); err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	return nil
}

func (s *Store) Profile() (Profile, bool, error) {
	var p Profile
	ok, err := load(s, keyProfile, &p, nil, func() error { return p.validate() })
	return p, ok, err
}

func (s *Store) SaveProfile(p Profile) error {
	if err := p.validate(); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return save(s, keyProfile, p)
}

// Mode returns the selected mode, ModeLink when none is saved.
func (s *Store) Mode() (Mode, error) {
	var m Mode
	ok, err := load(s, keyMode, &m, nil, func() error {
		if _, valid := ParseMode(string(m)); !valid {
			return fmt.Errorf("unknown mode %q", m)
		}
		return nil
	})
	if err != nil || !ok {
		return ModeLink, err
	}
	return m, nil
}

func (s *Store) SaveMode(m Mode) error {
	if _, ok := ParseMode(string(m)); !ok {
		return fmt.Errorf("save mode: unknown mode %q", m)
	}
	return save(s, keyMode, m)
}

// load reads key into dst. shape, when set, checks the raw JSON before it is
// decoded; validate checks the decoded value.
func load(s *Store, key string, dst any, shape func([]byte) error, validate func() error) (bool, error) {
	raw, err := s.backend.Get(key)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load %s: %w", key, err)
	}
	if shape != nil {
		if err := shape(raw); err != nil {
			return false, s.discard(key, err)
		}
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, s.discard(key, err)
	}
	if err := validate(); err != nil {
		return false, s.discard(key, err)
	}
	return true, nil
}

// discard drops a stored value that can no longer be trusted.
func (s *Store) discard(key string, cause error) error {
	s.log.Warn("discarding invalid stored value", zap.String("key", key), zap.Error(cause))
	if err := s.backend.Delete(key); err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("discard %s: %w", key, err)
	}
	return nil
}

func save(s *Store, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	if err := s.backend.Set(key, raw); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}
