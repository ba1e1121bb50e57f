/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package txn

import (
	"fmt"
	"log/slog"
	"sync"

	"dirpx.dev/dresp/apis"
	"github.com/google/uuid"
)

var (
	_ apis.Session     = (*Session)(nil)
	_ apis.PinReporter = (*Session)(nil)
)

// Session is a logical session: an id, a transaction state and an optional
// pinned server. All methods are safe for concurrent use.
type Session struct {
	mu     sync.Mutex
	id     uuid.UUID
	state  State
	pinned apis.Server
	policy UnpinPolicy
	logger *slog.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithID sets the session id instead of generating one.
func WithID(id uuid.UUID) Option {
	return func(s *Session) { s.id = id }
}

// WithUnpinPolicy sets the policy UnpinMaybe applies. Default UnpinAlways.
func WithUnpinPolicy(p UnpinPolicy) Option {
	return func(s *Session) { s.policy = p }
}

// WithState sets the initial state, bypassing the transition table.
// Intended for restoring sessions and for tests.
func WithState(st State) Option {
	return func(s *Session) { s.state = st }
}

// WithLogger sets the logger used for pin changes. Nil selects slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		if l == nil {
			l = slog.Default()
		}
		s.logger = l
	}
}

// New returns a session in StateNone with nothing pinned.
func New(opts ...Option) *Session {
	s := &Session{
		id:     uuid.New(),
		state:  StateNone,
		policy: UnpinAlways,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ID returns the session id.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// State returns the current transaction state. A nil session is in
// StateNone.
func (s *Session) State() State {
	if s == nil {
		return StateNone
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Transition moves the session to st if the state machine allows it.
func (s *Session) Transition(st State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !CanTransition(s.state, st) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s.state, st)
	}
	s.state = st
	return nil
}

// InTransaction implements apis.Session.
func (s *Session) InTransaction() bool {
	return s.State().Active()
}

// CommittingTransaction implements apis.Session.
func (s *Session) CommittingTransaction() bool {
	return s.State() == StateCommitting
}

// AbortingTransaction implements apis.Session.
func (s *Session) AbortingTransaction() bool {
	return s.State() == StateAborting
}

// Pin sticks the session to server.
func (s *Session) Pin(server apis.Server) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pinned = server
}

// PinnedServer returns the pinned server, if any.
func (s *Session) PinnedServer() (apis.Server, bool) {
	if s == nil {
		return nil, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pinned, s.pinned != nil
}

// Pinned implements apis.PinReporter.
func (s *Session) Pinned() bool {
	_, ok := s.PinnedServer()
	return ok
}

// UnpinMaybe implements apis.Session. It clears the pin when one is held and
// the session's policy says err mandates it.
func (s *Session) UnpinMaybe(err error) {
	if s == nil || err == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pinned == nil || !s.policy.mandates(s.state, err) {
		return
	}
	s.pinned = nil
	s.logger.Debug("session unpinned",
		slog.String("session", s.id.String()),
		slog.String("state", string(s.state)),
		slog.String("policy", string(s.policy)),
	)
}
