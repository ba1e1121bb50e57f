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
	"errors"
	"fmt"
	"strings"
)

// State is the transaction lifecycle state of a session.
type State string

const (
	StateNone       State = "none"
	StateStarting   State = "starting"
	StateInProgress State = "in_progress"
	StateCommitting State = "committing"
	StateCommitted  State = "committed"
	StateAborting   State = "aborting"
	StateAborted    State = "aborted"
)

var (
	// ErrInvalidState is returned when a string does not name a state.
	ErrInvalidState = errors.New("txn: invalid state")
	// ErrInvalidTransition is returned for a move the state machine forbids.
	ErrInvalidTransition = errors.New("txn: invalid transition")
)

// transitions lists, for every state, the states it may move to.
var transitions = map[State][]State{
	StateNone:       {StateStarting},
	StateStarting:   {StateInProgress, StateCommitting, StateAborting},
	StateInProgress: {StateCommitting, StateAborting},
	StateCommitting: {StateCommitted, StateCommitting},
	StateCommitted:  {StateCommitting, StateStarting, StateNone},
	StateAborting:   {StateAborted},
	StateAborted:    {StateStarting, StateNone},
}

// ParseState resolves s (case-insensitive, '-' accepted for '_') to a State.
func ParseState(s string) (State, error) {
	st := State(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_"))
	if _, ok := transitions[st]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidState, s)
	}
	return st, nil
}

// String returns the state name.
func (s State) String() string {
	return string(s)
}

// Active reports whether a transaction is starting, in progress, committing
// or aborting.
func (s State) Active() bool {
	switch s {
	case StateStarting, StateInProgress, StateCommitting, StateAborting:
		return true
	default:
		return false
	}
}

// CanTransition reports whether the state machine allows from -> to.
func CanTransition(from, to State) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
