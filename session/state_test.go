// Copyright 2025 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package session_test

import (
	"testing"

	"github.com/blinklabs-io/velocity/session"
	"github.com/stretchr/testify/assert"
)

func TestStateMapsAreClosed(t *testing.T) {
	testDefs := []struct {
		name     string
		stateMap session.StateMap
	}{
		{name: "action", stateMap: session.ActionStateMap},
		{name: "recycler", stateMap: session.RecyclerStateMap},
		{name: "staking", stateMap: session.StakingStateMap},
	}
	for _, testDef := range testDefs {
		t.Run(testDef.name, func(t *testing.T) {
			assert.Contains(t, testDef.stateMap, session.StateInit)
			for state, entry := range testDef.stateMap {
				assert.NotEmpty(t, entry.Transitions, "state %s has no way out", state)
				seen := make(map[session.Event]bool)
				for _, transition := range entry.Transitions {
					assert.Contains(
						t,
						testDef.stateMap,
						transition.NewState,
						"transition %s from %s leads to an unknown state",
						transition.Event,
						state,
					)
					assert.False(t, seen[transition.Event], "duplicate event %s in state %s", transition.Event, state)
					seen[transition.Event] = true
				}
			}
		})
	}
}

func TestStateMapCopy(t *testing.T) {
	stateMap := session.ActionStateMap.Copy()
	delete(stateMap, session.StateInit)
	assert.Contains(t, session.ActionStateMap, session.StateInit)
}

func TestInvalidTransitionError(t *testing.T) {
	err := session.InvalidTransitionError{State: session.StateInit, Event: session.EventClaim}
	assert.Equal(t, "invalid state transition: claim not allowed in state INIT", err.Error())
	assert.Equal(t, "Event(99)", session.Event(99).String())
}
