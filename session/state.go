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

package session

import (
	"fmt"
	"sync"
)

type State struct {
	Id   uint
	Name string
}

func NewState(id uint, name string) State {
	return State{
		Id:   id,
		Name: name,
	}
}

func (s State) String() string {
	return s.Name
}

var (
	StateInit                = NewState(1, "INIT")
	StateChecking            = NewState(2, "CHECKING")
	StateReady               = NewState(3, "READY")
	StateCrafting            = NewState(4, "CRAFTING")
	StateCraftingPending     = NewState(5, "CRAFTING_PENDING")
	StateClaiming            = NewState(6, "CLAIMING")
	StateClaimPending        = NewState(7, "CLAIM_PENDING")
	StateUpgrading           = NewState(8, "UPGRADING")
	StateUpgradePending      = NewState(9, "UPGRADE_PENDING")
	StateRecycling           = NewState(10, "RECYCLING")
	StateRecyclePending      = NewState(11, "RECYCLE_PENDING")
	StateStaked              = NewState(12, "STAKED")
	StateUnstaked            = NewState(13, "UNSTAKED")
	StateRegistering         = NewState(14, "REGISTERING")
	StateRegistrationPending = NewState(15, "REGISTRATION_PENDING")
)

// Event drives a session from one state to the next
type Event uint

const (
	EventCheck Event = iota + 1
	EventReady
	EventStaked
	EventUnstaked
	EventCraft
	EventUpgrade
	EventRecycle
	EventRegister
	EventClaim
	EventSubmitted
	EventFail
)

var eventNames = map[Event]string{
	EventCheck:     "check",
	EventReady:     "ready",
	EventStaked:    "staked",
	EventUnstaked:  "unstaked",
	EventCraft:     "craft",
	EventUpgrade:   "upgrade",
	EventRecycle:   "recycle",
	EventRegister:  "register",
	EventClaim:     "claim",
	EventSubmitted: "submitted",
	EventFail:      "fail",
}

func (e Event) String() string {
	if name, ok := eventNames[e]; ok {
		return name
	}
	return fmt.Sprintf("Event(%d)", uint(e))
}

type StateTransition struct {
	Event    Event
	NewState State
}

type StateMapEntry struct {
	Transitions []StateTransition
}

type StateMap map[State]StateMapEntry

// Copy returns a copy of the state map
func (s StateMap) Copy() StateMap {
	ret := StateMap{}
	for k, v := range s {
		ret[k] = v
	}
	return ret
}

// InvalidTransitionError is returned when an event is not allowed in the current state
type InvalidTransitionError struct {
	State State
	Event Event
}

func (e InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid state transition: %s not allowed in state %s", e.Event, e.State)
}

var checkTransitions = []StateTransition{
	{Event: EventCheck, NewState: StateChecking},
}

// ActionStateMap covers the craft, mint, upgrade and compile sessions
var ActionStateMap = StateMap{
	StateInit: StateMapEntry{
		Transitions: checkTransitions,
	},
	StateChecking: StateMapEntry{
		Transitions: []StateTransition{
			{Event: EventReady, NewState: StateReady},
			{Event: EventFail, NewState: StateInit},
		},
	},
	StateReady: StateMapEntry{
		Transitions: []StateTransition{
			{Event: EventCheck, NewState: StateChecking},
			{Event: EventCraft, NewState: StateCrafting},
			{Event: EventUpgrade, NewState: StateUpgrading},
			{Event: EventClaim, NewState: StateClaiming},
		},
	},
	StateCrafting: StateMapEntry{
		Transitions: []StateTransition{
			{Event: EventSubmitted, NewState: StateCraftingPending},
			{Event: EventFail, NewState: StateReady},
		},
	},
	StateCraftingPending: StateMapEntry{
		Transitions: []StateTransition{
			{Event: EventCheck, NewState: StateChecking},
			{Event: EventCraft, NewState: StateCrafting},
		},
	},
	StateUpgrading: StateMapEntry{
		Transitions: []StateTransition{
			{Event: EventSubmitted, NewState: StateUpgradePending},
			{Event: EventFail, NewState: StateReady},
		},
	},
	StateUpgradePending: StateMapEntry{
		Transitions: []StateTransition{
			{Event: EventCheck, NewState: StateChecking},
			{Event: EventUpgrade, NewState: StateUpgrading},
		},
	},
	StateClaiming: StateMapEntry{
		Transitions: []StateTransition{
			{Event: EventSubmitted, NewState: StateClaimPending},
			{Event: EventFail, NewState: StateReady},
		},
	},
	StateClaimPending: StateMapEntry{
		Transitions: checkTransitions,
	},
}

var RecyclerStateMap = StateMap{
	StateInit: StateMapEntry{
		Transitions: checkTransitions,
	},
	StateChecking: StateMapEntry{
		Transitions: []StateTransition{
			{Event: EventReady, NewState: StateReady},
			{Event: EventFail, NewState: StateInit},
		},
	},
	StateReady: StateMapEntry{
		Transitions: []StateTransition{
			{Event: EventCheck, NewState: StateChecking},
			{Event: EventRecycle, NewState: StateRecycling},
		},
	},
	StateRecycling: StateMapEntry{
		Transitions: []StateTransition{
			{Event: EventSubmitted, NewState: StateRecyclePending},
			{Event: EventFail, NewState: StateReady},
		},
	},
	StateRecyclePending: StateMapEntry{
		Transitions: []StateTransition{
			{Event: EventCheck, NewState: StateChecking},
			{Event: EventRecycle, NewState: StateRecycling},
		},
	},
}

var StakingStateMap = StateMap{
	StateInit: StateMapEntry{
		Transitions: checkTransitions,
	},
	StateChecking: StateMapEntry{
		Transitions: []StateTransition{
			{Event: EventStaked, NewState: StateStaked},
			{Event: EventUnstaked, NewState: StateUnstaked},
			{Event: EventFail, NewState: StateInit},
		},
	},
	StateUnstaked: StateMapEntry{
		Transitions: []StateTransition{
			{Event: EventCheck, NewState: StateChecking},
			{Event: EventRegister, NewState: StateRegistering},
		},
	},
	StateRegistering: StateMapEntry{
		Transitions: []StateTransition{
			{Event: EventSubmitted, NewState: StateRegistrationPending},
			{Event: EventFail, NewState: StateUnstaked},
		},
	},
	StateRegistrationPending: StateMapEntry{
		Transitions: checkTransitions,
	},
	StateStaked: StateMapEntry{
		Transitions: []StateTransition{
			{Event: EventCheck, NewState: StateChecking},
			{Event: EventClaim, NewState: StateClaiming},
		},
	},
	StateClaiming: StateMapEntry{
		Transitions: []StateTransition{
			{Event: EventSubmitted, NewState: StateClaimPending},
			{Event: EventFail, NewState: StateStaked},
		},
	},
	StateClaimPending: StateMapEntry{
		Transitions: checkTransitions,
	},
}

// stateMachine tracks the current state of a session against its state map
type stateMachine struct {
	mutex    sync.Mutex
	stateMap StateMap
	current  State
}

func newStateMachine(stateMap StateMap) *stateMachine {
	return &stateMachine{
		stateMap: stateMap.Copy(),
		current:  StateInit,
	}
}

func (m *stateMachine) State() State {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.current
}

// Fire applies the event and returns the new state
func (m *stateMachine) Fire(event Event) (State, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	entry, ok := m.stateMap[m.current]
	if ok {
		for _, transition := range entry.Transitions {
			if transition.Event == event {
				m.current = transition.NewState
				return m.current, nil
			}
		}
	}
	return m.current, InvalidTransitionError{State: m.current, Event: event}
}
