// Copyright 2025 Poiesic Systems
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


package storage

import (
	"github.com/poiesic/persearch/core"
)

// MarshalSessionState serializes a SessionState to bytes.
func MarshalSessionState(state *core.SessionState) []byte {
	buf := make([]byte, core.SessionStateMUS.Size(*state))
	core.SessionStateMUS.Marshal(*state, buf)
	return buf
}

// UnmarshalSessionState deserializes a SessionState from bytes.
func UnmarshalSessionState(data []byte) (*core.SessionState, error) {
	state, _, err := core.SessionStateMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &state, nil
}

// MarshalUserProfile serializes a UserProfile to bytes.
func MarshalUserProfile(profile *core.UserProfile) []byte {
	buf := make([]byte, core.UserProfileMUS.Size(*profile))
	core.UserProfileMUS.Marshal(*profile, buf)
	return buf
}

// UnmarshalUserProfile deserializes a UserProfile from bytes.
func UnmarshalUserProfile(data []byte) (*core.UserProfile, error) {
	profile, _, err := core.UserProfileMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}
