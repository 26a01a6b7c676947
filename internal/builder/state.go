// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package builder

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"landingkit/internal/models"
)

// State is the save state shown next to the editor.
type State int

const (
	StateLoading State = iota
	StateSaved
	StateDirty
	StateSaving
	StateError
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateSaved:
		return "saved"
	case StateDirty:
		return "dirty"
	case StateSaving:
		return "saving"
	case StateError:
		return "error"
	case StateClosed:
		return "closed"
	}
	return "unknown"
}

// MarshalJSON writes the state name.
func (s State) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON reads a state name written by MarshalJSON.
func (s *State) UnmarshalJSON(b []byte) error {
	var name string
	if err := json.Unmarshal(b, &name); err != nil {
		return err
	}
	for st := StateLoading; st <= StateClosed; st++ {
		if st.String() == name {
			*s = st
			return nil
		}
	}
	return fmt.Errorf("unknown editor state %q", name)
}

// Snapshot is a consistent view of an editor at one point in time. Content
// is a private copy.
type Snapshot struct {
	PageID     uuid.UUID         `json:"page_id"`
	TemplateID models.TemplateID `json:"template_id"`
	State      State             `json:"state"`
	Content    models.Content    `json:"content"`
	Revision   uint64            `json:"revision"`
	Saved      uint64            `json:"saved_revision"`
	Reseeded   bool              `json:"reseeded,omitempty"`
	Error      string            `json:"error,omitempty"`
}

// Unsaved reports whether the snapshot holds edits not yet persisted.
func (s Snapshot) Unsaved() bool {
	return s.Revision != s.Saved
}
