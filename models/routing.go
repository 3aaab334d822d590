// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"errors"
	"fmt"
)

// Mode is the global operating mode of the application.
//
//   - ModeCloud: the remote store is the only store; the mirror is inert
//     unless an entity forces sync on via its override.
//   - ModeSync: the mirror is active and entities follow the configured
//     read/write strategies.
type Mode string

const (
	ModeCloud Mode = "cloud"
	ModeSync  Mode = "sync"
)

// SyncOverride is the per-entity tri-state sync enablement override.
// Inherit follows the global mode; Enabled and Disabled force the decision
// regardless of mode.
type SyncOverride int

const (
	OverrideInherit SyncOverride = iota
	OverrideEnabled
	OverrideDisabled
)

// String implements fmt.Stringer for log output.
func (o SyncOverride) String() string {
	switch o {
	case OverrideEnabled:
		return "enabled"
	case OverrideDisabled:
		return "disabled"
	default:
		return "inherit"
	}
}

// ReadStrategy selects which store serves an entity's reads when sync is
// enabled for that entity.
type ReadStrategy string

const (
	ReadLocalOnly      ReadStrategy = "local_only"
	ReadLocalFirst     ReadStrategy = "local_first"
	ReadFirestoreFirst ReadStrategy = "firestore_first"
	ReadFirestoreOnly  ReadStrategy = "firestore_only"
)

// WriteStrategy selects which store(s) receive an entity's writes when sync
// is enabled for that entity.
type WriteStrategy string

const (
	WriteLocalOnly     WriteStrategy = "local_only"
	WriteFirestoreOnly WriteStrategy = "firestore_only"
	WriteBoth          WriteStrategy = "both"
)

// RoutingDecision is the derived per-call answer of the routing policy.
// It is computed from mode, override and strategies and never stored.
type RoutingDecision struct {
	ReadFromLocal    bool `json:"read_from_local"`
	WriteToLocal     bool `json:"write_to_local"`
	WriteToFirestore bool `json:"write_to_firestore"`
}

var (
	ErrUnknownMode          = errors.New("unknown mode")
	ErrUnknownReadStrategy  = errors.New("unknown read strategy")
	ErrUnknownWriteStrategy = errors.New("unknown write strategy")
)

// ParseMode validates a configured mode string.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeCloud, ModeSync:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// ParseReadStrategy validates a configured read strategy string.
func ParseReadStrategy(s string) (ReadStrategy, error) {
	switch ReadStrategy(s) {
	case ReadLocalOnly, ReadLocalFirst, ReadFirestoreFirst, ReadFirestoreOnly:
		return ReadStrategy(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownReadStrategy, s)
	}
}

// ParseWriteStrategy validates a configured write strategy string.
func ParseWriteStrategy(s string) (WriteStrategy, error) {
	switch WriteStrategy(s) {
	case WriteLocalOnly, WriteFirestoreOnly, WriteBoth:
		return WriteStrategy(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownWriteStrategy, s)
	}
}
