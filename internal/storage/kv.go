/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package storage provides the key-value persistence collaborator used by the
// schedule store: load/save of serialized document collections.
package storage

// KV stores serialized collections under string keys. Load reports absence
// through its second return value rather than an error.
type KV interface {
	Load(key string) (string, bool, error)
	Save(key, value string) error
}
