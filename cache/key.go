package cache

import (
	"errors"
	"strings"
)

type Key struct {
	// Scope - optional owner of the key, i.e username or visitor hash.
	Scope string
	// Prefix - Helps better grouping and searching
	// i.e feature + entity
	Prefix string
	// Suffix - optional
	Suffix string
}

var (
	ErrorInvalidPrefix = errors.New("invalid key prefix")
	ErrorInvalidScope  = errors.New("invalid key scope")
	ErrorInvalidKey    = errors.New("invalid cache key")
)

func NewKeyWithOnlyPrefix(prefix string) (*Key, error) {
	if prefix == "" {
		return nil, ErrorInvalidPrefix
	}

	return &Key{Prefix: prefix}, nil
}

func NewKey(scope, prefix, suffix string) (*Key, error) {
	if scope == "" {
		return nil, ErrorInvalidScope
	}

	if prefix == "" {
		return nil, ErrorInvalidPrefix
	}

	return &Key{Scope: scope, Prefix: prefix, Suffix: suffix}, nil
}

func (key *Key) Key() (string, error) {
	if key == nil {
		return "", ErrorInvalidKey
	}

	if key.Prefix == "" {
		return "", ErrorInvalidPrefix
	}

	// key: i.e, visitors:throttle:<hash> or github:contributions:octocat:last
	parts := []string{key.Prefix}
	if key.Scope != "" {
		parts = append(parts, key.Scope)
	}
	if key.Suffix != "" {
		parts = append(parts, key.Suffix)
	}
	return strings.Join(parts, ":"), nil
}
