package identity

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// Strategy names accepted by FactoryFor.
const (
	StrategySequential = "sequential"
	StrategyHashed     = "hashed"
)

const hexIDLength = 24

// Generator hands out ids for content nodes. key is a stable positional path
// such as "page:0/article:1"; generators may ignore it.
type Generator interface {
	NewID(key string) string
}

// Factory returns a fresh generator for a single conversion run.
type Factory func() Generator

// FactoryFor resolves a strategy name. namespace only affects hashed ids.
func FactoryFor(strategy, namespace string) (Factory, error) {
	switch strings.ToLower(strings.TrimSpace(strategy)) {
	case "", StrategySequential:
		return func() Generator { return NewSequential() }, nil
	case StrategyHashed:
		return func() Generator { return NewHashed(namespace) }, nil
	}
	return nil, fmt.Errorf("identity: unknown id strategy %q", strategy)
}

// Sequential emits zero-padded 24 character hex counters starting at 1.
type Sequential struct {
	next uint64
}

// NewSequential returns a generator whose first id is 000...001.
func NewSequential() *Sequential {
	return &Sequential{}
}

func (s *Sequential) NewID(string) string {
	s.next++
	return Hex24(s.next)
}

// Hex24 formats n as lower-case hex, left padded to 24 characters.
func Hex24(n uint64) string {
	h := strconv.FormatUint(n, 16)
	return strings.Repeat("0", hexIDLength-len(h)) + h
}

// Hashed derives ids from the namespace and the positional key, so the same
// document yields the same ids across runs and machines.
type Hashed struct {
	namespace string
}

// NewHashed returns a hashed generator scoped to namespace.
func NewHashed(namespace string) *Hashed {
	namespace = strings.TrimSpace(namespace)
	if namespace == "" {
		namespace = "md2adapt"
	}
	return &Hashed{namespace: namespace}
}

func (h *Hashed) NewID(key string) string {
	uid := UUID(h.namespace + ":" + key)
	return hex.EncodeToString(uid[:hexIDLength/2])
}

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Callers must ensure key construction prevents cross-document collisions.
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// IsHex24 reports whether id looks like an id produced by this package.
func IsHex24(id string) bool {
	if len(id) != hexIDLength {
		return false
	}
	for _, r := range id {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			return false
		}
	}
	return true
}
