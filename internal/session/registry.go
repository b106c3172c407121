// Package session tracks per-caller conversation state for the triage chat.
//
// Sessions are keyed by the display name the client sends with each triage
// turn; the chat endpoint is unauthenticated, so the key has no verified link
// to a user account. The registry holds one bit per key (has this caller been
// greeted) and lives for the process lifetime: entries are never evicted, so
// growth is unbounded. A production deployment should add an idle-timeout
// sweep before exposing this to untrusted traffic.
package session

import (
	"hash/fnv"
	"sync"
)

const shardCount = 16

type shard struct {
	mu       sync.Mutex
	sessions map[string]*state
}

type state struct {
	greeted bool
}

// Registry is a sharded map of conversation sessions. Sharding keeps
// exclusion per-key rather than global, so concurrent turns from unrelated
// callers never serialize on one lock.
type Registry struct {
	shards [shardCount]*shard
}

func NewRegistry() *Registry {
	r := &Registry{}
	for i := range r.shards {
		r.shards[i] = &shard{sessions: make(map[string]*state)}
	}
	return r
}

func (r *Registry) shardFor(key string) *shard {
	h := fnv.New32a()
	h.Write([]byte(key))
	return r.shards[h.Sum32()%shardCount]
}

// MarkGreeted transitions the session for key from never-greeted to greeted
// and reports whether the transition fired. The transition fires at most once
// per key for the process lifetime; the session is created lazily on first
// call.
func (r *Registry) MarkGreeted(key string) bool {
	s := r.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.sessions[key]
	if !ok {
		st = &state{}
		s.sessions[key] = st
	}
	if st.greeted {
		return false
	}
	st.greeted = true
	return true
}

// Greeted reports whether the session for key has already been greeted.
// A key with no session yet reports false.
func (r *Registry) Greeted(key string) bool {
	s := r.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.sessions[key]
	return ok && st.greeted
}

// Len returns the total number of live sessions across all shards.
func (r *Registry) Len() int {
	n := 0
	for _, s := range r.shards {
		s.mu.Lock()
		n += len(s.sessions)
		s.mu.Unlock()
	}
	return n
}
