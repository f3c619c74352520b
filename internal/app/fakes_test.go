package app

import (
	"context"
	"errors"
	"sync"

	"github.com/aditya-sb/livestreaming/internal/core"
	"github.com/aditya-sb/livestreaming/internal/domain"
)

// fakeStore is an in-memory SessionStore with switchable failures.
type fakeStore struct {
	mu       sync.Mutex
	sessions map[domain.SessionID]*domain.Session
	failAll  bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{sessions: make(map[domain.SessionID]*domain.Session)}
}

var errStoreDown = errors.New("store down")

func (f *fakeStore) Create(_ context.Context, s *domain.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return errStoreDown
	}
	cp := *s
	f.sessions[s.ID] = &cp
	return nil
}

func (f *fakeStore) FindByID(_ context.Context, id domain.SessionID) (*domain.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return nil, errStoreDown
	}
	s, ok := f.sessions[id]
	if !ok {
		return nil, domain.ErrNoSession
	}
	cp := *s
	return &cp, nil
}

func (f *fakeStore) FindActiveByID(ctx context.Context, id domain.SessionID) (*domain.Session, error) {
	s, err := f.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.Active {
		return nil, domain.ErrNoSession
	}
	return s, nil
}

func (f *fakeStore) SetActive(_ context.Context, id domain.SessionID, active bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return errStoreDown
	}
	s, ok := f.sessions[id]
	if !ok {
		return domain.ErrNoSession
	}
	s.Active = active
	return nil
}

func (f *fakeStore) active(id domain.SessionID) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[id]
	return ok && s.Active
}

// fakePeer records everything sent to it.
type fakePeer struct {
	mu   sync.Mutex
	sent []any
}

func (p *fakePeer) TrySend(v any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sent = append(p.sent, v)
	return nil
}

func (p *fakePeer) Close() {}

func (p *fakePeer) messages() []any {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]any, len(p.sent))
	copy(out, p.sent)
	return out
}

func (p *fakePeer) countType(typ string) int {
	n := 0
	for _, m := range p.messages() {
		switch v := m.(type) {
		case Signal:
			if v.Type == typ {
				n++
			}
		case core.RoomEvent:
			if v.Type == typ {
				n++
			}
		}
	}
	return n
}
