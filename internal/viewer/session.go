package viewer

import (
	"context"
	"sync"
)

// Session owns the viewer behind the page. The first visit mounts one. A
// visit that comes after a Failed page has been served counts as a reload
// and gets a fresh mount, so a catalog that comes up later is picked up.
// Loading and Loaded mounts are reused as they are.
type Session struct {
	ctx       context.Context
	newViewer func() *Viewer

	mu          sync.Mutex
	cur         *Viewer
	failedShown bool
	closed      bool
}

// NewSession returns a session whose mounts live until ctx is done or Close
// is called.
func NewSession(ctx context.Context, newViewer func() *Viewer) *Session {
	return &Session{ctx: ctx, newViewer: newViewer}
}

// Visit returns the snapshot a page visit should render, mounting a new
// viewer first when needed.
func (s *Session) Visit() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return Snapshot{Status: StatusLoading}
	}

	if s.cur == nil || s.failedShown {
		if s.cur != nil {
			s.cur.Unmount()
		}
		s.cur = s.newViewer()
		s.cur.Mount(s.ctx)
		s.failedShown = false
	}

	snap := s.cur.Snapshot()
	if snap.Status == StatusFailed {
		s.failedShown = true
	}
	return snap
}

// Wait blocks until the current mount settles. It returns ErrNotMounted
// before the first visit.
func (s *Session) Wait(ctx context.Context) error {
	s.mu.Lock()
	v := s.cur
	s.mu.Unlock()

	if v == nil {
		return ErrNotMounted
	}
	return v.Wait(ctx)
}

// Close unmounts the current viewer. Later visits mount nothing.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	if s.cur != nil {
		s.cur.Unmount()
	}
}
