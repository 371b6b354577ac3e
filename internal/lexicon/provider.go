package lexicon

import (
	"context"
	"errors"
	"sync/atomic"
)

// ErrUnavailable is returned when the full dictionary has not been loaded yet.
var ErrUnavailable = errors.New("lexicon: dictionary not loaded")

// Provider hands out the current Lexicon. Until a full dictionary is
// installed it serves a fallback, so Contains never fails for lack of
// initialization. Safe for concurrent use.
type Provider struct {
	current  atomic.Pointer[Lexicon]
	fallback *Lexicon
}

// NewProvider creates a provider serving fallback until Set is called.
// A nil fallback is replaced with the built-in word set.
func NewProvider(fallback *Lexicon) *Provider {
	if fallback == nil {
		fallback = Fallback()
	}
	return &Provider{fallback: fallback}
}

// Set installs a fully loaded Lexicon.
func (p *Provider) Set(l *Lexicon) {
	p.current.Store(l)
}

// Ready reports whether a full dictionary has been installed.
func (p *Provider) Ready() bool {
	return p.current.Load() != nil
}

// Lexicon returns the full dictionary if loaded, otherwise the fallback.
func (p *Provider) Lexicon() *Lexicon {
	if l := p.current.Load(); l != nil {
		return l
	}
	return p.fallback
}

// Loaded returns the full dictionary or ErrUnavailable.
func (p *Provider) Loaded() (*Lexicon, error) {
	if l := p.current.Load(); l != nil {
		return l, nil
	}
	return nil, ErrUnavailable
}

// Contains checks word against the active Lexicon.
func (p *Provider) Contains(word string) bool {
	return p.Lexicon().Contains(word)
}

// Root returns a cursor into the active Lexicon.
func (p *Provider) Root() Cursor {
	return p.Lexicon().Root()
}

// Load runs load in the background and installs its result. The returned
// channel yields the load error (nil on success) and is then closed.
func (p *Provider) Load(ctx context.Context, load func(context.Context) (*Lexicon, error)) <-chan error {
	done := make(chan error, 1)
	go func() {
		defer close(done)
		l, err := load(ctx)
		if err == nil && ctx.Err() != nil {
			err = ctx.Err()
		}
		if err != nil {
			done <- err
			return
		}
		p.Set(l)
		done <- nil
	}()
	return done
}
