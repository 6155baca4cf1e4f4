// SPDX-License-Identifier: EPL-2.0

package player

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/faiface/beep"
	"go.uber.org/zap"

	"github.com/ik5/audwave/audio"
)

// PollInterval is how often the position is reported while playing.
const PollInterval = 100 * time.Millisecond

var ErrClosed = errors.New("player is closed")

// Output is the device a player streams into. Lock and Unlock guard changes
// to streams the output is currently pulling from.
type Output interface {
	SampleRate() beep.SampleRate
	Play(s ...beep.Streamer)
	Clear()
	Lock()
	Unlock()
}

// Opener returns a fresh source positioned at the start of the track.
type Opener func() (audio.Source, error)

// Option configures a Player.
type Option func(*Player)

// WithLogger sets the logger; the default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(p *Player) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithPollInterval changes how often progress is published.
func WithPollInterval(d time.Duration) Option {
	return func(p *Player) {
		if d > 0 {
			p.interval = d
		}
	}
}

// WithProgress registers the position callback. It runs on the polling
// goroutine, never with the player locked.
func WithProgress(fn func(ms int64)) Option {
	return func(p *Player) { p.onProgress = fn }
}

// WithStateChange registers a callback fired after every transition.
func WithStateChange(fn func(State)) Option {
	return func(p *Player) { p.onState = fn }
}

type Player struct {
	mtx      sync.Mutex
	open     Opener
	out      Output
	logger   *zap.Logger
	interval time.Duration

	onProgress func(ms int64)
	onState    func(State)

	state  State
	gen    uint64
	stream *stream
	ctrl   *beep.Ctrl
	stop   chan struct{}
	polled chan struct{}
	closed bool
}

// New creates an idle player that opens its source on the first Play.
func New(open Opener, out Output, opts ...Option) *Player {
	p := &Player{
		open:     open,
		out:      out,
		logger:   zap.NewNop(),
		interval: PollInterval,
	}
	for _, opt := range opts {
		opt(p)
	}

	return p
}

// State reports the current playback state.
func (p *Player) State() State {
	p.mtx.Lock()
	defer p.mtx.Unlock()

	return p.state
}

// Position returns the current playback position in milliseconds.
func (p *Player) Position() int64 {
	p.mtx.Lock()
	defer p.mtx.Unlock()

	return p.position()
}

func (p *Player) position() int64 {
	if p.stream == nil || p.state == Idle || p.state == Ended {
		return 0
	}

	return p.stream.positionMs()
}

// Play starts playback. A paused player resumes where it stopped; an idle or
// ended one reopens the track from the start.
func (p *Player) Play() error {
	p.mtx.Lock()

	if p.closed {
		p.mtx.Unlock()
		return ErrClosed
	}

	switch p.state {
	case Playing:
		p.mtx.Unlock()
		return nil

	case Paused:
		p.out.Lock()
		p.ctrl.Paused = false
		p.out.Unlock()

	default:
		if err := p.start(); err != nil {
			p.mtx.Unlock()
			return err
		}
	}

	p.state = Playing
	p.startPolling()
	p.mtx.Unlock()

	p.notify(Playing)

	return nil
}

// start opens a new stream and hands it to the output. Callers hold mtx.
func (p *Player) start() error {
	src, err := p.open()
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}

	p.release()

	p.gen++
	gen := p.gen
	p.stream = newStream(src, int(p.out.SampleRate()))
	p.ctrl = &beep.Ctrl{Streamer: p.stream}

	p.out.Play(beep.Seq(p.ctrl, beep.Callback(func() {
		// Runs inside the output's mixing loop, which holds its lock.
		go p.finished(gen)
	})))

	p.logger.Debug("playback started",
		zap.Int("sample_rate", p.stream.rate),
		zap.Int("channels", p.stream.channels),
	)

	return nil
}

// Pause holds the stream in place. It is a no-op unless playing.
func (p *Player) Pause() {
	p.mtx.Lock()
	if p.state != Playing {
		p.mtx.Unlock()
		return
	}

	p.out.Lock()
	p.ctrl.Paused = true
	p.out.Unlock()

	p.state = Paused
	stop := p.stopPolling()
	pos := p.position()
	p.mtx.Unlock()

	p.wait(stop)
	p.progress(pos)
	p.notify(Paused)
}

// Stop clears the output and returns to Idle.
func (p *Player) Stop() {
	p.mtx.Lock()
	if p.state == Idle {
		p.mtx.Unlock()
		return
	}

	p.gen++
	p.out.Clear()
	p.release()
	p.state = Idle
	stop := p.stopPolling()
	p.mtx.Unlock()

	p.wait(stop)
	p.progress(0)
	p.notify(Idle)
}

// Close stops playback; the player cannot be used afterwards.
func (p *Player) Close() error {
	p.Stop()

	p.mtx.Lock()
	p.closed = true
	p.mtx.Unlock()

	return nil
}

func (p *Player) finished(gen uint64) {
	p.mtx.Lock()
	if gen != p.gen || p.state == Idle {
		p.mtx.Unlock()
		return
	}

	if err := p.stream.Err(); err != nil {
		p.logger.Error("playback stream failed", zap.Error(err))
	}

	p.release()
	p.state = Ended
	stop := p.stopPolling()
	p.mtx.Unlock()

	p.wait(stop)
	p.progress(0)
	p.notify(Ended)
}

// release closes the current stream. Callers hold mtx.
func (p *Player) release() {
	if p.stream == nil {
		return
	}

	if err := p.stream.Close(); err != nil {
		p.logger.Warn("close source", zap.Error(err))
	}
	p.stream = nil
	p.ctrl = nil
}

// startPolling launches the position ticker. Callers hold mtx.
func (p *Player) startPolling() {
	if p.stop != nil || p.stream == nil {
		return
	}

	stop := make(chan struct{})
	done := make(chan struct{})
	p.stop, p.polled = stop, done
	s := p.stream

	go func() {
		defer close(done)

		t := time.NewTicker(p.interval)
		defer t.Stop()

		for {
			select {
			case <-stop:
				return
			case <-t.C:
				p.progress(s.positionMs())
			}
		}
	}()
}

// stopPolling signals the ticker goroutine and returns a channel closed once
// it exits. Callers hold mtx and wait after unlocking.
func (p *Player) stopPolling() <-chan struct{} {
	if p.stop == nil {
		return nil
	}

	close(p.stop)
	done := p.polled
	p.stop, p.polled = nil, nil

	return done
}

func (p *Player) wait(done <-chan struct{}) {
	if done != nil {
		<-done
	}
}

func (p *Player) progress(ms int64) {
	if p.onProgress != nil {
		p.onProgress(ms)
	}
}

func (p *Player) notify(s State) {
	if p.onState != nil {
		p.onState(s)
	}
}
