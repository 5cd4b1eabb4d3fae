package main

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/aether/core"
	"github.com/lixenwraith/aether/input"
	"github.com/lixenwraith/aether/render"
	"github.com/lixenwraith/aether/scene"
	"github.com/lixenwraith/aether/session"
	"github.com/lixenwraith/aether/thought"
)

// app routes terminal events and transcripts into the session
type app struct {
	screen   tcell.Screen
	sess     *session.Session
	renderer *render.Renderer
	machine  *input.Machine
	logger   *log.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	stopped bool
	wg      sync.WaitGroup
}

// inputMode maps the scene and busy state to the parser mode
// Keys are ignored while a submission is in flight, the prompt is hidden then
func inputMode(sc scene.Scene, busy bool) input.InputMode {
	switch {
	case sc == scene.Landing:
		return input.ModeLanding
	case sc == scene.Active && !busy:
		return input.ModeText
	default:
		return input.ModeWaiting
	}
}

// handle applies one event, false means quit
func (a *app) handle(ev tcell.Event) bool {
	a.machine.SetMode(inputMode(a.sess.Scene(), a.sess.Busy()))
	it := a.machine.Process(ev)

	switch it.Type {
	case input.IntentQuit:
		return false
	case input.IntentActivate:
		if a.sess.Activate() {
			a.logger.Printf("activated")
		}
	case input.IntentToggleHUD:
		a.renderer.ToggleHUD()
	case input.IntentResize:
		a.sess.Resize(a.screen.Size())
		a.screen.Sync()
	case input.IntentTextSubmit:
		a.submit(it.Text, thought.ModalityText)
	}

	a.sess.SetInput(a.machine.Line())
	return true
}

// submit runs one submission off the event goroutine
func (a *app) submit(text string, m thought.Modality) {
	a.spawn(func() {
		err := a.sess.Submit(a.ctx, text, m)
		switch {
		case err == nil:
		case errors.Is(err, session.ErrBusy), errors.Is(err, session.ErrNotAccepting):
			a.logger.Printf("%s submission dropped: %v", m, err)
		default:
			a.logger.Printf("submit: %v", err)
		}
	})
}

// listen forwards transcripts as voice submissions until the channel closes
// The reader is not tracked: a blocked Read on a pipe cannot be interrupted
func (a *app) listen(tr input.Transcriber) {
	core.Go(func() {
		for text := range tr.Transcripts(a.ctx) {
			a.submit(text, thought.ModalityVoice)
		}
	})
}

// draw renders each published frame until ctx is done
func (a *app) draw(start time.Time) {
	a.spawn(func() {
		for {
			select {
			case <-a.ctx.Done():
				return
			case <-a.sess.FrameDone():
				a.renderer.Draw(a.sess.View(), time.Since(start))
			}
		}
	})
}

// spawn runs fn on a tracked goroutine, refused once stop has begun
func (a *app) spawn(fn func()) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.stopped {
		return false
	}
	a.wg.Add(1)
	core.Go(func() {
		defer a.wg.Done()
		fn()
	})
	return true
}

// stop cancels in-flight work and waits for tracked goroutines
func (a *app) stop() {
	a.mu.Lock()
	a.stopped = true
	a.mu.Unlock()
	a.cancel()
	a.wg.Wait()
}

// run polls the screen until quit or ctx is done
// The poller goroutine ends when the screen is finalized
func (a *app) run() {
	events := make(chan tcell.Event, 64)
	core.Go(func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-a.ctx.Done():
				return
			}
		}
	})

	for {
		select {
		case <-a.ctx.Done():
			return
		case ev := <-events:
			if !a.handle(ev) {
				return
			}
		}
	}
}
