package session

import (
	"time"

	"github.com/lixenwraith/aether/thought"
)

// stepScene applies pending resizes and spawns, then advances the scene graph
func (s *Session) stepScene(dt time.Duration) {
	if size := s.resize.Swap(nil); size != nil {
		w, h := viewport(size[0], size[1])
		s.thoughts.Resize(w, h)
		s.stars.Resize(w, h)
	}

	s.drainSpawns()
	s.scene.Update(dt)
}

func (s *Session) drainSpawns() {
	for {
		select {
		case req := <-s.spawns:
			if req.kind == thought.KindResponse {
				s.thoughts.SpawnResponse(req.text, req.modality)
				s.cue(s.opts.Sounds.PlayChime)
			} else {
				s.thoughts.SpawnQuestion(req.text, req.modality)
			}
		default:
			return
		}
	}
}

func (s *Session) stepStars(dt time.Duration) {
	s.stars.Tick(s.scene.SpeedMultiplier(), dt)
}

// stepThoughts is registered by the scene controller when the Active scene starts
func (s *Session) stepThoughts(dt time.Duration) {
	s.thoughts.Advance(dt)
}

// publish swaps in a fresh View and refreshes the metrics, runs after every frame
func (s *Session) publish() {
	stretch := s.scene.Stretch()
	st := s.thoughts.Stats()

	v := &View{
		Frame:       s.sched.Frames(),
		Scene:       s.scene.Scene(),
		TimeInScene: s.scene.TimeInScene(),
		Anchor:      s.thoughts.Anchor(),
		Thoughts:    s.thoughts.Snapshot(),
		Stars:       s.stars.Sprites(stretch),
		Stretch:     stretch,
		Busy:        s.busy.Load(),
		Accepting:   s.scene.AcceptsInput(),
	}
	v.Width, v.Height = s.thoughts.Size()
	if in := s.input.Load(); in != nil {
		v.Input = *in
	}
	s.view.Store(v)

	s.statLive.Store(int64(len(v.Thoughts)))
	s.statSpawned.Store(int64(st.Spawned))
	s.statEvicted.Store(int64(st.Evicted))
	s.statRetired.Store(int64(st.Retired))
	s.statRecycled.Store(int64(s.stars.Recycled()))
}
