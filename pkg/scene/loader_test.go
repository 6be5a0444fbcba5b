package scene

import (
	"errors"
	"testing"

	"github.com/cbodonnell/flipside/pkg/events"
	"github.com/cbodonnell/flipside/pkg/sched"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLoader(frames int) (*Loader, *BuilderSource, *Manager, *events.Hub, *sched.Scheduler) {
	hub := events.NewHub()
	s := sched.New()
	m := NewManager()
	src := NewBuilderSource(frames)
	for _, name := range []string{"Level01_StationHub", "Level02_ReactorCore"} {
		src.Register(name, func(name string) (*Scene, error) {
			return New(name), nil
		})
	}
	l := NewLoader(NewLoaderOptions{Hub: hub, Scheduler: s, Manager: m, Source: src})
	return l, src, m, hub, s
}

func TestLoader_LoadScene(t *testing.T) {
	l, _, m, hub, s := newTestLoader(3)

	var order []string
	hub.LoadingStarted.Subscribe(func(ev events.LoadingStarted) { order = append(order, "loading:"+ev.Scene) })
	hub.LevelStarted.Subscribe(func(ev events.LevelStarted) { order = append(order, "started:"+ev.Level) })
	hub.LevelLoaded.Subscribe(func(ev events.LevelLoaded) {
		order = append(order, "loaded:"+ev.Level)
		assert.Equal(t, "Level02_ReactorCore", m.ActiveName())
	})

	completed := false
	require.NoError(t, l.LoadScene("Level02_ReactorCore", func() {
		order = append(order, "complete")
		completed = true
	}))

	assert.True(t, l.IsLoading())
	assert.Equal(t, []string{"loading:Level02_ReactorCore", "started:Level02_ReactorCore"}, order)
	assert.Equal(t, "", m.ActiveName())

	var progress []float64
	for i := 0; i < 10 && !completed; i++ {
		s.Tick(0.016)
		if l.IsLoading() {
			progress = append(progress, l.Progress())
		}
	}

	require.True(t, completed)
	assert.False(t, l.IsLoading())
	assert.Equal(t, 0.0, l.Progress())
	assert.Equal(t, []string{
		"loading:Level02_ReactorCore",
		"started:Level02_ReactorCore",
		"loaded:Level02_ReactorCore",
		"complete",
	}, order)
	for i := 1; i < len(progress); i++ {
		assert.GreaterOrEqual(t, progress[i], progress[i-1])
		assert.LessOrEqual(t, progress[i], 1.0)
	}
}

func TestLoader_completionRunsFrameAfterLevelLoaded(t *testing.T) {
	l, _, _, hub, s := newTestLoader(0)

	var loadedFrame, completeFrame uint64
	hub.LevelLoaded.Subscribe(func(events.LevelLoaded) { loadedFrame = s.Frame() })
	require.NoError(t, l.LoadScene("Level01_StationHub", func() { completeFrame = s.Frame() }))

	for i := 0; i < 5; i++ {
		s.Tick(0.016)
	}

	require.NotZero(t, loadedFrame)
	assert.Equal(t, loadedFrame+1, completeFrame)
}

func TestLoader_rejectsConcurrentLoad(t *testing.T) {
	l, _, m, _, s := newTestLoader(2)

	require.NoError(t, l.LoadScene("Level01_StationHub", nil))
	err := l.LoadScene("Level02_ReactorCore", nil)
	assert.True(t, errors.Is(err, ErrLoadInProgress))

	for i := 0; i < 10; i++ {
		s.Tick(0.016)
	}
	assert.Equal(t, "Level01_StationHub", m.ActiveName())
	assert.NoError(t, l.LoadScene("Level02_ReactorCore", nil))
}

func TestLoader_unknownScene(t *testing.T) {
	l, _, _, hub, _ := newTestLoader(1)
	started := false
	hub.LoadingStarted.Subscribe(func(events.LoadingStarted) { started = true })

	err := l.LoadScene("Level99", nil)
	assert.True(t, errors.Is(err, ErrUnknownScene))
	assert.False(t, started)
	assert.False(t, l.IsLoading())
}

func TestBuilderSource_progressHoldsUntilActivation(t *testing.T) {
	src := NewBuilderSource(2)
	src.Register("a", func(name string) (*Scene, error) { return New(name), nil })

	op, err := src.Begin("a")
	require.NoError(t, err)
	assert.Equal(t, 0.0, op.Progress())
	op.Advance()
	op.Advance()
	assert.Equal(t, ActivationThreshold, op.Progress())
	op.Advance()
	assert.False(t, op.Done())
	assert.Equal(t, ActivationThreshold, op.Progress())

	op.SetAllowActivation(true)
	op.Advance()
	assert.True(t, op.Done())
	assert.Equal(t, 1.0, op.Progress())
	assert.Equal(t, "a", op.Scene().Name())
	assert.Equal(t, []string{"a"}, src.Names())
}
