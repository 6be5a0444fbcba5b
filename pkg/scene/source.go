package scene

import (
	"errors"
	"fmt"
	"sort"
)

var ErrUnknownScene = errors.New("unknown scene")

// ActivationThreshold is the raw progress at which a load holds until
// activation is allowed.
const ActivationThreshold = 0.9

// LoadOperation is an in-flight asynchronous scene load.
type LoadOperation interface {
	// Advance performs one frame of background loading.
	Advance()
	// Progress is the raw load progress. It stops at ActivationThreshold
	// until activation is allowed and reaches 1 when Done.
	Progress() float64
	SetAllowActivation(allow bool)
	Done() bool
	Scene() *Scene
}

// Source starts scene loads by name.
type Source interface {
	Begin(name string) (LoadOperation, error)
}

// Builder constructs the uninitialized hierarchy of a named scene.
type Builder func(name string) (*Scene, error)

// BuilderSource loads scenes from registered builders, spreading the load
// over a fixed number of frames.
type BuilderSource struct {
	builders     map[string]Builder
	framesToLoad int
}

func NewBuilderSource(framesToLoad int) *BuilderSource {
	if framesToLoad < 0 {
		framesToLoad = 0
	}
	return &BuilderSource{
		builders:     make(map[string]Builder),
		framesToLoad: framesToLoad,
	}
}

func (s *BuilderSource) Register(name string, b Builder) {
	s.builders[name] = b
}

func (s *BuilderSource) Has(name string) bool {
	_, ok := s.builders[name]
	return ok
}

func (s *BuilderSource) Names() []string {
	names := make([]string, 0, len(s.builders))
	for name := range s.builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Build constructs a scene synchronously.
func (s *BuilderSource) Build(name string) (*Scene, error) {
	b, ok := s.builders[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownScene, name)
	}
	sc, err := b(name)
	if err != nil {
		return nil, fmt.Errorf("failed to build scene %s: %v", name, err)
	}
	return sc, nil
}

func (s *BuilderSource) Begin(name string) (LoadOperation, error) {
	sc, err := s.Build(name)
	if err != nil {
		return nil, err
	}
	return &builderOperation{
		scene:  sc,
		frames: s.framesToLoad,
	}, nil
}

type builderOperation struct {
	scene     *Scene
	frames    int
	elapsed   int
	allow     bool
	activated bool
}

func (o *builderOperation) Advance() {
	if o.elapsed < o.frames {
		o.elapsed++
		return
	}
	if o.allow {
		o.activated = true
	}
}

func (o *builderOperation) Progress() float64 {
	if o.activated {
		return 1
	}
	if o.frames == 0 {
		return ActivationThreshold
	}
	return ActivationThreshold * float64(o.elapsed) / float64(o.frames)
}

func (o *builderOperation) SetAllowActivation(allow bool) {
	o.allow = allow
}

func (o *builderOperation) Done() bool {
	return o.activated
}

func (o *builderOperation) Scene() *Scene {
	return o.scene
}
