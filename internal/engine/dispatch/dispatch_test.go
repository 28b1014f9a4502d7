package dispatch

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type frame struct {
	mu  sync.Mutex
	log []string
}

func (f *frame) record(name string) {
	f.mu.Lock()
	f.log = append(f.log, name)
	f.mu.Unlock()
}

type fakeSystem struct {
	name   string
	access Access
	err    error
}

func (s fakeSystem) Name() string   { return s.name }
func (s fakeSystem) Access() Access { return s.access }
func (s fakeSystem) Run(_ context.Context, f *frame) error {
	f.record(s.name)
	return s.err
}

func sys(name string, reads, writes []Resource) fakeSystem {
	return fakeSystem{name: name, access: Access{Reads: reads, Writes: writes}}
}

func TestAccessConflicts(t *testing.T) {
	tests := []struct {
		name string
		a, b Access
		want bool
	}{
		{"read/read", Access{Reads: []Resource{"t"}}, Access{Reads: []Resource{"t"}}, false},
		{"write/write", Access{Writes: []Resource{"t"}}, Access{Writes: []Resource{"t"}}, true},
		{"write/read", Access{Writes: []Resource{"t"}}, Access{Reads: []Resource{"t"}}, true},
		{"read/write", Access{Reads: []Resource{"t"}}, Access{Writes: []Resource{"t"}}, true},
		{"disjoint", Access{Writes: []Resource{"a"}}, Access{Writes: []Resource{"b"}, Reads: []Resource{"c"}}, false},
		{"empty", Access{}, Access{Writes: []Resource{"a"}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Conflicts(tt.b))
			assert.Equal(t, tt.want, tt.b.Conflicts(tt.a), "Conflicts must be symmetric")
		})
	}
}

func TestBuildStages(t *testing.T) {
	// player writes transforms, camera reads them, settings is independent
	d := NewBuilder[*frame]().
		Add(sys("player", []Resource{"keys", "dt"}, []Resource{"transform", "velocity"})).
		Add(sys("camera", []Resource{"transform", "player"}, []Resource{"camera"})).
		Add(sys("settings", []Resource{"keys"}, []Resource{"settings"})).
		Build()

	assert.Equal(t, [][]string{{"player", "settings"}, {"camera"}}, d.Stages())
}

func TestBuildStagesNoConflictWithinStage(t *testing.T) {
	systems := []fakeSystem{
		sys("a", nil, []Resource{"x"}),
		sys("b", []Resource{"x"}, []Resource{"y"}),
		sys("c", nil, []Resource{"z"}),
		sys("d", []Resource{"y", "z"}, nil),
		sys("e", []Resource{"q"}, nil),
		sys("f", nil, []Resource{"x"}),
	}
	b := NewBuilder[*frame]()
	for _, s := range systems {
		b.Add(s)
	}
	d := b.Build()

	byName := map[string]fakeSystem{}
	for _, s := range systems {
		byName[s.name] = s
	}
	stageOf := map[string]int{}
	for i, stage := range d.Stages() {
		for _, n := range stage {
			stageOf[n] = i
		}
		for i := range stage {
			for j := i + 1; j < len(stage); j++ {
				assert.False(t, byName[stage[i]].access.Conflicts(byName[stage[j]].access),
					"%s and %s share a stage", stage[i], stage[j])
			}
		}
	}

	// conflicting pairs keep registration order
	for i, a := range systems {
		for _, b := range systems[i+1:] {
			if a.access.Conflicts(b.access) {
				assert.Less(t, stageOf[a.name], stageOf[b.name], "%s must precede %s", a.name, b.name)
			}
		}
	}
	assert.Equal(t, 0, stageOf["e"])
}

func TestDispatchOrder(t *testing.T) {
	d := NewBuilder[*frame]().
		Add(sys("writer", nil, []Resource{"x"})).
		Add(sys("reader", []Resource{"x"}, nil)).
		AddLocal(sys("clear", nil, nil)).
		AddLocal(sys("draw", nil, nil)).
		AddLocal(sys("harvest", nil, nil)).
		Build()

	f := &frame{}
	require.NoError(t, d.Dispatch(context.Background(), f))
	assert.Equal(t, []string{"writer", "reader", "clear", "draw", "harvest"}, f.log)
	assert.Equal(t, []string{"clear", "draw", "harvest"}, d.LocalNames())
}

func TestDispatchRunsConcurrentStage(t *testing.T) {
	d := NewBuilder[*frame]().
		Add(sys("a", nil, []Resource{"a"})).
		Add(sys("b", nil, []Resource{"b"})).
		Add(sys("c", nil, []Resource{"c"})).
		Build()

	require.Len(t, d.Stages(), 1)

	f := &frame{}
	require.NoError(t, d.Dispatch(context.Background(), f))
	assert.ElementsMatch(t, []string{"a", "b", "c"}, f.log)
}

func TestDispatchContinuesAfterError(t *testing.T) {
	boom := errors.New("boom")
	failing := sys("player", nil, []Resource{"t"})
	failing.err = boom

	d := NewBuilder[*frame]().
		Add(failing).
		Add(sys("camera", []Resource{"t"}, nil)).
		AddLocal(sys("draw", nil, nil)).
		Build()

	f := &frame{}
	err := d.Dispatch(context.Background(), f)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "player")
	assert.Equal(t, []string{"player", "camera", "draw"}, f.log)
}

func TestEmptyDispatcher(t *testing.T) {
	d := NewBuilder[*frame]().Build()
	assert.Empty(t, d.Stages())
	assert.NoError(t, d.Dispatch(context.Background(), &frame{}))
}
