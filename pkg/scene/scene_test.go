package scene

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	name    string
	log     *[]string
	node    *Node
	initErr error
}

func (r *recorder) Attach(n *Node)    { r.node = n }
func (r *recorder) Init() error       { *r.log = append(*r.log, "init:"+r.name); return r.initErr }
func (r *recorder) Destroy() error    { *r.log = append(*r.log, "destroy:"+r.name); return nil }
func (r *recorder) Update(dt float64) { *r.log = append(*r.log, "update:"+r.name) }
func (r *recorder) OnEnable()         { *r.log = append(*r.log, "enable:"+r.name) }
func (r *recorder) OnDisable()        { *r.log = append(*r.log, "disable:"+r.name) }

func TestNode_Path(t *testing.T) {
	s := New("Level01_StationHub")
	room := s.Add(NewNode("Room"))
	discharge := room.AddChild(NewNode("Discharge1"))

	assert.Equal(t, "Room", room.Path())
	assert.Equal(t, "Room/Discharge1", discharge.Path())
	assert.Same(t, discharge, s.FindByPath("Room/Discharge1"))
	assert.Nil(t, s.FindByPath("Room/Discharge2"))
	assert.Nil(t, s.FindByPath(""))
}

func TestScene_FindByPathSiblingCollision(t *testing.T) {
	s := New("test")
	s.Add(NewNode("Room"))
	second := s.Add(NewNode("Room"))
	target := second.AddChild(NewNode("Discharge1"))

	assert.Same(t, target, s.FindByPath("Room/Discharge1"))
}

func TestScene_lifecycle(t *testing.T) {
	var log []string
	s := New("test")
	a := s.Add(NewNode("A"))
	a.AddComponent(&recorder{name: "a", log: &log})
	b := a.AddChild(NewNode("B"))
	b.AddComponent(&recorder{name: "b", log: &log})
	b.SetActive(false)
	log = nil

	require.NoError(t, s.Init())
	assert.True(t, s.Loaded())
	assert.Equal(t, []string{"init:a", "init:b"}, log)

	log = nil
	s.Update(0.016)
	assert.Equal(t, []string{"update:a"}, log)

	log = nil
	require.NoError(t, s.Destroy())
	assert.False(t, s.Loaded())
	assert.Equal(t, []string{"destroy:a", "destroy:b"}, log)
}

func TestScene_initErrorsAreRecorded(t *testing.T) {
	var log []string
	s := New("test")
	n := s.Add(NewNode("A"))
	n.AddComponent(&recorder{name: "a", log: &log, initErr: errors.New("boom")})

	require.NoError(t, s.Init())
	assert.Len(t, s.Errors(), 1)
}

func TestNode_SetActiveNotifiesDescendants(t *testing.T) {
	var log []string
	s := New("test")
	parent := s.Add(NewNode("Parent"))
	parent.AddComponent(&recorder{name: "parent", log: &log})
	child := parent.AddChild(NewNode("Child"))
	child.AddComponent(&recorder{name: "child", log: &log})
	hidden := parent.AddChild(NewNode("Hidden"))
	hidden.AddComponent(&recorder{name: "hidden", log: &log})
	hidden.SetActive(false)
	require.NoError(t, s.Init())
	log = nil

	parent.SetActive(false)
	assert.Equal(t, []string{"disable:parent", "disable:child"}, log)
	assert.False(t, child.ActiveInHierarchy())
	assert.True(t, child.ActiveSelf())

	log = nil
	parent.SetActive(true)
	assert.Equal(t, []string{"enable:parent", "enable:child"}, log)

	log = nil
	parent.SetActive(true)
	assert.Empty(t, log)
}

func TestNode_AddComponentAfterInit(t *testing.T) {
	var log []string
	s := New("test")
	require.NoError(t, s.Init())

	n := s.Add(NewNode("Late"))
	r := &recorder{name: "late", log: &log}
	n.AddComponent(r)

	assert.Same(t, n, r.node)
	assert.Equal(t, []string{"init:late"}, log)
}

func TestFindAll(t *testing.T) {
	var log []string
	s := New("test")
	s.Add(NewNode("A")).AddComponent(&recorder{name: "a", log: &log})
	off := s.Add(NewNode("B"))
	off.AddComponent(&recorder{name: "b", log: &log})
	off.SetActive(false)

	assert.Len(t, FindAll[*recorder](s, true), 2)
	assert.Len(t, FindAll[*recorder](s, false), 1)

	first, ok := FindFirst[*recorder](s)
	require.True(t, ok)
	assert.Equal(t, "a", first.name)

	_, ok = FindFirst[*recorder](nil)
	assert.False(t, ok)

	r, ok := ComponentOf[*recorder](off)
	require.True(t, ok)
	assert.Equal(t, "b", r.name)
}

func TestManager_Activate(t *testing.T) {
	var log []string
	m := NewManager()
	first := New("first")
	first.Add(NewNode("A")).AddComponent(&recorder{name: "a", log: &log})
	second := New("second")
	second.Add(NewNode("B")).AddComponent(&recorder{name: "b", log: &log})

	require.NoError(t, m.Activate(first))
	assert.Equal(t, "first", m.ActiveName())
	require.NoError(t, m.Activate(second))
	assert.Equal(t, "second", m.ActiveName())
	assert.False(t, first.Loaded())
	assert.True(t, second.Loaded())
	assert.Equal(t, []string{"init:a", "destroy:a", "init:b"}, log)

	require.NoError(t, m.Close())
	assert.Nil(t, m.Active())
	assert.Equal(t, "", m.ActiveName())
}
