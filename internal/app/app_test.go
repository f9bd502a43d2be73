package app

import (
	"log/slog"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/drillz/internal/router"
	"github.com/abhisek/drillz/internal/screen"
	"github.com/abhisek/drillz/internal/ui/layout"
)

type stubScreen struct {
	title     string
	backs     bool
	keys      int
	resumes   int
	lastWidth int
}

func (s *stubScreen) Init() tea.Cmd { return nil }

func (s *stubScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tea.KeyMsg:
		s.keys++
	case screen.ResumeMsg:
		s.resumes++
	}
	return s, nil
}

func (s *stubScreen) View(width, _ int) string {
	s.lastWidth = width
	return s.title
}

func (s *stubScreen) Title() string     { return s.title }
func (s *stubScreen) HandlesBack() bool { return s.backs }

func newTestModel(screens ...*stubScreen) AppModel {
	r := router.New(screens[0])
	for _, s := range screens[1:] {
		r.Push(s)
	}
	return AppModel{
		log:    slog.New(slog.DiscardHandler),
		root:   screens[0],
		router: r,
	}
}

func TestEscPopsWhenScreenDoesNotHandleBack(t *testing.T) {
	root, top := &stubScreen{title: "root"}, &stubScreen{title: "top"}
	m := newTestModel(root, top)

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	require.NotNil(t, cmd)
	assert.IsType(t, router.PopScreenMsg{}, cmd())
	assert.Zero(t, top.keys)
}

func TestEscForwardedToBackHandler(t *testing.T) {
	root, top := &stubScreen{title: "root"}, &stubScreen{title: "drill", backs: true}
	m := newTestModel(root, top)

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	assert.Nil(t, cmd)
	assert.Equal(t, 1, top.keys)
	assert.Equal(t, 2, m.router.Depth())
}

func TestEscAtRootIsIgnored(t *testing.T) {
	root := &stubScreen{title: "root"}
	m := newTestModel(root)

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	assert.Nil(t, cmd)
	assert.Zero(t, root.keys)
}

func TestStatsMessageUpdatesHeader(t *testing.T) {
	m := newTestModel(&stubScreen{title: "Campaign"})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	updated, _ = updated.Update(statsMsg{Stats: layout.HeaderStats{Diamonds: 42, XP: 310, Streak: 3}})

	am := updated.(AppModel)
	assert.Equal(t, 42, am.stats.Diamonds)
	assert.Equal(t, 3, am.stats.Streak)
	assert.Equal(t, 100, am.width)
	_ = am.View()
}

func TestResumeReachesActiveScreen(t *testing.T) {
	root := &stubScreen{title: "root"}
	m := newTestModel(root)

	_, cmd := m.Update(screen.ResumeMsg{})
	assert.Nil(t, cmd)
	assert.Equal(t, 1, root.resumes)
}
