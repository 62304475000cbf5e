package web

import (
	"sync"

	"github.com/trezcool/shule/core/school"
	"github.com/trezcool/shule/core/session"
)

// consoleState keeps one Dashboard per signed-in console session so that
// panel collections, search terms and pagination survive across requests.
// Dashboards are dropped on logout.
type consoleState struct {
	directory func(token string) school.Directory
	att       school.AttendanceComputer

	mu         sync.Mutex
	dashboards map[string]*school.Dashboard
}

func newConsoleState(directory func(string) school.Directory) *consoleState {
	return &consoleState{
		directory:  directory,
		att:        school.NewStubAttendance(),
		dashboards: make(map[string]*school.Dashboard),
	}
}

func (cs *consoleState) key(sess session.Session) string {
	if sess.SID != "" {
		return sess.SID
	}
	return sess.Token
}

func (cs *consoleState) dashboard(sess session.Session) *school.Dashboard {
	key := cs.key(sess)

	cs.mu.Lock()
	defer cs.mu.Unlock()

	if dash, ok := cs.dashboards[key]; ok {
		return dash
	}
	dash := school.NewDashboard(cs.directory(sess.Token), cs.att)
	cs.dashboards[key] = dash
	return dash
}

func (cs *consoleState) drop(sess session.Session) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	delete(cs.dashboards, cs.key(sess))
}
