package school

import (
	"math/rand"
	"sync"
	"time"
)

// Stats are the dashboard's derived counters; recomputed after every refresh,
// never persisted.
type Stats struct {
	Students   int     `json:"students"`
	Teachers   int     `json:"teachers"`
	Courses    int     `json:"courses"`
	Attendance float64 `json:"attendance"` // percentage
}

// AttendanceComputer derives the attendance percentage shown on the
// dashboard.
type AttendanceComputer interface {
	Compute(students []Student) float64
}

// StubAttendance stands in while the console does not consume attendance
// records: it returns a pseudo-random percentage in [80,100) regardless of
// input.
// TODO: back this with /api/attendance once the console consumes that resource.
type StubAttendance struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

var _ AttendanceComputer = (*StubAttendance)(nil)

func NewStubAttendance() *StubAttendance {
	return &StubAttendance{rnd: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

func (sa *StubAttendance) Compute([]Student) float64 {
	sa.mu.Lock()
	defer sa.mu.Unlock()
	return 80 + sa.rnd.Float64()*20
}
