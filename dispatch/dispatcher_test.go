package dispatch_test

import (
	"bytes"
	"log"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/mlcompute/dispatch"
	"github.com/katalvlaran/mlcompute/matrix"
)

// stepClock advances by step on every reading.
type stepClock struct {
	mu   sync.Mutex
	t    time.Time
	step time.Duration
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(c.step)
	return c.t
}

// DispatcherSuite exercises the response envelope contract.
type DispatcherSuite struct {
	suite.Suite
	clock *stepClock
	logs  *bytes.Buffer
	d     *dispatch.Dispatcher
}

func (s *DispatcherSuite) SetupTest() {
	s.clock = &stepClock{t: time.Unix(0, 0), step: 7 * time.Millisecond}
	s.logs = &bytes.Buffer{}
	s.d = dispatch.New(
		dispatch.WithClock(s.clock.Now),
		dispatch.WithLogger(log.New(s.logs, "", 0)),
	)
}

func m(rows, cols uint32, data ...float32) *matrix.Matrix {
	mm := matrix.New(rows, cols, data)
	return &mm
}

func (s *DispatcherSuite) TestCompleted() {
	resp := s.d.Process(dispatch.Request{
		TaskID:    "t-1",
		Operation: "multiply",
		MatrixA:   m(2, 2, 1, 2, 3, 4),
		MatrixB:   m(2, 2, 5, 6, 7, 8),
	})

	s.Require().Equal(dispatch.StatusCompleted, resp.Status)
	s.Require().True(resp.OK())
	s.Equal("t-1", resp.TaskID)
	s.Empty(resp.ErrorMessage)
	s.Require().NotNil(resp.Result)
	s.Equal([]float32{19, 22, 43, 50}, resp.Result.Data)
	s.Equal(int64(7), resp.ExecutionTimeMs) // one clock step between start and end
	s.Contains(s.logs.String(), "matrix request completed: task=t-1")
}

func (s *DispatcherSuite) TestEngineFailures() {
	tests := []struct {
		req  dispatch.Request
		want string
	}{
		{dispatch.Request{Operation: "multiply", MatrixA: m(2, 3), MatrixB: m(2, 2)}, "Matrix dimensions do not match for the requested operation"},
		{dispatch.Request{Operation: "add", MatrixA: m(2, 2)}, "Matrix dimensions do not match for the requested operation"},
		{dispatch.Request{Operation: "inverse", MatrixA: m(2, 3)}, "Operation requires a square matrix"},
		{dispatch.Request{Operation: "inverse", MatrixA: m(2, 2, 1, 2, 2, 4)}, "Matrix is singular and cannot be inverted"},
		{dispatch.Request{Operation: "inverse", MatrixA: m(3, 3, 1, 0, 0, 0, 1, 0, 0, 0, 1)}, "Invalid matrix operation requested"},
		{dispatch.Request{Operation: "foo", MatrixA: m(1, 1, 1)}, "Invalid matrix operation requested"},
	}
	for _, tc := range tests {
		tc.req.TaskID = "task-" + tc.req.Operation
		resp := s.d.Process(tc.req)

		s.Equal(dispatch.StatusFailed, resp.Status, tc.want)
		s.Equal(tc.want, resp.ErrorMessage)
		s.Nil(resp.Result)
		s.Zero(resp.ExecutionTimeMs)
		s.Equal(tc.req.TaskID, resp.TaskID)
	}
}

func (s *DispatcherSuite) TestMissingMatrixA() {
	resp := s.d.Process(dispatch.Request{TaskID: "t-2", Operation: "transpose"})

	s.Equal(dispatch.StatusFailed, resp.Status)
	s.Equal("Missing matrix A", resp.ErrorMessage)
	s.Equal(dispatch.ErrMissingMatrixA.Error(), resp.ErrorMessage)
	s.Zero(resp.ExecutionTimeMs)
	s.Nil(resp.Result)
	s.Equal("t-2", resp.TaskID)

	// Missing A wins even for an unknown operation: the engine is never consulted.
	resp = s.d.Process(dispatch.Request{Operation: "foo"})
	s.Equal("Missing matrix A", resp.ErrorMessage)
}

func (s *DispatcherSuite) TestTaskIDPassthrough() {
	resp := s.d.Process(dispatch.Request{Operation: "transpose", MatrixA: m(1, 1, 3)})
	s.Equal("", resp.TaskID)

	withIDs := dispatch.New(dispatch.WithTaskIDs())
	resp = withIDs.Process(dispatch.Request{Operation: "transpose", MatrixA: m(1, 1, 3)})
	s.True(strings.HasPrefix(resp.TaskID, dispatch.TaskIDPrefix), resp.TaskID)
	s.Len(resp.TaskID, len(dispatch.TaskIDPrefix)+36)

	resp = withIDs.Process(dispatch.Request{TaskID: "keep-me", Operation: "transpose", MatrixA: m(1, 1, 3)})
	s.Equal("keep-me", resp.TaskID)
}

func (s *DispatcherSuite) TestStrictEngine() {
	d := dispatch.New(dispatch.WithEngine(matrix.NewEngine(matrix.WithStrictShape())))
	resp := d.Process(dispatch.Request{Operation: "transpose", MatrixA: m(2, 2, 1, 2, 3)})
	s.Equal(dispatch.StatusFailed, resp.Status)
	s.Equal("Matrix data length does not match its dimensions", resp.ErrorMessage)

	resp = s.d.Process(dispatch.Request{Operation: "transpose", MatrixA: m(2, 2, 1, 2, 3)})
	s.Equal(dispatch.StatusCompleted, resp.Status)
}

func (s *DispatcherSuite) TestStatusIdle() {
	rep := dispatch.New(dispatch.WithCapacity(4)).Status("probe")
	s.True(rep.Ready)
	s.Equal("probe", rep.ClientID)
	s.Equal(dispatch.DeviceInfo, rep.DeviceInfo)
	s.Zero(rep.CurrentLoad)
	s.Empty(rep.Error)
}

// TestStatusUnderLoad reads the status from inside the clock hook, i.e.
// while a request is in flight.
func (s *DispatcherSuite) TestStatusUnderLoad() {
	var (
		d      *dispatch.Dispatcher
		during dispatch.StatusReport
	)
	d = dispatch.New(
		dispatch.WithCapacity(1),
		dispatch.WithClock(func() time.Time {
			during = d.Status("probe")
			return time.Unix(0, 0)
		}),
	)
	d.Process(dispatch.Request{Operation: "transpose", MatrixA: m(1, 1, 1)})

	s.False(during.Ready)
	s.Equal(1.0, during.CurrentLoad)
	s.NotEmpty(during.Error)
	s.Zero(d.InFlight())
}

func (s *DispatcherSuite) TestOptionPanics() {
	s.Panics(func() { dispatch.WithCapacity(0) })
	s.Panics(func() { dispatch.WithWorkers(-1) })
}

func TestDispatcherSuite(t *testing.T) {
	suite.Run(t, new(DispatcherSuite))
}
