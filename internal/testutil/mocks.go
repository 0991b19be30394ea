package testutil

import (
	"errors"
	"strings"
	"sync"
)

// ErrSimulatedWrite is returned by MockWriter for a write configured with SetErrorOnNth.
var ErrSimulatedWrite = errors.New("simulated write error")

// MockWriter records writes and fails the ones it is told to.
// It is safe for concurrent use, so a test can read it while a command writes.
type MockWriter struct {
	mu     sync.Mutex
	data   strings.Builder
	writes int
	failAt int   // 1-based write number to fail, 0 for none
	always error // fails every write when set
}

// NewMockWriter creates a MockWriter that accepts every write.
func NewMockWriter() *MockWriter {
	return &MockWriter{}
}

// Write implements io.Writer. Failed writes are counted but not recorded.
func (mw *MockWriter) Write(p []byte) (int, error) {
	mw.mu.Lock()
	defer mw.mu.Unlock()

	mw.writes++
	switch {
	case mw.always != nil:
		return 0, mw.always
	case mw.writes == mw.failAt:
		return 0, ErrSimulatedWrite
	}
	return mw.data.Write(p)
}

// String returns everything written successfully.
func (mw *MockWriter) String() string {
	mw.mu.Lock()
	defer mw.mu.Unlock()
	return mw.data.String()
}

// WriteCount returns the number of Write calls, failed ones included.
func (mw *MockWriter) WriteCount() int {
	mw.mu.Lock()
	defer mw.mu.Unlock()
	return mw.writes
}

// SetErrorOnNth fails the nth Write call, counting from the last Reset.
func (mw *MockWriter) SetErrorOnNth(n int) {
	mw.mu.Lock()
	defer mw.mu.Unlock()
	mw.failAt = n
}

// SetAlwaysError fails every following write with err.
func (mw *MockWriter) SetAlwaysError(err error) {
	mw.mu.Lock()
	defer mw.mu.Unlock()
	mw.always = err
}

// Reset drops recorded data, counters and configured failures.
func (mw *MockWriter) Reset() {
	mw.mu.Lock()
	defer mw.mu.Unlock()
	mw.data.Reset()
	mw.writes = 0
	mw.failAt = 0
	mw.always = nil
}
