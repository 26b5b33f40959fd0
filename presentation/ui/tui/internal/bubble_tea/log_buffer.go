package bubble_tea

import (
	"strings"
	"sync"
)

const defaultLogCapacity = 256

type LogFeed interface {
	Tail(limit int) []string
	Changes() <-chan struct{}
}

// LogBuffer keeps the last lines written to it. It is meant as an extra zap sink
// so the dashboard can show recent log lines.
type LogBuffer struct {
	mu       sync.Mutex
	capacity int
	lines    []string // pre-allocated at full capacity
	head     int      // next write position
	count    int      // valid entries (0..capacity)
	partial  string
	changes  chan struct{}
}

func NewLogBuffer(capacity int) *LogBuffer {
	if capacity <= 0 {
		capacity = defaultLogCapacity
	}
	return &LogBuffer{
		capacity: capacity,
		lines:    make([]string, capacity),
		changes:  make(chan struct{}, 1),
	}
}

func (b *LogBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	chunk := string(p)
	for len(chunk) > 0 {
		newlineIdx := strings.IndexByte(chunk, '\n')
		if newlineIdx < 0 {
			b.partial += chunk
			break
		}
		b.partial += chunk[:newlineIdx]
		b.appendLineLocked(strings.TrimRight(b.partial, "\r"))
		b.partial = ""
		chunk = chunk[newlineIdx+1:]
	}
	return len(p), nil
}

// Sync satisfies zapcore.WriteSyncer.
func (b *LogBuffer) Sync() error {
	return nil
}

func (b *LogBuffer) Tail(limit int) []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	if limit <= 0 || b.count == 0 {
		return nil
	}
	n := min(b.count, limit)
	out := make([]string, n)
	b.copyTailLocked(out, n)
	return out
}

func (b *LogBuffer) TailInto(dst []string, limit int) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	if limit <= 0 || len(dst) == 0 || b.count == 0 {
		return 0
	}
	n := min(b.count, limit, len(dst))
	b.copyTailLocked(dst, n)
	return n
}

// Changes signals after new lines were appended. Bursts coalesce into one signal.
func (b *LogBuffer) Changes() <-chan struct{} {
	return b.changes
}

func (b *LogBuffer) appendLineLocked(line string) {
	b.lines[b.head] = line
	b.head = (b.head + 1) % b.capacity
	if b.count < b.capacity {
		b.count++
	}
	select {
	case b.changes <- struct{}{}:
	default:
	}
}

func (b *LogBuffer) copyTailLocked(dst []string, n int) {
	start := (b.head - n + b.capacity) % b.capacity
	if start+n <= b.capacity {
		copy(dst, b.lines[start:start+n])
		return
	}
	first := b.capacity - start
	copy(dst, b.lines[start:])
	copy(dst[first:], b.lines[:n-first])
}
