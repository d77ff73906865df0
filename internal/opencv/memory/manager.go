package memory

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"filter-viewer/internal/logger"
	"filter-viewer/internal/opencv/safe"

	"gocv.io/x/gocv"
)

// DefaultMaxBytes caps the pixel memory a single render may hold at once.
const DefaultMaxBytes = 1 << 30

var ErrBudgetExceeded = errors.New("memory budget exceeded")

// Manager accounts for Mats held by the filter engine and refuses work that
// would push live pixel memory past the budget.
type Manager struct {
	allocations map[uint64]*AllocationRecord
	mu          sync.RWMutex
	stats       Stats
	logger      logger.Logger
}

type AllocationRecord struct {
	Tag       string
	CreatedAt time.Time
	Size      int64
}

type Stats struct {
	TotalAllocated int64
	TotalReleased  int64
	ActiveMats     int64
	PeakBytes      int64
	MaxAllowed     int64
}

// InUse is the number of bytes currently tracked.
func (s Stats) InUse() int64 {
	return s.TotalAllocated - s.TotalReleased
}

func NewManager(log logger.Logger, maxBytes int64) *Manager {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Manager{
		allocations: make(map[uint64]*AllocationRecord),
		stats:       Stats{MaxAllowed: maxBytes},
		logger:      log,
	}
}

// Reserve checks that a rows x cols Mat of matType fits in the remaining
// budget. Nothing is recorded.
func (m *Manager) Reserve(rows, cols int, matType gocv.MatType) error {
	need := int64(rows) * int64(cols) * int64(MatTypeSize(matType))

	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.stats.InUse()+need > m.stats.MaxAllowed {
		return fmt.Errorf("%w: need %d bytes, %d of %d in use",
			ErrBudgetExceeded, need, m.stats.InUse(), m.stats.MaxAllowed)
	}
	return nil
}

// Track records mat as live. Tracking the same Mat twice is a no-op.
func (m *Manager) Track(mat *safe.Mat) {
	if mat == nil || !mat.IsValid() {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	id := mat.ID()
	if _, exists := m.allocations[id]; exists {
		return
	}

	size := int64(mat.Rows()) * int64(mat.Cols()) * int64(MatTypeSize(mat.Type()))
	m.allocations[id] = &AllocationRecord{
		Tag:       mat.Tag(),
		CreatedAt: time.Now(),
		Size:      size,
	}
	m.stats.TotalAllocated += size
	m.stats.ActiveMats++
	if in := m.stats.InUse(); in > m.stats.PeakBytes {
		m.stats.PeakBytes = in
	}
}

// Release closes mat and drops its record.
func (m *Manager) Release(mat *safe.Mat) {
	if mat == nil {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	id := mat.ID()
	record, exists := m.allocations[id]
	mat.Close()
	if !exists {
		m.logger.Warning("MemoryManager", "released untracked Mat", map[string]interface{}{
			"tag": mat.Tag(),
		})
		return
	}

	delete(m.allocations, id)
	m.stats.TotalReleased += record.Size
	m.stats.ActiveMats--
}

func (m *Manager) GetStats() Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.stats
}

// Cleanup forgets every live record; the Mats themselves are closed by
// their owners or finalizers.
func (m *Manager) Cleanup() {
	m.mu.Lock()
	defer m.mu.Unlock()

	leaked := len(m.allocations)
	for id, record := range m.allocations {
		m.stats.TotalReleased += record.Size
		delete(m.allocations, id)
	}
	m.stats.ActiveMats = 0

	if leaked > 0 {
		m.logger.Warning("MemoryManager", "live Mats at cleanup", map[string]interface{}{
			"count": leaked,
		})
	}
}

// MatTypeSize is the number of bytes per pixel for matType.
func MatTypeSize(matType gocv.MatType) int {
	switch matType {
	case gocv.MatTypeCV8UC1:
		return 1
	case gocv.MatTypeCV8UC3:
		return 3
	case gocv.MatTypeCV8UC4:
		return 4
	case gocv.MatTypeCV16UC1:
		return 2
	case gocv.MatTypeCV16UC3:
		return 6
	case gocv.MatTypeCV16UC4:
		return 8
	case gocv.MatTypeCV32FC1:
		return 4
	case gocv.MatTypeCV32FC3:
		return 12
	case gocv.MatTypeCV32FC4:
		return 16
	default:
		return 1
	}
}
