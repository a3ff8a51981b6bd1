package settings

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Store persists the settings record.
type Store interface {
	Load(ctx context.Context) (Settings, error)
	Save(ctx context.Context, s Settings) error
	Reset(ctx context.Context) error
}

const defaultPersistTimeout = 3 * time.Second

// Manager owns the process-wide settings value. Reads and changes are
// synchronous; writes to the store run in the background and only log on
// failure, so a broken store never holds up a calculation.
type Manager struct {
	store   Store
	logger  *zap.Logger
	timeout time.Duration

	mu      sync.Mutex
	current Settings
	seq     uint64

	// saveMu orders background writes; saved is the last written seq.
	saveMu  sync.Mutex
	saved   uint64
	pending sync.WaitGroup
}

func NewManager(store Store, logger *zap.Logger, persistTimeout time.Duration) *Manager {
	if persistTimeout <= 0 {
		persistTimeout = defaultPersistTimeout
	}
	return &Manager{
		store:   store,
		logger:  logger,
		timeout: persistTimeout,
		current: Defaults(),
	}
}

// Load reads the stored record. On any error the defaults are used.
func (m *Manager) Load(ctx context.Context) Settings {
	s, err := m.store.Load(ctx)
	if err != nil {
		m.logger.Warn("Failed to load settings, using defaults", zap.Error(err))
		s = Defaults()
	}
	s = s.Normalize()

	m.mu.Lock()
	m.current = s
	m.mu.Unlock()

	m.logger.Debug("Settings loaded",
		zap.String("pricing_mode", s.PricingMode),
		zap.String("price_style", s.PriceStyle),
		zap.Bool("detail_mode", s.IsDetailMode))
	return s
}

func (m *Manager) Current() Settings {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Update applies fn to a copy of the current settings, keeps the result
// and persists it in the background.
func (m *Manager) Update(fn func(*Settings)) Settings {
	m.mu.Lock()
	next := m.current
	fn(&next)
	next = next.Normalize()
	m.current = next
	m.seq++
	seq := m.seq
	m.mu.Unlock()

	m.persist(seq, next)
	return next
}

func (m *Manager) ApplyPatch(p Patch) Settings {
	if p.Empty() {
		return m.Current()
	}
	return m.Update(func(s *Settings) {
		*s = p.Apply(*s)
	})
}

// Reset restores the defaults and clears the store.
func (m *Manager) Reset(ctx context.Context) Settings {
	m.mu.Lock()
	m.current = Defaults()
	m.seq++
	seq := m.seq
	m.mu.Unlock()

	m.saveMu.Lock()
	defer m.saveMu.Unlock()
	m.saved = seq

	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	if err := m.store.Reset(ctx); err != nil {
		m.logger.Warn("Failed to clear stored settings", zap.Error(err))
	}
	return Defaults()
}

// Flush waits for background saves to finish.
func (m *Manager) Flush() {
	m.pending.Wait()
}

func (m *Manager) persist(seq uint64, s Settings) {
	m.pending.Add(1)
	go func() {
		defer m.pending.Done()

		m.saveMu.Lock()
		defer m.saveMu.Unlock()
		if seq <= m.saved {
			// a newer value is already stored
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
		defer cancel()

		if err := m.store.Save(ctx, s); err != nil {
			m.logger.Warn("Failed to persist settings", zap.Error(err))
			return
		}
		m.saved = seq
	}()
}
