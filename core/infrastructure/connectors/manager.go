package connectors

import (
	"fmt"
	"sync"

	"github.com/smartbridge/smartbridge/core/domain"
	"github.com/smartbridge/smartbridge/core/domain/interfaces"
	"github.com/smartbridge/smartbridge/core/infrastructure/logging"
)

// ConnectorManager implements the ConnectorManager interface. Readers always
// see either the previous or the next connector, never a mix. A swapped out
// connector stays open until its last lease is released.
type ConnectorManager struct {
	active interfaces.Connector
	leases map[interfaces.Connector]*lease
	mu     sync.Mutex
}

type lease struct {
	holders int
	retired bool
}

// NewConnectorManager creates a manager serving initial, which may be nil
func NewConnectorManager(initial interfaces.Connector) *ConnectorManager {
	return &ConnectorManager{
		active: initial,
		leases: make(map[interfaces.Connector]*lease),
	}
}

// Active returns the connector currently serving requests
func (m *ConnectorManager) Active() (interfaces.Connector, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active == nil {
		return nil, domain.ErrNoActiveDatabase
	}
	return m.active, nil
}

// Acquire returns the active connector and a release func. The connector is
// not closed by Swap while the lease is held. release is safe to call twice.
func (m *ConnectorManager) Acquire() (interfaces.Connector, func(), error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active == nil {
		return nil, nil, domain.ErrNoActiveDatabase
	}

	conn := m.active
	l, ok := m.leases[conn]
	if !ok {
		l = &lease{}
		m.leases[conn] = l
	}
	l.holders++

	var once sync.Once
	return conn, func() { once.Do(func() { m.release(conn) }) }, nil
}

func (m *ConnectorManager) release(conn interfaces.Connector) {
	m.mu.Lock()
	l, ok := m.leases[conn]
	if !ok {
		m.mu.Unlock()
		return
	}
	l.holders--
	drained := l.retired && l.holders == 0
	if l.holders == 0 {
		delete(m.leases, conn)
	}
	m.mu.Unlock()

	if drained {
		if err := closeConnector(conn); err != nil {
			logging.New("connector").Warnf("Closing retired database: %v", err)
		}
	}
}

// Swap installs conn. The previous connector is closed now when no lease
// holds it, otherwise when the last lease is released.
func (m *ConnectorManager) Swap(conn interfaces.Connector) error {
	if conn == nil {
		return domain.ErrNoActiveDatabase
	}

	m.mu.Lock()
	prev := m.active
	m.active = conn
	inUse := false
	if l, ok := m.leases[prev]; ok && prev != conn {
		l.retired = true
		inUse = l.holders > 0
	}
	m.mu.Unlock()

	log := logging.New("connector")
	log.Infof("Active database is now '%s' (%s)", conn.Name(), conn.Dialect())

	if prev == nil || prev == conn {
		return nil
	}
	if inUse {
		log.Debugf("Deferring close of '%s' until in-flight work finishes", prev.Name())
		return nil
	}
	return closeConnector(prev)
}

// CloseAll closes the active connector
func (m *ConnectorManager) CloseAll() error {
	m.mu.Lock()
	conn := m.active
	m.active = nil
	m.mu.Unlock()

	if conn == nil {
		return nil
	}

	log := logging.New("connector")
	log.Debugf("Closing connector '%s'", conn.Name())
	return closeConnector(conn)
}

func closeConnector(conn interfaces.Connector) error {
	if err := conn.Close(); err != nil {
		return fmt.Errorf("connector '%s': %w", conn.Name(), err)
	}
	return nil
}
