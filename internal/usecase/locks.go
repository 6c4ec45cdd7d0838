package usecase

import "sync"

// callLocks serializa as submissões de disposição por lead: duas chamadas
// concorrentes para o mesmo call não podem intercalar o read-modify-write
// de status e contadores.
type callLocks struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func newCallLocks() *callLocks {
	return &callLocks{locks: make(map[int64]*sync.Mutex)}
}

// Acquire bloqueia o lock do call e devolve a função de liberação.
func (c *callLocks) Acquire(callID int64) func() {
	c.mu.Lock()
	l, ok := c.locks[callID]
	if !ok {
		l = &sync.Mutex{}
		c.locks[callID] = l
	}
	c.mu.Unlock()

	l.Lock()
	return l.Unlock
}
