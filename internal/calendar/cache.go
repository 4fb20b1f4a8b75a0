package calendar

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Key identifica uma consulta de mês: salão, mês e filtros.
type Key struct {
	SalonID        uint
	Month          Month
	Statuses       []string
	ProfessionalID *uint
}

// String é estável: a ordem dos status não muda a chave.
func (k Key) String() string {
	statuses := append([]string(nil), k.Statuses...)
	sort.Strings(statuses)

	pro := "all"
	if k.ProfessionalID != nil {
		pro = fmt.Sprintf("%d", *k.ProfessionalID)
	}
	st := "all"
	if len(statuses) > 0 {
		st = strings.Join(statuses, ",")
	}

	return fmt.Sprintf("%d:%s:%s:%s", k.SalonID, k.Month, st, pro)
}

// Lookup é o resultado de um Get. Epoch é a geração do cache no momento da
// leitura; Set com uma Epoch vencida não grava nada.
type Lookup struct {
	Events []Event
	Hit    bool
	Epoch  int64
}

// Cache guarda meses já projetados. Contrato: toda mutação de agendamento
// chama InvalidateAll; não há expiração parcial por agendamento.
//
// O preenchimento é Get, consulta, Set(lookup.Epoch): se uma invalidação
// acontecer no meio, o Set é descartado e o mês antigo não volta ao cache.
type Cache interface {
	Get(ctx context.Context, key Key) (Lookup, error)
	Set(ctx context.Context, key Key, epoch int64, events []Event) error
	Invalidate(ctx context.Context, key Key) error
	InvalidateAll(ctx context.Context) error
}

// MemoryCache é o cache por processo.
type MemoryCache struct {
	mu      sync.RWMutex
	epoch   int64
	entries map[string][]Event
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: map[string][]Event{}}
}

func (c *MemoryCache) Get(_ context.Context, key Key) (Lookup, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	evs, ok := c.entries[key.String()]
	if !ok {
		return Lookup{Epoch: c.epoch}, nil
	}
	return Lookup{Events: append([]Event(nil), evs...), Hit: true, Epoch: c.epoch}, nil
}

func (c *MemoryCache) Set(_ context.Context, key Key, epoch int64, events []Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if epoch != c.epoch {
		return nil
	}
	c.entries[key.String()] = append([]Event(nil), events...)
	return nil
}

// Invalidate também avança a época: um preenchimento em curso da mesma
// chave não pode regravar o valor apagado.
func (c *MemoryCache) Invalidate(_ context.Context, key Key) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key.String())
	c.epoch++
	return nil
}

func (c *MemoryCache) InvalidateAll(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = map[string][]Event{}
	c.epoch++
	return nil
}

func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

var _ Cache = (*MemoryCache)(nil)
