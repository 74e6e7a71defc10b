package emulator

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/verichain/verichain/emulator/types"
	"github.com/verichain/verichain/model/product"
)

// eventBroker fans out applied transactions to subscribers of a contract.
// Slow subscribers lose events instead of blocking the ledger.
type eventBroker struct {
	log    zerolog.Logger
	buffer int

	mu     sync.RWMutex
	nextID uint64
	subs   map[product.Address]map[uint64]chan types.Event
}

func newEventBroker(log zerolog.Logger, buffer int) *eventBroker {
	return &eventBroker{
		log:    log,
		buffer: buffer,
		subs:   make(map[product.Address]map[uint64]chan types.Event),
	}
}

func (b *eventBroker) subscribe(address product.Address) (<-chan types.Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	ch := make(chan types.Event, b.buffer)
	if b.subs[address] == nil {
		b.subs[address] = make(map[uint64]chan types.Event)
	}
	b.subs[address][id] = ch

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			delete(b.subs[address], id)
			if len(b.subs[address]) == 0 {
				delete(b.subs, address)
			}
			close(ch)
		})
	}
	return ch, unsubscribe
}

func (b *eventBroker) publish(event types.Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for id, ch := range b.subs[event.Contract] {
		select {
		case ch <- event:
		default:
			b.log.Warn().
				Uint64("subscriber", id).
				Str("tx_hash", event.TxHash).
				Msg("subscriber buffer full, dropping event")
		}
	}
}
