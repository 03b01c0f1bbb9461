package bot

import (
	"context"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// dispatcher fans updates out to one ordered queue per owner. Updates for
// the same owner are handled strictly in arrival order, which is what
// keeps the session store's action/draft pair consistent; different
// owners run concurrently.
//
// enqueue and drain must be called from the same goroutine (the polling
// loop): drain closes the queues, which is only safe once no enqueue can
// be in flight.
type dispatcher struct {
	handle func(context.Context, tgbotapi.Update)

	mu     sync.Mutex
	queues map[int64]chan tgbotapi.Update
	closed bool
	wg     sync.WaitGroup
}

const ownerQueueDepth = 16

func newDispatcher(handle func(context.Context, tgbotapi.Update)) *dispatcher {
	return &dispatcher{
		handle: handle,
		queues: make(map[int64]chan tgbotapi.Update),
	}
}

// enqueue routes one update to its owner's queue, starting a worker for
// owners not seen before. Updates arriving after drain are dropped.
func (d *dispatcher) enqueue(ctx context.Context, ownerID int64, update tgbotapi.Update) {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}

	queue, ok := d.queues[ownerID]
	if !ok {
		queue = make(chan tgbotapi.Update, ownerQueueDepth)
		d.queues[ownerID] = queue
		d.wg.Add(1)
		go d.worker(ctx, queue)
	}
	d.mu.Unlock()

	// A full queue blocks here, stalling the polling loop until the owner
	// drains. The alternatives both break a guarantee: dropping loses an
	// accepted update, spilling to a new goroutine loses per-owner order.
	// One chatty owner throttling intake is the accepted trade.
	select {
	case queue <- update:
	case <-ctx.Done():
	}
}

func (d *dispatcher) worker(ctx context.Context, queue <-chan tgbotapi.Update) {
	defer d.wg.Done()
	// Cancellation only stops intake. An update that made it into a queue
	// is handled to completion, so drain must not let the run context
	// abort a storage write already in flight.
	ctx = context.WithoutCancel(ctx)
	for update := range queue {
		d.handle(ctx, update)
	}
}

// drain stops intake and waits until every queued update has been
// handled. In-flight storage writes finish; nothing is aborted.
func (d *dispatcher) drain() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	for _, queue := range d.queues {
		close(queue)
	}
	d.mu.Unlock()

	d.wg.Wait()
}
