// Package board is the browser-side Presentation Adapter.
//
// A Board mirrors the cards the registry asks for and republishes every
// change to subscribers (the web server's event streams). It also acts as
// the registry's Notifier: a completion cue becomes an update the page
// answers by playing its audio element.
package board

import (
	"sync"

	"github.com/google/uuid"
	"github.com/multitimer/multitimer-go/pkg/countdown"
	"github.com/multitimer/multitimer-go/pkg/logs"
	"github.com/sirupsen/logrus"
)

// UpdateType names a card change.
type UpdateType string

// Update types, as sent to the page.
const (
	UpdateCreated UpdateType = "card-created"
	UpdateText    UpdateType = "card-text"
	UpdateEnded   UpdateType = "card-ended"
	UpdateAction  UpdateType = "card-action"
	UpdateRemoved UpdateType = "card-removed"
	UpdateCue     UpdateType = "cue"
)

// DefaultBuffer is the per-subscriber channel capacity.
const DefaultBuffer = 64

// Card is the rendered state of one timer.
type Card struct {
	ID          countdown.ID `json:"id"`
	Text        string       `json:"text"`
	Ended       bool         `json:"ended"`
	ActionLabel string       `json:"actionLabel"`
}

// Update is one change published to subscribers.
// Card is the card state after the change; it is nil for cues.
type Update struct {
	Type UpdateType `json:"type"`
	Card *Card      `json:"card,omitempty"`
}

// Subscription is a live feed of updates.
type Subscription struct {
	ID string
	C  <-chan Update
}

// Board holds cards and subscribers.
type Board struct {
	mu sync.Mutex

	cards map[countdown.ID]*Card
	order []countdown.ID

	subs    map[string]chan Update
	dropped uint64

	deleteLabel string
	logger      logrus.FieldLogger
}

// New creates an empty board. deleteLabel is the action label of a
// running card.
func New(deleteLabel string, logger logrus.FieldLogger) *Board {
	if deleteLabel == "" {
		deleteLabel = "Delete"
	}
	if logger == nil {
		logger = logs.Discard()
	}
	return &Board{
		cards:       make(map[countdown.ID]*Card),
		subs:        make(map[string]chan Update),
		deleteLabel: deleteLabel,
		logger:      logger,
	}
}

// Subscribe registers a feed with the given channel capacity. The returned
// function unsubscribes and closes the channel; it is safe to call twice.
func (b *Board) Subscribe(buffer int) (Subscription, func()) {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	id := uuid.New().String()
	ch := make(chan Update, buffer)

	b.mu.Lock()
	b.subs[id] = ch
	b.mu.Unlock()

	b.logger.WithField("subscriber", id).Debug("subscribed")

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, id)
			b.mu.Unlock()
			close(ch)
			b.logger.WithField("subscriber", id).Debug("unsubscribed")
		})
	}
	return Subscription{ID: id, C: ch}, cancel
}

// Subscribers returns the number of live subscriptions.
func (b *Board) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// Dropped returns how many updates were discarded for slow subscribers.
func (b *Board) Dropped() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.dropped
}

// Snapshot returns all cards in creation order.
func (b *Board) Snapshot() []Card {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]Card, 0, len(b.order))
	for _, id := range b.order {
		out = append(out, *b.cards[id])
	}
	return out
}

// Card returns the card for id.
func (b *Board) Card(id countdown.ID) (Card, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	c, ok := b.cards[id]
	if !ok {
		return Card{}, false
	}
	return *c, true
}

// CreateCard implements countdown.Presenter.
func (b *Board) CreateCard(id countdown.ID, text string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	c := &Card{ID: id, Text: text, ActionLabel: b.deleteLabel}
	if _, exists := b.cards[id]; !exists {
		b.order = append(b.order, id)
	}
	b.cards[id] = c
	b.publish(UpdateCreated, c)
}

// UpdateCardText implements countdown.Presenter.
func (b *Board) UpdateCardText(id countdown.ID, text string) {
	b.modify(id, UpdateText, func(c *Card) { c.Text = text })
}

// MarkCardEnded implements countdown.Presenter.
func (b *Board) MarkCardEnded(id countdown.ID) {
	b.modify(id, UpdateEnded, func(c *Card) { c.Ended = true })
}

// RelabelAction implements countdown.Presenter.
func (b *Board) RelabelAction(id countdown.ID, label string) {
	b.modify(id, UpdateAction, func(c *Card) { c.ActionLabel = label })
}

// RemoveCard implements countdown.Presenter.
func (b *Board) RemoveCard(id countdown.ID) {
	b.mu.Lock()
	defer b.mu.Unlock()

	c, ok := b.cards[id]
	if !ok {
		return
	}
	delete(b.cards, id)
	for i, v := range b.order {
		if v == id {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
	b.publish(UpdateRemoved, c)
}

// PlayCompletionCue implements countdown.Notifier.
func (b *Board) PlayCompletionCue() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.publish(UpdateCue, nil)
}

func (b *Board) modify(id countdown.ID, typ UpdateType, fn func(*Card)) {
	b.mu.Lock()
	defer b.mu.Unlock()

	c, ok := b.cards[id]
	if !ok {
		return
	}
	fn(c)
	b.publish(typ, c)
}

// publish sends to every subscriber without blocking. Callers hold b.mu.
func (b *Board) publish(typ UpdateType, c *Card) {
	u := Update{Type: typ}
	if c != nil {
		snapshot := *c
		u.Card = &snapshot
	}
	for id, ch := range b.subs {
		select {
		case ch <- u:
		default:
			b.dropped++
			b.logger.WithFields(logrus.Fields{"subscriber": id, "type": typ}).Warn("subscriber too slow, update dropped")
		}
	}
}

var (
	_ countdown.Presenter = (*Board)(nil)
	_ countdown.Notifier  = (*Board)(nil)
)
