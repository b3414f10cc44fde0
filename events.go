package budget

// EventKind tells which mutation happened.
type EventKind int

const (
	IncomeAdded EventKind = iota
	ExpenseAdded
	IncomeRemoved
	ExpenseRemoved
)

func (k EventKind) String() string {
	switch k {
	case IncomeAdded:
		return "income added"
	case ExpenseAdded:
		return "expense added"
	case IncomeRemoved:
		return "income removed"
	case ExpenseRemoved:
		return "expense removed"
	default:
		return "unknown"
	}
}

// Event describes a mutation of the ledger.
//
// Index is the position of the entry at the time of the mutation: where it
// was appended, or where it was removed from.
type Event struct {
	Kind  EventKind
	Index int
	ID    EntryID
}

// Subscribe registers fn to be called after every mutation of the ledger,
// including mutations whose save failed. fn is called synchronously, outside
// the ledger lock, so it may read the ledger.
//
// The returned function cancels the subscription.
func (l *Ledger) Subscribe(fn func(Event)) (cancel func()) {
	l.subMu.Lock()
	defer l.subMu.Unlock()
	id := l.nextSub
	l.nextSub++
	l.subscribers[id] = fn
	return func() {
		l.subMu.Lock()
		defer l.subMu.Unlock()
		delete(l.subscribers, id)
	}
}

func (l *Ledger) publish(e Event) {
	l.subMu.Lock()
	subs := make([]func(Event), 0, len(l.subscribers))
	for i := 0; i < l.nextSub; i++ {
		if fn, ok := l.subscribers[i]; ok {
			subs = append(subs, fn)
		}
	}
	l.subMu.Unlock()

	for _, fn := range subs {
		fn(e)
	}
}
