package events

import "sync"

// BaseEvent is the common payload for DDL events: a name, a flag that lets a
// listener suppress the platform's default SQL generation, and a buffer a
// listener can append replacement SQL statements into. The schema manager
// reads both back after dispatching.
type BaseEvent struct {
	name            string
	preventDefault  bool
	sql             []string
	mutex           sync.Mutex
}

// NewBaseEvent creates a BaseEvent with the given name.
func NewBaseEvent(name string) *BaseEvent {
	return &BaseEvent{name: name}
}

func (e *BaseEvent) GetName() string {
	return e.name
}

// PreventDefault tells the dispatching code to skip its own SQL generation
// and use only what listeners pushed via AddSQL.
func (e *BaseEvent) PreventDefault() {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.preventDefault = true
}

func (e *BaseEvent) IsDefaultPrevented() bool {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	return e.preventDefault
}

// AddSQL appends a replacement or supplementary SQL statement.
func (e *BaseEvent) AddSQL(sql string) {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.sql = append(e.sql, sql)
}

// SQL returns the statements pushed by listeners, in push order.
func (e *BaseEvent) SQL() []string {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	out := make([]string, len(e.sql))
	copy(out, e.sql)
	return out
}
