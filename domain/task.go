package domain

import "time"

// View names a task-filtering mode.
type View string

const (
	ViewToday    View = "today"
	ViewUpcoming View = "upcoming"
	ViewOverview View = "overview"
	ViewCalendar View = "calendar"
)

// Task represents a single todo item owned by a list.
type Task struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Completed   bool       `json:"completed"`
	ListID      string     `json:"list"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Tags        []string   `json:"tags"`
	CreatedAt   time.Time  `json:"created_at"`
}

// HasTag reports whether the task's tag set contains name.
func (t *Task) HasTag(name string) bool {
	if t == nil {
		return false
	}
	for _, tag := range t.Tags {
		if tag == name {
			return true
		}
	}
	return false
}

// DueOn reports whether the task is due on the same civil date as reference.
func (t *Task) DueOn(reference time.Time) bool {
	if t == nil || t.DueDate == nil {
		return false
	}
	return sameDay(*t.DueDate, reference)
}

// DueAfter reports whether the task is due on a later civil date than reference.
func (t *Task) DueAfter(reference time.Time) bool {
	if t == nil || t.DueDate == nil {
		return false
	}
	due := *t.DueDate
	y1, m1, d1 := due.Date()
	y2, m2, d2 := reference.Date()
	if y1 != y2 {
		return y1 > y2
	}
	if m1 != m2 {
		return m1 > m2
	}
	return d1 > d2
}

func sameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
