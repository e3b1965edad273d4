package leads

import "context"

// Task is what the tracker receives for a captured lead.
type Task struct {
	Name        string
	Description string
	Status      string
	Tags        []string
}

// Tracker port (interface untuk lead delivery)
type Tracker interface {
	// CreateTask forwards a lead task and returns the tracker's task id.
	CreateTask(ctx context.Context, t Task) (string, error)
	// Enabled reports whether a tracker credential is configured. When
	// false, lead delivery is silently skipped.
	Enabled() bool
}
