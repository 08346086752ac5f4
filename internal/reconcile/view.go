package reconcile

// View selects which tasks a list request wants to see.
type View string

const (
	ViewAll       View = "all"
	ViewActive    View = "active"
	ViewCompleted View = "completed"
)

// ParseView maps a query parameter to a View, defaulting to ViewAll.
func ParseView(raw string) View {
	switch View(raw) {
	case ViewActive:
		return ViewActive
	case ViewCompleted:
		return ViewCompleted
	default:
		return ViewAll
	}
}

// FilterTasks narrows a reconciled task list to the requested view.
func FilterTasks(tasks []Task, view View) []Task {
	if view == ViewAll {
		return tasks
	}

	filtered := make([]Task, 0, len(tasks))

	for _, task := range tasks {
		switch view {
		case ViewActive:
			if !task.Completed {
				filtered = append(filtered, task)
			}
		case ViewCompleted:
			if task.Completed {
				filtered = append(filtered, task)
			}
		}
	}

	return filtered
}
