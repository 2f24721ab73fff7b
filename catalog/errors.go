package catalog

import "errors"

var (
	// ErrModelClosed is returned when a task is submitted after Close.
	ErrModelClosed = errors.New("catalog model closed")

	// ErrNilTask is returned when a nil task is submitted.
	ErrNilTask = errors.New("task is nil")

	// ErrTaskFailed is returned when a task panics before producing a result.
	ErrTaskFailed = errors.New("catalog task failed")

	// ErrAppNotFound is returned when an update names an app not in the catalog.
	ErrAppNotFound = errors.New("app not in catalog")

	// ErrRepositoryRequired is returned by tasks that cannot run without storage.
	ErrRepositoryRequired = errors.New("app repository is required")
)
