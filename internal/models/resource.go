package models

import "sync"

// ResourceStatus is the state of an asynchronous operation.
type ResourceStatus string

const (
	StatusLoading ResourceStatus = "loading"
	StatusSuccess ResourceStatus = "success"
	StatusError   ResourceStatus = "error"
)

// Resource is a three-state async result: it starts in the loading
// state and resolves to success or error exactly once. The terminal
// state is never revisited; later resolutions are ignored.
type Resource struct {
	mu      sync.Mutex
	status  ResourceStatus
	message string
	done    chan struct{}
}

// NewResource returns a resource in the loading state.
func NewResource() *Resource {
	return &Resource{
		status: StatusLoading,
		done:   make(chan struct{}),
	}
}

// Succeed resolves the resource to the success state.
func (r *Resource) Succeed() {
	r.resolve(StatusSuccess, "")
}

// Fail resolves the resource to the error state with a diagnostic
// message.
func (r *Resource) Fail(message string) {
	r.resolve(StatusError, message)
}

func (r *Resource) resolve(status ResourceStatus, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.status != StatusLoading {
		return
	}
	r.status = status
	r.message = message
	close(r.done)
}

// Status returns the current state and, for errors, the diagnostic
// message.
func (r *Resource) Status() (ResourceStatus, string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status, r.message
}

// Done returns a channel closed when the resource reaches a terminal
// state.
func (r *Resource) Done() <-chan struct{} {
	return r.done
}
