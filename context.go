package stagehand

import "sync"

// SharedWorker is the worker id of a context that is not bound to any
// particular worker goroutine, e.g. the master context used during setup.
const SharedWorker = -1

// Job holds state shared by every worker of one job: a name and a
// mutex-guarded key/value store. One Job instance is created per host job and
// referenced by every worker's Context.
type Job struct {
	Name string

	mu     sync.RWMutex
	values map[string]any
}

// NewJob creates a named job with an empty shared store.
func NewJob(name string) *Job {
	return &Job{
		Name:   name,
		values: make(map[string]any),
	}
}

// Set stores a shared value under key.
func (j *Job) Set(key string, value any) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.values[key] = value
}

// Get returns the shared value for key, or false if it was never set.
func (j *Job) Get(key string) (any, bool) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	v, ok := j.values[key]
	return v, ok
}

// Context is the execution context an action is bound to: the identity of the
// worker goroutine driving it plus the job-wide shared state. Contexts are
// cheap values; each worker gets its own and rebinding an action to a new
// worker means handing it that worker's Context.
type Context struct {
	// Worker identifies the worker goroutine, or SharedWorker when the
	// context is not tied to one.
	Worker int

	// Job is the shared job state, common to all workers.
	Job *Job
}

// NewContext creates a context bound to the given worker of a job.
func NewContext(job *Job, worker int) *Context {
	return &Context{Worker: worker, Job: job}
}
