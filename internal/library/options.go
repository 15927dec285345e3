package library

// Option configures the writers (EntryFactory, Reorganizer).
type Option func(*writerOptions)

type writerOptions struct {
	recorder    Recorder
	invalidator Invalidator
}

// WithRecorder sends the audit trail of writes to r.
func WithRecorder(r Recorder) Option {
	return func(o *writerOptions) { o.recorder = r }
}

// WithInvalidator replaces the default KeepCached policy.
func WithInvalidator(i Invalidator) Option {
	return func(o *writerOptions) { o.invalidator = i }
}

func buildOptions(opts []Option) writerOptions {
	o := writerOptions{
		recorder:    nopRecorder{},
		invalidator: KeepCached{},
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
