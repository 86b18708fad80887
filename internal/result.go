package internal

// Result is the tagged union carried by every behavior cell and every
// event delivery: either a successfully produced value, or a failure
// that propagates as a first-class value rather than a control-flow
// exception (spec §3, §7).
type Result struct {
	ok    bool
	value any
	err   error
}

// ValueResult builds a successful result.
func ValueResult(v any) Result {
	return Result{ok: true, value: v}
}

// FailResult builds a failed result.
func FailResult(err error) Result {
	return Result{ok: false, err: err}
}

// IsFail reports whether the result carries a failure.
func (r Result) IsFail() bool {
	return !r.ok
}

// Value returns the carried value, or the zero value if this is a
// failure.
func (r Result) Value() any {
	return r.value
}

// Err returns the carried failure, or nil if this is a success.
func (r Result) Err() error {
	return r.err
}

// Unwrap returns the value, raising (as a Go error return) the
// carried failure if there is one. This is the "may raise" half of
// read vs. read_result (spec §4.E).
func (r Result) Unwrap() (any, error) {
	if !r.ok {
		return nil, r.err
	}
	return r.value, nil
}
