package entity

import "sync"

// ValidationToken makes the remote settings validation (signature
// self-check plus gateway discovery) run at most once per request
// lifecycle. The orchestrating handler constructs one token per request
// and passes it down explicitly; there is no hidden process-wide
// "already validated" state.
type ValidationToken struct {
	once sync.Once
	ids  []string
	err  error
}

func NewValidationToken() *ValidationToken {
	return &ValidationToken{}
}

// Do runs the validation at most once and caches its outcome; repeated
// calls within the same request return the first result.
func (t *ValidationToken) Do(validate func() ([]string, error)) ([]string, error) {
	t.once.Do(func() {
		t.ids, t.err = validate()
	})
	return t.ids, t.err
}
