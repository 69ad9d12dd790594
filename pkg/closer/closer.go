// Package closer releases the files a command opened, once it is done with
// them.
package closer

import (
	"fmt"
	"io"

	"go.uber.org/multierr"
)

type namedCloser struct {
	name  string
	close func() error
}

// Stack closes resources in the reverse order they were added.
type Stack struct {
	closers []namedCloser
}

// Add registers c under name. A nil closer is ignored.
func (s *Stack) Add(name string, c io.Closer) {
	if c == nil {
		return
	}
	s.closers = append(s.closers, namedCloser{name: name, close: c.Close})
}

// AddFunc registers a close function under name.
func (s *Stack) AddFunc(name string, fn func() error) {
	s.closers = append(s.closers, namedCloser{name: name, close: fn})
}

// Close runs every registered closer, latest first, and returns all of their
// errors combined. The stack is empty afterwards.
func (s *Stack) Close() error {
	var err error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if closeErr := s.closers[i].close(); closeErr != nil {
			err = multierr.Append(err, fmt.Errorf("failed to close %s: %w", s.closers[i].name, closeErr))
		}
	}
	s.closers = nil
	return err
}

// CloseInto closes the stack and appends any error to *errp. It is meant to be
// deferred by functions with a named error result.
func (s *Stack) CloseInto(errp *error) {
	multierr.AppendInto(errp, s.Close())
}
