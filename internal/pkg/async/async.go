package async

import (
	"strings"
	"sync"
)

// Errors collects the failures of concurrently run errables.
type Errors struct {
	E []error
}

var _ error = (*Errors)(nil)

func (e Errors) Wrapped() error {
	if len(e.E) == 0 {
		return nil
	}
	return e
}

func (e Errors) Error() string {
	msgs := make([]string, 0, len(e.E))
	for _, err := range e.E {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, ", ")
}

// Unwrap lets errors.Is and errors.As look through every collected error.
func (e Errors) Unwrap() []error {
	return e.E
}

// Errable runs fn on its own goroutine and delivers its result on the returned channel.
func Errable(fn func() error) <-chan error {
	ch := make(chan error, 1)
	go func() {
		ch <- fn()
		close(ch)
	}()
	return ch
}

// WaitAll waits for every errable and returns all non-nil errors, in argument order.
func WaitAll(chans ...<-chan error) error {
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs = make([]error, len(chans))
	)
	wg.Add(len(chans))
	for i, ch := range chans {
		go func(i int, ch <-chan error) {
			defer wg.Done()
			if err, open := <-ch; open && err != nil {
				mu.Lock()
				errs[i] = err
				mu.Unlock()
			}
		}(i, ch)
	}
	wg.Wait()

	collected := Errors{}
	for _, err := range errs {
		if err != nil {
			collected.E = append(collected.E, err)
		}
	}
	return collected.Wrapped()
}
