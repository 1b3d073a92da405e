package main

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/heartmarshall/ewasl-backend/internal/connect"
)

// terminal asks the user to open consent pages themselves. A terminal has
// no popup to watch, so its windows only close when the attempt ends.
type terminal struct {
	out io.Writer
}

func newTerminal(out io.Writer) *terminal { return &terminal{out: out} }

func (t *terminal) Navigate(_ context.Context, url string) error {
	_, err := fmt.Fprintf(t.out, "Open this URL to authorize:\n\n  %s\n\n", url)
	return err
}

func (t *terminal) OpenPopup(ctx context.Context, url string) (connect.Window, error) {
	if err := t.Navigate(ctx, url); err != nil {
		return nil, err
	}
	fmt.Fprintln(t.out, "Waiting for the authorization to finish (Ctrl-C to cancel)...")
	return &window{closed: make(chan struct{})}, nil
}

type window struct {
	closed chan struct{}
	once   sync.Once
}

func (w *window) Closed() <-chan struct{} { return w.closed }

func (w *window) Close() { w.once.Do(func() { close(w.closed) }) }
