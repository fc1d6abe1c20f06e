package transfer

import "io"

// writer pairs an io.Writer with the io.Closer, if any, that flushes it.
type writer struct {
	io.Writer
	io.Closer
}

// Close calls the nested Closer when there is one.
func (w *writer) Close() error {
	if w.Closer != nil {
		return w.Closer.Close()
	}
	return nil
}
