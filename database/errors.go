package database

// The store surfaces three failure classes. Callers catch them at the
// call site and turn them into a user-visible message; nothing here is
// meant to reach a global handler.

type OpenError struct{ Err error }

func (e *OpenError) Error() string { return "store: open: " + e.Err.Error() }
func (e *OpenError) Unwrap() error { return e.Err }

type WriteError struct{ Err error }

func (e *WriteError) Error() string { return "store: write: " + e.Err.Error() }
func (e *WriteError) Unwrap() error { return e.Err }

type ReadError struct{ Err error }

func (e *ReadError) Error() string { return "store: read: " + e.Err.Error() }
func (e *ReadError) Unwrap() error { return e.Err }
