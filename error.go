package main

import "fmt"

// Error codes for the fatal conditions of a run
const (
	CodeFileType int32 = iota + 1
	CodeInputRead
	CodeTreeID
	CodeDateSection
	CodeFilterRead
	CodeFilterMismatch
	CodeWrite
	CodeConfig
)

// InjectError is the error struct for the injector
type InjectError struct {
	Detail   string
	Code     int32
	Location string
	Err      error
}

func (e InjectError) Error() string {
	if e.Err == nil {
		return e.Detail
	}
	return fmt.Sprintf("%v\n\t%v", e.Detail, e.Err)
}

func (e InjectError) Unwrap() error {
	return e.Err
}

// NewError builds an InjectError for a failure at the given input, filter
// or output location
func NewError(code int32, location, detail string, err error) InjectError {
	return InjectError{
		Code:     code,
		Location: location,
		Detail:   detail,
		Err:      err,
	}
}
