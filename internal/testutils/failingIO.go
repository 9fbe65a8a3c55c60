package testutils

import (
	"bytes"
	"fmt"
)

// This file provides an IO Reader and an IO Writer that simulate IO failures.
// This is intended to test error reporting of the report renderer (writes) and of the primality tester (entropy reads).

// FaultyBuffer is an [io.Reader] and [io.Writer] with similar functionality as [bytes.Buffer].
// After either reading or writing faultThreshold many bytes, it will generate a customizable IO error.
//
// The zero value of FaultyBuffer is invalid (it has no designated error) and panics on usage.
// Use NewFaultyBuffer to create a valid FaultyBuffer.
type FaultyBuffer struct {
	designatedErr  error
	faultThreshold int
	buf            bytes.Buffer
	alreadyRead    int
	alreadyWritten int
}

// NewFaultyBuffer creates a new [FaultyBuffer] with the given fault threshold and non-nil designated error.
//
// Reads are served from content (which may be nil). Calling NewFaultyBuffer with a nil designatedError panics.
func NewFaultyBuffer(faultThreshold int, designatedError error, content []byte) *FaultyBuffer {
	if designatedError == nil {
		panic("Called NewFaultyBuffer with nil designated error")
	}
	fb := &FaultyBuffer{designatedErr: designatedError, faultThreshold: faultThreshold}
	fb.buf.Write(content)
	return fb
}

// Read is provided to satisfy the [io.Reader] interface.
// After reading a total of faultThreshold bytes, we return the designated error.
func (fb *FaultyBuffer) Read(p []byte) (n int, err error) {
	if fb.designatedErr == nil {
		panic("FaultyBuffer without designated error")
	}
	if len(p) == 0 {
		return 0, nil
	}
	if fb.alreadyRead > fb.faultThreshold {
		return 0, fmt.Errorf("repeated read call to already faulty reader, error %w", fb.designatedErr)
	}
	L := len(p)
	fault := false
	if fb.alreadyRead+L > fb.faultThreshold {
		fault = true
		L = fb.faultThreshold - fb.alreadyRead
	}
	n, _ = fb.buf.Read(p[0:L])
	fb.alreadyRead += n
	if fault {
		err = fb.designatedErr
		fb.alreadyRead += 1 // to differentiate repeated calls
	}
	return
}

// Write is provided to satisfy the [io.Writer] interface.
// After writing a total of faultThreshold bytes, we return the designated error.
func (fb *FaultyBuffer) Write(p []byte) (n int, err error) {
	if fb.designatedErr == nil {
		panic("FaultyBuffer without designated error")
	}
	if len(p) == 0 {
		return 0, nil
	}
	if fb.alreadyWritten > fb.faultThreshold {
		return 0, fmt.Errorf("repeated write call to already faulty writer, error %w", fb.designatedErr)
	}
	L := len(p)
	fault := false
	if fb.alreadyWritten+L > fb.faultThreshold {
		fault = true
		L = fb.faultThreshold - fb.alreadyWritten
	}
	n, _ = fb.buf.Write(p[0:L])
	fb.alreadyWritten += n
	if fault {
		err = fb.designatedErr
		fb.alreadyWritten += 1
	}
	return
}

// Bytes returns what has been written (and not yet read).
func (fb *FaultyBuffer) Bytes() []byte {
	return fb.buf.Bytes()
}
