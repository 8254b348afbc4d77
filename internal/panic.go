// SPDX-License-Identifier: MIT
//
// Copyright (C) 2021 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

// Package internal holds test helpers shared across packages.
package internal

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	errNoPanic      = errors.New("no panic")
	errNilPanicData = errors.New("panicked with nil")
)

// recovered runs f and returns what it panicked with, if anything.
func recovered(f func()) (panicked bool, value interface{}) {
	defer func() {
		if value = recover(); value != nil {
			panicked = true
		}
	}()
	f()
	return false, nil
}

// ExpectPanic runs f and reports whether it panicked with want. A panic value
// that is an error matches when errors.Is(value, want) holds or its message is
// want's message; any other value is compared by its formatted text. A nil want
// accepts any panic.
func ExpectPanic(want error, f func()) (bool, error) {
	panicked, value := recovered(f)
	if !panicked {
		return false, errNoPanic
	}
	if want == nil {
		return true, nil
	}
	if value == nil {
		return false, errNilPanicData
	}
	if err, ok := value.(error); ok {
		if errors.Is(err, want) || err.Error() == want.Error() {
			return true, nil
		}
		return false, errors.Wrapf(err, "expected panic %q", want)
	}
	if got := fmt.Sprint(value); got != want.Error() {
		return false, errors.Errorf("expected panic %q, got %q", want, got)
	}
	return true, nil
}
