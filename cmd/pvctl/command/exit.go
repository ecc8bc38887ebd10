// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"errors"
	"fmt"

	"github.com/momeni/pvctl/pkg/core/model"
)

// Exit codes of the validation. All other failures exit with code 1.
const (
	ExitSuccess    = 0
	ExitMismatch   = 1
	ExitMissing    = 2
	ExitUnreadable = 3
)

// exitError asks for a specific exit code. If err is nil, the failure
// was reported already and nothing else should be printed.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}

// exitCode returns the process exit code for the err condition.
func exitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return 1
}

// validationExitCode maps the overall validation status to its exit
// code.
func validationExitCode(s model.ValidationStatus) int {
	switch s {
	case model.ValidationMismatchFailure:
		return ExitMismatch
	case model.ValidationMissingFailure:
		return ExitMissing
	case model.ValidationUnreadableFailure:
		return ExitUnreadable
	default:
		return ExitSuccess
	}
}
