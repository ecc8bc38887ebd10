// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package reconuc

import (
	"errors"
)

// Option is a functional option for the reconciliation use case.
type Option func(uc *UseCase) error

// WithReporter option configures a reconciliation UseCase instance in
// order to emit the report of each successful operation to r.
// This option may be passed to the New() function.
func WithReporter(r Reporter) Option {
	return func(uc *UseCase) error {
		if r == nil {
			return errors.New("reporter is nil")
		}
		if uc.reporter != nil {
			return errors.New("reporter is already configured")
		}
		uc.reporter = r
		return nil
	}
}
