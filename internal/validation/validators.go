// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

type patternValidator struct {
	pattern    *regexp.Regexp
	expression string
	customErr  error
}

// NewPatternValidator checks expression against a compiled pattern.
// customErr is returned on mismatch when set.
func NewPatternValidator(pattern *regexp.Regexp, expression string, customErr error) Validator {
	return patternValidator{pattern: pattern, expression: expression, customErr: customErr}
}

// Validate executes the validation
func (x patternValidator) Validate() error {
	if x.pattern.MatchString(x.expression) {
		return nil
	}
	if x.customErr != nil {
		return x.customErr
	}
	return fmt.Errorf("%q does not match %s", x.expression, x.pattern.String())
}

type emptyStringValidator struct {
	field string
	value string
}

// NewEmptyStringValidator fails when value is blank
func NewEmptyStringValidator(field, value string) Validator {
	return emptyStringValidator{field: field, value: value}
}

// Validate executes the validation
func (v emptyStringValidator) Validate() error {
	if strings.TrimSpace(v.value) == "" {
		return fmt.Errorf("the [%s] is required", v.field)
	}
	return nil
}

type positiveDurationValidator struct {
	field string
	value time.Duration
}

// NewPositiveDurationValidator fails when value is zero or negative
func NewPositiveDurationValidator(field string, value time.Duration) Validator {
	return positiveDurationValidator{field: field, value: value}
}

// Validate executes the validation
func (v positiveDurationValidator) Validate() error {
	if v.value <= 0 {
		return fmt.Errorf("the [%s] must be greater than zero, got %s", v.field, v.value)
	}
	return nil
}
