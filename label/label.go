/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package label

import (
	"bytes"
	"encoding"
	"errors"
	"regexp"
	"strings"
)

// Label is the canonical, validated representation of an error label.
type Label string

const (
	// TransientTransactionError marks a failure inside a transaction (but not
	// during commit) after which the whole transaction may be retried.
	TransientTransactionError Label = "TransientTransactionError"

	// UnknownTransactionCommitResult marks a commit attempt whose outcome
	// could not be determined: the commit may or may not have applied.
	UnknownTransactionCommitResult Label = "UnknownTransactionCommitResult"

	// RetryableWriteError marks a write that is eligible for an automatic
	// resend.
	RetryableWriteError Label = "RetryableWriteError"
)

// MinLength and MaxLength define the allowed length range for a label.
const (
	// MinLength is the minimum length for a valid label.
	MinLength = 3

	// MaxLength is the maximum length for a valid label.
	MaxLength = 64
)

const (
	// labelFmt is the canonical pattern for labels: an uppercase ASCII
	// letter followed by 2..63 letters or digits.
	//
	// IMPORTANT: the numeric range {2,63} is tied to MinLength / MaxLength.
	labelFmt = `^[A-Z][A-Za-z0-9]{2,63}$`
)

var labelRe = regexp.MustCompile(labelFmt)

var (
	// ErrLabelInvalidFormat is returned when a label does not conform to
	// the expected format.
	ErrLabelInvalidFormat = errors.New("dresp: invalid label format")
	// ErrLabelInvalidLength is returned when a label is too short or too long.
	ErrLabelInvalidLength = errors.New("dresp: invalid label length")
)

var (
	_ encoding.TextMarshaler   = (*Label)(nil)
	_ encoding.TextUnmarshaler = (*Label)(nil)
)

// Empty is the zero-value label. It never validates.
var Empty Label = ""

// Normalize trims surrounding spaces. Labels are case-sensitive, so no
// other transformation is applied.
func Normalize(s string) string {
	return strings.TrimSpace(s)
}

// Parse normalizes and validates s and returns the canonical Label.
func Parse(s string) (Label, error) {
	s = Normalize(s)
	if err := validate(s); err != nil {
		return Empty, err
	}
	return Label(s), nil
}

// MustParse is the panic-on-error variant of Parse.
func MustParse(s string) Label {
	l, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return l
}

// Validate checks whether l is in canonical form.
func Validate(l Label) error {
	return validate(string(l))
}

// String returns the canonical string representation of the label.
func (l Label) String() string {
	return string(l)
}

// MarshalText implements encoding.TextMarshaler.
func (l Label) MarshalText() ([]byte, error) {
	if err := Validate(l); err != nil {
		return nil, err
	}
	return []byte(l), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Label) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(bytes.TrimSpace(text)))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// validate checks length first so that overly long input does not reach
// the regexp.
func validate(s string) error {
	if len(s) < MinLength || len(s) > MaxLength {
		return ErrLabelInvalidLength
	}
	if !labelRe.MatchString(s) {
		return ErrLabelInvalidFormat
	}
	return nil
}
