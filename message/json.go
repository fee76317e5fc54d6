// Copyright (c) 2014 The VolantMQ Authors. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package message

import (
	"strconv"
	"strings"
)

// Flat-JSON extractor.
//
// Not a parser: values are located by substring search for "key": in payloads of
// type Value that start with '{' and end with '}'. Search stops at the first NUL.
// Nested objects, escaped quotes and whitespace around ':' are not understood,
// a key also matches inside any nested object or string value.

func (m *Envelope) jsonText() (string, bool) {
	if m.Type != TypeValue || len(m.data) == 0 {
		return "", false
	}

	if m.data[0] != '{' || m.data[len(m.data)-1] != '}' {
		return "", false
	}

	s := string(m.data)
	if i := strings.IndexByte(s, 0); i >= 0 {
		s = s[:i]
	}

	return s, true
}

func (m *Envelope) jsonFind(key, suffix string) (string, bool) {
	s, ok := m.jsonText()
	if !ok {
		return "", false
	}

	match := "\"" + key + "\":" + suffix

	i := strings.Index(s, match)
	if i < 0 {
		return "", false
	}

	return s[i+len(match):], true
}

// JSONString value of {"key":"text"}, up to the next quote
func (m *Envelope) JSONString(key string) (string, bool) {
	s, ok := m.jsonFind(key, "\"")
	if !ok {
		return "", false
	}

	end := strings.IndexByte(s, '"')
	if end < 0 {
		return "", false
	}

	return s[:end], true
}

// JSONInt value of {"key":1}. Text that does not start with a number yields 0.
func (m *Envelope) JSONInt(key string) (int, bool) {
	s, ok := m.jsonFind(key, "")
	if !ok {
		return 0, false
	}

	return parseIntPrefix(s), true
}

// JSONInts at most max values of {"key":[0, 1, 2]}. Empty elements are skipped,
// negative max finds nothing.
func (m *Envelope) JSONInts(key string, max int) ([]int, bool) {
	if max < 0 {
		return nil, false
	}

	s, ok := m.jsonFind(key, "[")
	if !ok {
		return nil, false
	}

	end := strings.IndexByte(s, ']')
	if end < 0 {
		return nil, false
	}

	values := make([]int, 0, max)

	for _, token := range strings.Split(s[:end], ",") {
		if len(values) >= max {
			break
		}

		if len(token) == 0 {
			continue
		}

		values = append(values, parseIntPrefix(token))
	}

	return values, true
}

// JSONFloat value of {"key":1.25}. Text that does not start with a number yields 0.
func (m *Envelope) JSONFloat(key string) (float64, bool) {
	s, ok := m.jsonFind(key, "")
	if !ok {
		return 0, false
	}

	return parseFloatPrefix(s), true
}

func skipSpace(s string) string {
	return strings.TrimLeft(s, " \t\n\v\f\r")
}

func scanDigits(s string, i int) int {
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}

	return i
}

func scanSign(s string) int {
	if len(s) > 0 && (s[0] == '+' || s[0] == '-') {
		return 1
	}

	return 0
}

// parseIntPrefix leading decimal integer of s, saturated to int range
func parseIntPrefix(s string) int {
	s = skipSpace(s)

	end := scanDigits(s, scanSign(s))

	v, err := strconv.ParseInt(s[:end], 10, strconv.IntSize)
	if err != nil {
		if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
			return int(v)
		}

		return 0
	}

	return int(v)
}

// parseFloatPrefix leading decimal number of s with optional fraction and exponent
func parseFloatPrefix(s string) float64 {
	s = skipSpace(s)

	i := scanSign(s)
	start := i
	i = scanDigits(s, i)
	digits := i - start

	if i < len(s) && s[i] == '.' {
		j := scanDigits(s, i+1)
		digits += j - i - 1
		i = j
	}

	if digits == 0 {
		return 0
	}

	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		j += scanSign(s[j:])

		if k := scanDigits(s, j); k > j {
			i = k
		}
	}

	v, _ := strconv.ParseFloat(s[:i], 64)

	return v
}
