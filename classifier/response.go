package classifier

import (
	"bytes"
	"encoding/json"
	"io"
	"strconv"

	"github.com/pkg/errors"
)

// ParseDigit accepts a bare integer (7), a quoted integer ("7") or an
// object carrying an integer "digit" or "prediction" field. The value must
// be in [0,9].
func ParseDigit(body []byte) (int, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return -1, errors.Wrap(ErrMalformedResponse, "empty body")
	}

	var (
		digit int
		err   error
	)
	switch body[0] {
	case '{':
		digit, err = parseObject(body)
	case '"':
		var s string
		if err = json.Unmarshal(body, &s); err == nil {
			digit, err = parseQuoted(s)
		}
	default:
		err = json.Unmarshal(body, &digit)
	}
	if err != nil {
		return -1, errors.Wrapf(ErrMalformedResponse, "%q: %v", preview(body), err)
	}

	if digit < 0 || digit > 9 {
		return -1, errors.Wrapf(ErrMalformedResponse, "digit %d out of range", digit)
	}
	return digit, nil
}

// parseQuoted takes plain decimal digits only: no sign, no padding and no
// leading zeros.
func parseQuoted(s string) (int, error) {
	if s == "" {
		return -1, errors.New("empty string")
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return -1, errors.Errorf("not a number: %q", s)
		}
	}
	if len(s) > 1 && s[0] == '0' {
		return -1, errors.Errorf("leading zero: %q", s)
	}
	return strconv.Atoi(s)
}

// parseObject walks the object token by token so repeated keys are caught
// instead of silently keeping the last one.
func parseObject(body []byte) (int, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	if _, err := dec.Token(); err != nil {
		return -1, err
	}

	fields := make(map[string]json.RawMessage)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return -1, err
		}
		key, ok := tok.(string)
		if !ok {
			return -1, errors.Errorf("unexpected token %v", tok)
		}
		if _, dup := fields[key]; dup {
			return -1, errors.Errorf("duplicate field %s", key)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return -1, err
		}
		fields[key] = raw
	}
	if _, err := dec.Token(); err != nil {
		return -1, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return -1, errors.New("trailing data after object")
	}

	for _, key := range []string{"digit", "prediction"} {
		raw, ok := fields[key]
		if !ok {
			continue
		}
		var n int
		if err := json.Unmarshal(raw, &n); err != nil {
			return -1, errors.Errorf("field %s: %v", key, err)
		}
		return n, nil
	}
	return -1, errors.New("no digit field")
}

func preview(body []byte) string {
	const max = 64
	if len(body) > max {
		return string(body[:max]) + "..."
	}
	return string(body)
}
