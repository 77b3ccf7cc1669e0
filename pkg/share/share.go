// Package share encodes lottery inputs into a compact, URL-embeddable form.
//
// The encoding deliberately carries only the two input lists, not the rung
// layout or the mapping: opening a shared lottery generates a fresh,
// independently sampled ladder. A share link is an invitation to draw, not
// a record of a past draw (records are pkg/history's job).
//
// Format: "v1." followed by unpadded URL-safe base64 of a JSON payload.
// The version prefix leaves room to change the payload without breaking
// old links.
package share

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/amidalab/amidakuji/pkg/errors"
)

// prefix identifies encoding version 1.
const prefix = "v1."

// payload is the wire form of a share code.
type payload struct {
	Participants []string `json:"p"`
	Results      []string `json:"r"`
}

// Encode produces the share code for the given input lists. The lists are
// validated first; a code is only ever produced for inputs that Generate
// would accept.
func Encode(participants, results []string) (string, error) {
	if err := errors.ValidateEntries(participants, results); err != nil {
		return "", err
	}

	data, err := json.Marshal(payload{Participants: participants, Results: results})
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "marshal share payload")
	}
	return prefix + base64.RawURLEncoding.EncodeToString(data), nil
}

// Decode reverses [Encode], returning the exact participant and result
// lists the code was built from. Decoded inputs are re-validated, so a
// hand-crafted code cannot smuggle invalid lists past the input gate.
func Decode(code string) (participants, results []string, err error) {
	raw, ok := strings.CutPrefix(code, prefix)
	if !ok {
		return nil, nil, errors.New(errors.ErrCodeInvalidEncoding, "unknown share code version")
	}

	data, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeInvalidEncoding, err, "decode share code")
	}

	var p payload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeInvalidEncoding, err, "parse share payload")
	}

	if err := errors.ValidateEntries(p.Participants, p.Results); err != nil {
		return nil, nil, err
	}
	return p.Participants, p.Results, nil
}

// URL embeds a share code into a base URL as the "code" query parameter.
func URL(base, code string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidInput, err, "parse base URL %q", base)
	}
	q := u.Query()
	q.Set("code", code)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// FromURL extracts and decodes the share code from a URL produced by [URL].
func FromURL(link string) (participants, results []string, err error) {
	u, err := url.Parse(link)
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeInvalidEncoding, err, "parse share URL")
	}
	code := u.Query().Get("code")
	if code == "" {
		return nil, nil, errors.New(errors.ErrCodeInvalidEncoding, "URL carries no share code")
	}
	return Decode(code)
}

// QR renders a share link as a PNG QR code of the given pixel size.
func QR(link string, size int) ([]byte, error) {
	if size <= 0 {
		size = 256
	}
	png, err := qrcode.Encode(link, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("encode QR: %w", err)
	}
	return png, nil
}
