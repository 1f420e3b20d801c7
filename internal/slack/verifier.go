// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ChatMUD Contributors

// Package slack implements the chat platform integration: request signature
// verification, wire types for slash commands and events, and the Web API
// client used to deliver game output.
package slack

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strconv"
	"time"
)

// Signature verification errors. All map to 401 at the HTTP layer; the
// distinction is for logs only.
var (
	ErrMissingSignature = errors.New("missing signature headers")
	ErrStaleTimestamp   = errors.New("request timestamp outside tolerance")
	ErrBadSignature     = errors.New("signature mismatch")
)

// maxTimestampSkew bounds replay: requests older (or newer) than this are
// rejected before the HMAC is even computed.
const maxTimestampSkew = 5 * time.Minute

const signatureVersion = "v0"

// Verifier checks request signatures of the form
// v0=hex(hmac_sha256(secret, "v0:<timestamp>:<body>")).
type Verifier struct {
	secret []byte
	now    func() time.Time
}

// NewVerifier creates a Verifier for the given signing secret.
func NewVerifier(signingSecret string) *Verifier {
	return &Verifier{secret: []byte(signingSecret), now: time.Now}
}

// Verify checks the signature and timestamp headers against the raw request
// body. The body must be the exact bytes received, before any form decoding.
func (v *Verifier) Verify(signature, timestamp string, body []byte) error {
	if signature == "" || timestamp == "" {
		return ErrMissingSignature
	}

	ts, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return ErrStaleTimestamp
	}
	skew := v.now().Sub(time.Unix(ts, 0))
	if skew > maxTimestampSkew || skew < -maxTimestampSkew {
		return ErrStaleTimestamp
	}

	mac := hmac.New(sha256.New, v.secret)
	mac.Write([]byte(signatureVersion))
	mac.Write([]byte(":"))
	mac.Write([]byte(timestamp))
	mac.Write([]byte(":"))
	mac.Write(body)
	expected := signatureVersion + "=" + hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return ErrBadSignature
	}
	return nil
}
