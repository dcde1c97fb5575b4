package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

type successEnvelope struct {
	OK   bool `json:"ok"`
	Data any  `json:"data"`
}

type failureEnvelope struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

func writeSuccess(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(successEnvelope{OK: true, Data: data})
}

func writeFailure(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(failureEnvelope{OK: false, Error: message})
}

// decodePayload parses a chaincode response. Payloads arrive as UTF-8 JSON,
// sometimes NUL-padded by the peer's buffer handling, so NUL bytes and
// surrounding whitespace are stripped before parsing.
func decodePayload(payload []byte) (any, error) {
	raw := strings.TrimSpace(strings.ReplaceAll(string(payload), "\x00", ""))
	if raw == "" {
		return nil, errors.New("empty ledger response")
	}
	var data any
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, err
	}
	return data, nil
}
