// Package gatewayerr flattens Fabric Gateway invocation errors into a single
// human-readable cause for API responses. Gateway errors nest a gRPC status
// with per-peer detail messages inside a chain of wrapping errors; clients
// only want the one line that explains what went wrong.
package gatewayerr

import (
	"errors"
	"regexp"
	"strings"

	"github.com/hyperledger/fabric-protos-go-apiv2/gateway"
	"google.golang.org/grpc/status"
)

// ReadOnlyRoleMessage replaces raw chaincode denial text when a write was
// attempted under the auditor identity.
const ReadOnlyRoleMessage = "Access denied: Auditor role is read-only and cannot perform this action."

const fallbackMessage = "Operation failed"

// accessDeniedMarker is matched against the chaincode's denial text. This is
// a substring heuristic, not a structured protocol; it tracks the wording of
// the tender chaincode's access checks.
const accessDeniedMarker = "Access denied"

var errorPrefix = regexp.MustCompile(`^(?i)error:\s*`)

// Extract returns a single human-readable cause for err.
//
// It collects the messages along the unwrap chain plus any per-peer detail
// messages carried by the gRPC status (transport metadata is not inspected).
// If the combined text shows the chaincode denying access under the authority
// organization's MSP ID, the fixed read-only-role explanation is returned.
// Otherwise the first non-empty fragment wins, with a leading "Error:" prefix
// stripped. A nil or message-less error yields a generic failure message.
func Extract(err error, authorityMSP string) string {
	fragments := collect(err)

	combined := strings.Join(fragments, " | ")
	if strings.Contains(combined, accessDeniedMarker) &&
		authorityMSP != "" && strings.Contains(combined, authorityMSP) {
		return ReadOnlyRoleMessage
	}

	for _, fragment := range fragments {
		if text := strings.TrimSpace(fragment); text != "" {
			return errorPrefix.ReplaceAllString(text, "")
		}
	}
	return fallbackMessage
}

func collect(err error) []string {
	if err == nil {
		return nil
	}

	var fragments []string
	for e := err; e != nil; e = errors.Unwrap(e) {
		fragments = append(fragments, e.Error())
	}

	if st, ok := status.FromError(err); ok {
		for _, detail := range st.Details() {
			if d, ok := detail.(*gateway.ErrorDetail); ok {
				fragments = append(fragments, d.GetMessage())
			}
		}
	}
	return fragments
}
