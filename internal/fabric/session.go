// Package fabric bootstraps per-request ledger sessions: it loads signing
// identities from the local MSP directory layout, opens a TLS gRPC channel to
// the peer, and connects a Fabric Gateway scoped to one organization's role.
package fabric

import (
	"log/slog"
	"time"

	"github.com/hyperledger/fabric-gateway/pkg/client"
	"google.golang.org/grpc"

	"tendergate/internal/platform/config"
	"tendergate/internal/tender/models"
)

// Deadlines per operation class. Evaluation is a single peer round trip;
// submission pays endorsement plus commit confirmation.
const (
	evaluateTimeout     = 5 * time.Second
	endorseTimeout      = 15 * time.Second
	submitTimeout       = 15 * time.Second
	commitStatusTimeout = 60 * time.Second
)

// Session is a per-request bundle of identity, transport and contract handle.
// Sessions are never pooled or shared between requests; the caller must
// Close the session before completing its response.
type Session struct {
	contract *client.Contract
	gateway  *client.Gateway
	conn     *grpc.ClientConn
}

// Evaluate runs a read-only transaction against the ledger.
func (s *Session) Evaluate(name string, args ...string) ([]byte, error) {
	return s.contract.EvaluateTransaction(name, args...)
}

// Submit runs a state-changing transaction through endorsement and commit.
func (s *Session) Submit(name string, args ...string) ([]byte, error) {
	return s.contract.SubmitTransaction(name, args...)
}

// Close releases the gateway and the underlying gRPC connection. Close
// errors are deliberately dropped; there is nothing useful a request handler
// can do with them.
func (s *Session) Close() {
	s.gateway.Close()
	_ = s.conn.Close()
}

// Factory opens role-scoped ledger sessions from an immutable configuration
// table established at startup.
type Factory struct {
	cfg config.Fabric
	log *slog.Logger
}

func NewFactory(cfg config.Fabric, log *slog.Logger) *Factory {
	return &Factory{cfg: cfg, log: log}
}

// Open loads the organization identity for the given role, connects the
// gateway, and returns a ready session. Configuration errors from the
// identity and connection steps pass through unmodified. The role is assumed
// to be already normalized by the HTTP layer.
func (f *Factory) Open(role models.Role) (*Session, error) {
	org := f.cfg.Authority
	if role == models.RoleAuditor {
		org = f.cfg.Auditor
	}

	conn, err := NewPeerConnection(f.cfg.PeerEndpoint, f.cfg.TLSCertPath, f.cfg.GatewayPeer)
	if err != nil {
		return nil, err
	}

	id, sign, err := LoadIdentity(org.MSPID, org.MSPPath)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	gateway, err := client.Connect(
		id,
		client.WithSign(sign),
		client.WithClientConnection(conn),
		client.WithEvaluateTimeout(evaluateTimeout),
		client.WithEndorseTimeout(endorseTimeout),
		client.WithSubmitTimeout(submitTimeout),
		client.WithCommitStatusTimeout(commitStatusTimeout),
	)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	f.log.Debug("ledger session opened", "role", role, "msp_id", org.MSPID)

	contract := gateway.GetNetwork(f.cfg.ChannelName).GetContract(f.cfg.ChaincodeName)
	return &Session{contract: contract, gateway: gateway, conn: conn}, nil
}
