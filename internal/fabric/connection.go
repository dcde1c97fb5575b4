package fabric

import (
	"crypto/x509"
	"os"

	"github.com/hyperledger/fabric-gateway/pkg/identity"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
)

// NewPeerConnection builds a gRPC client for the peer endpoint, trusting the
// given TLS CA certificate and overriding the expected server name. The
// returned client has not dialed yet; the connection is established lazily on
// first use. No retry logic here, one attempt per call.
func NewPeerConnection(endpoint, tlsCertPath, serverNameOverride string) (*grpc.ClientConn, error) {
	tlsPEM, err := os.ReadFile(tlsCertPath)
	if err != nil {
		return nil, configErr(tlsCertPath, err)
	}
	tlsCert, err := identity.CertificateFromPEM(tlsPEM)
	if err != nil {
		return nil, configErr(tlsCertPath, err)
	}

	pool := x509.NewCertPool()
	pool.AddCert(tlsCert)
	transportCredentials := credentials.NewClientTLSFromCert(pool, serverNameOverride)

	conn, err := grpc.NewClient(endpoint, grpc.WithTransportCredentials(transportCredentials))
	if err != nil {
		return nil, configErr(endpoint, err)
	}
	return conn, nil
}
