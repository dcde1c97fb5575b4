package config

import (
	"os"
	"path/filepath"
)

// Org identifies one organization's signing identity on the ledger network.
type Org struct {
	MSPID   string
	MSPPath string
}

// Fabric captures everything needed to reach the peer and pick an identity.
// It is built once at startup and injected; nothing reads these values from
// globals afterwards, so tests can substitute their own table.
type Fabric struct {
	PeerEndpoint string
	// GatewayPeer overrides the TLS server name; the test-network peer
	// certificate is issued for the peer hostname, not localhost.
	GatewayPeer   string
	TLSCertPath   string
	ChannelName   string
	ChaincodeName string
	Authority     Org
	Auditor       Org
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr   string
	Fabric Fabric
}

// FromEnv builds a Server config from environment variables so main stays lean.
// Defaults match the fabric-samples test-network layout.
func FromEnv() Server {
	addr := os.Getenv("TENDER_GATEWAY_ADDR")
	if addr == "" {
		addr = ":3000"
	}

	cryptoPath := os.Getenv("TENDER_CRYPTO_PATH")
	if cryptoPath == "" {
		cryptoPath = "../fabric-samples/test-network/organizations/peerOrganizations"
	}
	org1 := filepath.Join(cryptoPath, "org1.example.com")
	org2 := filepath.Join(cryptoPath, "org2.example.com")

	peerEndpoint := os.Getenv("TENDER_PEER_ENDPOINT")
	if peerEndpoint == "" {
		peerEndpoint = "localhost:7051"
	}

	return Server{
		Addr: addr,
		Fabric: Fabric{
			PeerEndpoint:  peerEndpoint,
			GatewayPeer:   "peer0.org1.example.com",
			TLSCertPath:   filepath.Join(org1, "peers", "peer0.org1.example.com", "tls", "ca.crt"),
			ChannelName:   "mychannel",
			ChaincodeName: "tender",
			Authority: Org{
				MSPID:   "Org1MSP",
				MSPPath: filepath.Join(org1, "users", "User1@org1.example.com", "msp"),
			},
			Auditor: Org{
				MSPID:   "Org2MSP",
				MSPPath: filepath.Join(org2, "users", "User1@org2.example.com", "msp"),
			},
		},
	}
}
