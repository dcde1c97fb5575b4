package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("TENDER_GATEWAY_ADDR", "")
	t.Setenv("TENDER_CRYPTO_PATH", "")
	t.Setenv("TENDER_PEER_ENDPOINT", "")

	cfg := FromEnv()

	assert.Equal(t, ":3000", cfg.Addr)
	assert.Equal(t, "localhost:7051", cfg.Fabric.PeerEndpoint)
	assert.Equal(t, "peer0.org1.example.com", cfg.Fabric.GatewayPeer)
	assert.Equal(t, "mychannel", cfg.Fabric.ChannelName)
	assert.Equal(t, "tender", cfg.Fabric.ChaincodeName)
	assert.Equal(t, "Org1MSP", cfg.Fabric.Authority.MSPID)
	assert.Equal(t, "Org2MSP", cfg.Fabric.Auditor.MSPID)
	assert.Contains(t, cfg.Fabric.Authority.MSPPath, "User1@org1.example.com")
	assert.Contains(t, cfg.Fabric.Auditor.MSPPath, "User1@org2.example.com")
	assert.Contains(t, cfg.Fabric.TLSCertPath, "peer0.org1.example.com")
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("TENDER_GATEWAY_ADDR", ":9090")
	t.Setenv("TENDER_CRYPTO_PATH", "/var/fabric/orgs")
	t.Setenv("TENDER_PEER_ENDPOINT", "peer0:7051")

	cfg := FromEnv()

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "peer0:7051", cfg.Fabric.PeerEndpoint)
	assert.Contains(t, cfg.Fabric.Authority.MSPPath, "/var/fabric/orgs/org1.example.com")
}
