package fabric

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testCredentials returns a self-signed certificate and matching PKCS#8 key
// in PEM form.
func testCredentials(t *testing.T) (certPEM, keyPEM []byte) {
	t.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	template := &x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "User1@org1.example.com"},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(time.Hour),
	}
	der, err := x509.CreateCertificate(rand.Reader, template, template, &key.PublicKey, key)
	require.NoError(t, err)
	certPEM = pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der})

	keyDER, err := x509.MarshalPKCS8PrivateKey(key)
	require.NoError(t, err)
	keyPEM = pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: keyDER})

	return certPEM, keyPEM
}

// writeMSP lays out a user MSP directory the way the Fabric CA tooling does.
func writeMSP(t *testing.T, certPEM, keyPEM []byte) string {
	t.Helper()

	mspPath := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(mspPath, "signcerts"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(mspPath, "keystore"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(mspPath, "signcerts", "cert.pem"), certPEM, 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(mspPath, "keystore", "priv_sk"), keyPEM, 0o600))
	return mspPath
}

func TestLoadIdentity(t *testing.T) {
	certPEM, keyPEM := testCredentials(t)
	mspPath := writeMSP(t, certPEM, keyPEM)

	id, sign, err := LoadIdentity("Org1MSP", mspPath)
	require.NoError(t, err)
	assert.Equal(t, "Org1MSP", id.MspID())
	assert.NotEmpty(t, id.Credentials())
	require.NotNil(t, sign)

	signature, err := sign([]byte("digest-of-a-proposal-0123456789ab"))
	require.NoError(t, err)
	assert.NotEmpty(t, signature)
}

func TestLoadIdentityIgnoresHiddenAndForeignFiles(t *testing.T) {
	certPEM, keyPEM := testCredentials(t)
	mspPath := writeMSP(t, certPEM, keyPEM)

	require.NoError(t, os.WriteFile(filepath.Join(mspPath, "signcerts", ".DS_Store"), []byte("junk"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(mspPath, "keystore", ".hidden"), []byte("junk"), 0o600))

	_, _, err := LoadIdentity("Org1MSP", mspPath)
	require.NoError(t, err)
}

func TestLoadIdentityMissingDirectories(t *testing.T) {
	certPEM, keyPEM := testCredentials(t)

	t.Run("missing msp path", func(t *testing.T) {
		_, _, err := LoadIdentity("Org1MSP", filepath.Join(t.TempDir(), "does-not-exist"))
		var cfgErr *ConfigurationError
		require.ErrorAs(t, err, &cfgErr)
	})

	t.Run("missing keystore", func(t *testing.T) {
		mspPath := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(mspPath, "signcerts"), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(mspPath, "signcerts", "cert.pem"), certPEM, 0o600))

		_, _, err := LoadIdentity("Org1MSP", mspPath)
		var cfgErr *ConfigurationError
		require.ErrorAs(t, err, &cfgErr)
		assert.Contains(t, cfgErr.Path, "keystore")
	})

	t.Run("empty signcerts", func(t *testing.T) {
		mspPath := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(mspPath, "signcerts"), 0o755))
		require.NoError(t, os.MkdirAll(filepath.Join(mspPath, "keystore"), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(mspPath, "keystore", "priv_sk"), keyPEM, 0o600))

		_, _, err := LoadIdentity("Org1MSP", mspPath)
		var cfgErr *ConfigurationError
		require.ErrorAs(t, err, &cfgErr)
		assert.Contains(t, cfgErr.Error(), "no .pem certificate found")
	})

	t.Run("signcerts without pem extension", func(t *testing.T) {
		mspPath := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(mspPath, "signcerts"), 0o755))
		require.NoError(t, os.MkdirAll(filepath.Join(mspPath, "keystore"), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(mspPath, "signcerts", "cert.txt"), certPEM, 0o600))
		require.NoError(t, os.WriteFile(filepath.Join(mspPath, "keystore", "priv_sk"), keyPEM, 0o600))

		_, _, err := LoadIdentity("Org1MSP", mspPath)
		var cfgErr *ConfigurationError
		require.ErrorAs(t, err, &cfgErr)
	})
}

func TestLoadIdentityGarbageCertificate(t *testing.T) {
	_, keyPEM := testCredentials(t)
	mspPath := writeMSP(t, []byte("not a certificate"), keyPEM)

	_, _, err := LoadIdentity("Org1MSP", mspPath)
	require.Error(t, err)
}
