package fabric

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/hyperledger/fabric-gateway/pkg/identity"
)

// LoadIdentity reads the certificate and private key for one user from a
// standard MSP directory (signcerts/ and keystore/) and returns the X.509
// identity together with its signing function. Credentials are re-read on
// every call; nothing is cached across requests.
//
// A mismatched certificate/key pair is not detected here. It surfaces later
// as a transaction failure from the peer.
func LoadIdentity(mspID, mspPath string) (*identity.X509Identity, identity.Sign, error) {
	certPEM, err := readFirstPEM(filepath.Join(mspPath, "signcerts"))
	if err != nil {
		return nil, nil, err
	}
	keyPEM, err := readFirstKeyFile(filepath.Join(mspPath, "keystore"))
	if err != nil {
		return nil, nil, err
	}

	certificate, err := identity.CertificateFromPEM(certPEM)
	if err != nil {
		return nil, nil, configErr(mspPath, err)
	}
	id, err := identity.NewX509Identity(mspID, certificate)
	if err != nil {
		return nil, nil, configErr(mspPath, err)
	}

	privateKey, err := identity.PrivateKeyFromPEM(keyPEM)
	if err != nil {
		return nil, nil, configErr(mspPath, err)
	}
	sign, err := identity.NewPrivateKeySign(privateKey)
	if err != nil {
		return nil, nil, configErr(mspPath, err)
	}

	return id, sign, nil
}

// readFirstPEM returns the contents of the first non-hidden .pem file in dir.
func readFirstPEM(dir string) ([]byte, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, configErr(dir, err)
	}
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") || !strings.HasSuffix(name, ".pem") || entry.IsDir() {
			continue
		}
		return readCredentialFile(filepath.Join(dir, name))
	}
	return nil, configErr(dir, errors.New("no .pem certificate found"))
}

// readFirstKeyFile returns the contents of the first non-hidden regular file
// in dir. Fabric names the key file opaquely (usually priv_sk), so there is
// no extension to filter on.
func readFirstKeyFile(dir string) ([]byte, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, configErr(dir, err)
	}
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), ".") || !entry.Type().IsRegular() {
			continue
		}
		return readCredentialFile(filepath.Join(dir, entry.Name()))
	}
	return nil, configErr(dir, errors.New("no private key found"))
}

func readCredentialFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, configErr(path, err)
	}
	return data, nil
}
