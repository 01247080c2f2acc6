package secure

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"errors"
	"strings"

	"go.uber.org/zap"
)

// KeySource fetches the server's public key material.
type KeySource interface {
	PublicKey(ctx context.Context) (string, error)
}

// Encryptor one-way encrypts plaintext with the server's RSA public key
// before transmission. This is the one helper whose fetch failure surfaces
// to the caller: they must decide whether to proceed without encryption.
type Encryptor struct {
	keys   KeySource
	logger *zap.Logger
}

// NewEncryptor builds the encryptor.
func NewEncryptor(keys KeySource, logger *zap.Logger) *Encryptor {
	return &Encryptor{keys: keys, logger: logger}
}

// Encrypt returns the base64 ciphertext of plaintext under the fetched
// public key.
func (e *Encryptor) Encrypt(ctx context.Context, plaintext string) (string, error) {
	material, err := e.keys.PublicKey(ctx)
	if err != nil {
		return "", err
	}
	pub, err := ParsePublicKey(material)
	if err != nil {
		e.logger.Warn("unusable public key material", zap.Error(err))
		return "", err
	}
	ciphertext, err := rsa.EncryptPKCS1v15(rand.Reader, pub, []byte(plaintext))
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// ParsePublicKey accepts PEM-armored or bare base64 DER key material, as
// the auth service has served both over time.
func ParsePublicKey(material string) (*rsa.PublicKey, error) {
	der := []byte(nil)
	if block, _ := pem.Decode([]byte(material)); block != nil {
		der = block.Bytes
	} else {
		decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(material))
		if err != nil {
			return nil, errors.New("key material is neither PEM nor base64 DER")
		}
		der = decoded
	}

	key, err := x509.ParsePKIXPublicKey(der)
	if err != nil {
		return nil, err
	}
	rsaKey, ok := key.(*rsa.PublicKey)
	if !ok {
		return nil, errors.New("public key is not RSA")
	}
	return rsaKey, nil
}
