package secure

import "golang.org/x/crypto/bcrypt"

// HashOverridePIN hashes a staff override PIN for provisioning.
func HashOverridePIN(pin string, cost int) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(pin), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// VerifyOverridePIN checks a staff device-settings PIN against the bcrypt
// hash held in configuration. An unset hash never verifies.
func VerifyOverridePIN(hash, pin string) bool {
	if hash == "" || pin == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pin)) == nil
}
