package utils

import "golang.org/x/crypto/bcrypt"

// HashOperatorKey produces the value stored in APP_OPERATOR_API_KEY_HASH.
func HashOperatorKey(key string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	return string(hashed), err
}

func OperatorKeyMatches(key, hash string) bool {
	if key == "" || hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(key)) == nil
}
