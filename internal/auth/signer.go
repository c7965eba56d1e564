package auth

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
)

// GenerateResponse computes the login response for a session token.
// Format: md5("username:session:password") as lowercase hex.
func GenerateResponse(username, session, password string) string {
	payload := fmt.Sprintf("%s:%s:%s", username, session, password)

	hash := md5.Sum([]byte(payload))
	return hex.EncodeToString(hash[:]) // Go outputs lowercase hex by default
}
