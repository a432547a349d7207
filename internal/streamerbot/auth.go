package streamerbot

import (
	"crypto/sha256"
	"encoding/base64"
)

// GenerateAuthHash answers a Streamer.bot auth challenge:
// base64(sha256(sha256(password + salt) + challenge))
func GenerateAuthHash(password, salt, challenge string) string {
	secret := sha256.Sum256([]byte(password + salt))

	h := sha256.New()
	h.Write(secret[:])
	h.Write([]byte(challenge))

	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}
