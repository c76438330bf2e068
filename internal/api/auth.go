package api

import (
	"crypto/sha512"
	"encoding/hex"
	"time"
)

const (
	salt       = "Otus"
	adminSalt  = "42"
	adminLogin = "admin"
)

// isAdmin reports whether the login gets the privileged code path.
func isAdmin(login string) bool {
	return login == adminLogin
}

// checkAuth validates the request token. Admin tokens are derived from the
// current hour (they expire on the hour boundary); regular tokens are
// derived from account and login.
func checkAuth(account, login, token string, now time.Time) bool {
	var digest string
	if isAdmin(login) {
		digest = sha512hex(now.Format("2006010215") + adminSalt)
	} else {
		digest = sha512hex(account + login + salt)
	}
	return digest == token
}

func sha512hex(s string) string {
	sum := sha512.Sum512([]byte(s))
	return hex.EncodeToString(sum[:])
}
