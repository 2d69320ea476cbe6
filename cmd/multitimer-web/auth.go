package main

import (
	"crypto/subtle"
	"errors"
	"net/http"

	"github.com/multitimer/multitimer-go/pkg/config"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// ErrEmptyPassword is returned when hashing an empty password.
var ErrEmptyPassword = errors.New("empty password")

// HashPassword returns the bcrypt hash to put in web.auth.password_hash.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// BasicAuth rejects requests whose credentials do not match auth.
func BasicAuth(auth config.Auth, logger logrus.FieldLogger) func(http.Handler) http.Handler {
	user := []byte(auth.User)
	hash := []byte(auth.PasswordHash)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, p, ok := r.BasicAuth()
			if !ok || subtle.ConstantTimeCompare([]byte(u), user) != 1 ||
				bcrypt.CompareHashAndPassword(hash, []byte(p)) != nil {
				logger.WithFields(logrus.Fields{"user": u, "remote": r.RemoteAddr}).Warn("authentication failed")
				w.Header().Set("WWW-Authenticate", `Basic realm="multitimer", charset="UTF-8"`)
				respondError(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
