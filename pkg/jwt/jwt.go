// Package jwt firma y valida los tokens del panel. Los administradores llegan
// con un token emitido por el backend de subastas; el cliente REST firma su
// propio token de servicio con el mismo secreto compartido.
package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrEmptySecret = errors.New("jwt: secret vacío")
	ErrNoSubject   = errors.New("jwt: token sin usuario")
)

// RoleService rol con el que el panel se presenta ante el backend.
const RoleService = "admin"

// Claims claims registrados más usuario y rol. UserID puede faltar en los
// tokens del backend, que solo traen sub.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id,omitempty"`
	Role   string `json:"role"` // "admin" | "user"
}

// Generate firma un token de usuario que vence en expMinutes.
func Generate(secret, userID, role, issuer string, expMinutes int) (string, error) {
	tok, _, err := sign(secret, userID, role, issuer, time.Duration(expMinutes)*time.Minute)
	return tok, err
}

// ServiceToken firma el token con el que el cliente REST habla con el backend.
// Devuelve el vencimiento para renovarlo antes de que caduque.
func ServiceToken(secret, subject, issuer string, ttl time.Duration) (string, time.Time, error) {
	return sign(secret, subject, RoleService, issuer, ttl)
}

func sign(secret, subject, role, issuer string, ttl time.Duration) (string, time.Time, error) {
	if secret == "" {
		return "", time.Time{}, ErrEmptySecret
	}
	now := time.Now()
	exp := now.Add(ttl)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
		UserID: subject,
		Role:   role,
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("jwt: firmar: %w", err)
	}
	return tok, exp, nil
}

// Parse valida firma HS256 y vencimiento y devuelve usuario y rol. Sin
// user_id se usa sub; sin ninguno de los dos el token se rechaza.
func Parse(secret, tokenString string) (userID, role string, err error) {
	if secret == "" {
		return "", "", ErrEmptySecret
	}
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(*jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", "", err
	}
	if !token.Valid {
		return "", "", fmt.Errorf("jwt: claims inválidos")
	}
	userID = claims.UserID
	if userID == "" {
		userID = claims.Subject
	}
	if userID == "" {
		return "", "", ErrNoSubject
	}
	return userID, claims.Role, nil
}
