package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims incluye los claims estándar JWT más el snapshot de capacidades de la sesión.
// RoleScope y Warehouses se fijan en el login y no se mutan: una sesión nueva
// se emite completa en cada re-login.
type Claims struct {
	jwt.RegisteredClaims
	UserID     string   `json:"user_id"`
	CompanyID  string   `json:"company_id"`
	RoleScope  string   `json:"role_scope"` // "COMPANY" | "WAREHOUSE"
	Warehouses []string `json:"warehouses"` // ids de almacén permitidos (vacío con scope COMPANY)
}

// Generate genera un token JWT firmado con el contexto de sesión completo.
func Generate(secret, userID, companyID, roleScope string, warehouses []string, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		UserID:     userID,
		CompanyID:  companyID,
		RoleScope:  roleScope,
		Warehouses: warehouses,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida la firma y la expiración del token y devuelve los claims.
// Retorna error si el token es inválido, expirado o tiene firma incorrecta.
func Parse(secret, tokenString string) (*Claims, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("claims inválidos")
	}
	return claims, nil
}
