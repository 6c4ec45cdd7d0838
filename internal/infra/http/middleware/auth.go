package middleware

import (
	"context"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

type contextKey string

const userContextKey contextKey = "auth_user"

// Claims carrega os dados do usuário embutidos no token JWT.
type Claims struct {
	EmpID    int64  `json:"emp_id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	UserRole string `json:"user_role"`
	jwt.StandardClaims
}

func writeAuthError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(`{"error": "` + msg + `"}`))
}

func jwtSecret() []byte {
	secret := os.Getenv("JWT_SECRET_KEY")
	if secret == "" {
		secret = "crm-secret-key-mude-em-producao"
	}
	return []byte(secret)
}

// GenerateToken emite um JWT HS256 válido por 8 horas.
func GenerateToken(e *entity.Employee) (string, error) {
	now := time.Now()
	claims := &Claims{
		EmpID:    e.ID,
		FullName: e.FullName,
		Email:    e.Email,
		UserRole: e.UserRole,
		StandardClaims: jwt.StandardClaims{
			Id:        uuid.New().String(),
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(8 * time.Hour).Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret())
}

// Auth valida o Bearer token e injeta as claims no contexto da request.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			writeAuthError(w, http.StatusUnauthorized, "Token não fornecido")
			return
		}

		tokenString := strings.TrimPrefix(header, "Bearer ")

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return jwtSecret(), nil
		})
		if err != nil || !token.Valid {
			writeAuthError(w, http.StatusUnauthorized, "Token inválido ou expirado")
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// CurrentUser retorna as claims do usuário autenticado, ou nil fora do middleware.
func CurrentUser(r *http.Request) *Claims {
	claims, _ := r.Context().Value(userContextKey).(*Claims)
	return claims
}

// RequireManager barra usuários que não sejam gerentes de vendas.
func RequireManager(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := CurrentUser(r)
		if user == nil || user.UserRole != entity.RoleSalesManager {
			writeAuthError(w, http.StatusForbidden, "Acesso restrito a gerentes")
			return
		}
		next.ServeHTTP(w, r)
	})
}
