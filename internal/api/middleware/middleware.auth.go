package middleware

import (
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gofiber/fiber/v3"

	basehdl "cafe_pos/internal/api/base/handler"
	"cafe_pos/internal/common"
)

// Các role nhân sự trong quán.
const (
	RoleEmployee = "employee"
	RoleAdmin    = "admin"
)

// StaffClaims chứa data được mã hóa trong JWT token của nhân viên.
type StaffClaims struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
	jwt.StandardClaims
}

// GenerateStaffToken tạo JWT token cho nhân viên với thời hạn cho trước.
func GenerateStaffToken(jwtSecret string, userID string, role string, ttl time.Duration) (string, error) {
	claims := StaffClaims{
		UserID: userID,
		Role:   role,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  time.Now().Unix(),
			ExpiresAt: time.Now().Add(ttl).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(jwtSecret))
}

// parseStaffToken parse và verify JWT token, trả về claims nếu hợp lệ.
func parseStaffToken(jwtSecret string, tokenStr string) (*StaffClaims, error) {
	claims := &StaffClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		// Chỉ chấp nhận HMAC, chặn tấn công đổi thuật toán ký
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, common.ErrTokenInvalid
		}
		return []byte(jwtSecret), nil
	})
	if err != nil {
		if ve, ok := err.(*jwt.ValidationError); ok && ve.Errors&jwt.ValidationErrorExpired != 0 {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrTokenInvalid
	}
	if !token.Valid {
		return nil, common.ErrTokenInvalid
	}
	return claims, nil
}

// AuthRequired middleware xác thực JWT token từ header Authorization.
// Lưu user_id và role vào Locals cho các handler phía sau.
func AuthRequired(jwtSecret string) fiber.Handler {
	return func(c fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			return basehdl.HandleError(c, common.ErrTokenMissing)
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := parseStaffToken(jwtSecret, tokenStr)
		if err != nil {
			return basehdl.HandleError(c, err)
		}

		c.Locals("user_id", claims.UserID)
		c.Locals("role", claims.Role)
		return c.Next()
	}
}

// RequireRole middleware chỉ cho phép các role được liệt kê đi tiếp.
// Phải đặt sau AuthRequired trong chuỗi middleware.
func RequireRole(roles ...string) fiber.Handler {
	return func(c fiber.Ctx) error {
		role, _ := c.Locals("role").(string)
		for _, allowed := range roles {
			if role == allowed {
				return c.Next()
			}
		}
		return basehdl.HandleError(c, common.ErrRoleDenied)
	}
}
