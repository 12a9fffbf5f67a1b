package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"Orion_Tube/pkg/errno"
)

const (
	ContextUserID   = "userID"
	ContextUsername = "username"
)

// AuthMiddleware 必须登录：1、从请求头取出"Authorization" 2、验证"Bearer [token]" 3、通过secretKey验证token有效性 4、把用户信息放入context
func AuthMiddleware(secret string) gin.HandlerFunc {
	secretKey := []byte(secret)
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abort(c, errno.NewUnauthorized("请求未包含授权令牌"))
			return
		}
		if err := authenticate(c, authHeader, secretKey); err != nil {
			abort(c, err)
			return
		}
		// 放行，继续处理请求
		c.Next()
	}
}

// OptionalAuth 匿名可读的接口：没有令牌按匿名用户(ID为0)放行，带了令牌就必须有效
func OptionalAuth(secret string) gin.HandlerFunc {
	secretKey := []byte(secret)
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}
		if err := authenticate(c, authHeader, secretKey); err != nil {
			abort(c, err)
			return
		}
		c.Next()
	}
}

func authenticate(c *gin.Context, authHeader string, secretKey []byte) *errno.Error {
	// Token的格式是 "Bearer [token]"
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return errno.NewUnauthorized("授权令牌格式不正确")
	}

	// 解析Token并校验签名和过期时间
	token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
		// 确保签名方法是对称加密族
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("非预期的签名方法")
		}
		return secretKey, nil
	})
	if err != nil || !token.Valid {
		return errno.NewUnauthorized("无效的授权令牌")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return errno.NewUnauthorized("无效的授权令牌")
	}
	// MapClaims 里的数字都被解析成了 float64
	rawID, ok := claims["user_id"].(float64)
	if !ok || rawID < 1 {
		return errno.NewUnauthorized("授权令牌缺少用户信息")
	}
	c.Set(ContextUserID, uint64(rawID))
	if username, ok := claims["username"].(string); ok {
		c.Set(ContextUsername, username)
	}
	return nil
}

// CurrentUserID 已认证的用户ID，匿名时返回0
func CurrentUserID(c *gin.Context) uint64 {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return 0
	}
	id, _ := v.(uint64)
	return id
}

func abort(c *gin.Context, err *errno.Error) {
	c.AbortWithStatusJSON(err.Kind.StatusCode(), gin.H{
		"statusCode": err.Kind.StatusCode(),
		"message":    err.Message,
		"errorKind":  err.Kind,
	})
}
