package middlewares

import (
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"tms/src/db"
	"tms/src/models"
	"tms/src/types"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

var jwtKey = []byte(os.Getenv("JWT_SECRET"))

func AuthMiddleware(ctx *gin.Context) {
	bearerToken := ctx.Request.Header.Get("Authorization")
	if !strings.HasPrefix(bearerToken, "Bearer") {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	parts := strings.Split(bearerToken, " ")
	if len(parts) != 2 || parts[1] == "" {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	reqToken := parts[1]
	claims := &types.Claims{}
	tkn, err := jwt.ParseWithClaims(reqToken, claims, func(t *jwt.Token) (any, error) {
		return jwtKey, nil
	})
	if err != nil {
		log.Printf("token error: %s\n", err.Error())
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	if !tkn.Valid {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	uid, err := strconv.Atoi(claims.Subject)
	if err != nil {
		log.Println("error parsing claims:", err.Error())
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	db := db.GetDb()
	var user models.User
	if err := db.
		Model(&models.User{}).
		Where(&models.User{ID: uint(uid)}).
		First(&user).
		Error; err != nil {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	ctx.Set("id", user.ID)
	ctx.Set("email", user.Email)
	ctx.Set("role", string(user.Role))
	ctx.Set("employee_id", user.EmployeeID)
	if user.CompanyID != nil {
		ctx.Set("company", *user.CompanyID)
	} else {
		ctx.Set("company", uint(0))
	}
}

// RequireRoles gates a route group to a closed set of roles. Assumes
// AuthMiddleware already resolved the actor into the context; anything else,
// including unknown role strings, is denied rather than crashed on.
func RequireRoles(allowedRoles ...types.Role) gin.HandlerFunc {
	allowed := make(map[types.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}
	return func(ctx *gin.Context) {
		role := types.Role(ctx.GetString("role"))
		if role == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "no role in context"})
			return
		}
		if _, ok := allowed[role]; !ok {
			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "role is not allowed to access this resource"})
			return
		}
		ctx.Next()
	}
}
