package v1

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/relieflink/donations-api/internal/api/handler/v1/response"
	"github.com/relieflink/donations-api/internal/api/middleware"
	"github.com/relieflink/donations-api/internal/domain"
	"github.com/relieflink/donations-api/internal/service"
)

// getUserFromContext resolves the authenticated principal stored by the JWT
// middleware into a full user record.
func getUserFromContext(ctx *gin.Context, svc UserService) (domain.User, *response.Err) {
	value, exists := ctx.Get(middleware.ContextKeyUserID)
	if !exists {
		return domain.User{}, response.ErrUnauthorized(errors.New("authentication required"))
	}

	userID, ok := value.(uint)
	if !ok || userID == 0 {
		return domain.User{}, response.ErrUnauthorized(errors.New("authentication required"))
	}

	user, err := svc.GetUser(ctx.Request.Context(), userID)
	if err != nil {
		// A valid token whose user no longer exists is treated as
		// unauthenticated rather than a server fault.
		if errors.Is(err, service.ErrUserNotFound) {
			return domain.User{}, response.ErrUnauthorized(errors.New("authentication required"))
		}

		err = fmt.Errorf("getUserFromContext -> svc.GetUser -> %w", err)
		return domain.User{}, response.ErrInternalServerError(err)
	}

	return user, nil
}
