package middleware

import (
	"log"
	"net/http"

	"RecruitPilot-backend/internal/access"
	"RecruitPilot-backend/internal/utilities"

	"github.com/gin-gonic/gin"
)

// Authorize guards an endpoint with the requirement set registered for the
// given operation id. It runs after RequireAuth and evaluates role and
// permission requirements only; row-level ownership is checked by the
// controller once the target entity is loaded, via RespondDenied.
func Authorize(op string) gin.HandlerFunc {
	requirement := access.RequirementFor(op)

	return func(ctx *gin.Context) {
		principal, err := utilities.ExtractPrincipal(ctx)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, utilities.ErrorResponse{
				Error: err.Error(),
			})
			return
		}

		decision := access.Decide(principal, requirement)
		if !decision.Allowed {
			log.Printf("access denied: op=%s user=%s reason=%s", op, principal.UserID, decision.Reason)
			ctx.AbortWithStatusJSON(decision.Status(), utilities.ErrorResponse{
				Error: "User doesn't have permission to access",
			})
			return
		}

		ctx.Next()
	}
}

// RespondDenied writes the uniform access-denied response for a deny
// decision made inside a controller (ownership checks). The precise reason
// is logged, not leaked to the client.
func RespondDenied(ctx *gin.Context, principal access.Principal, decision access.Decision) {
	log.Printf("access denied: user=%s reason=%s", principal.UserID, decision.Reason)
	ctx.JSON(decision.Status(), utilities.ErrorResponse{
		Error: "User doesn't have permission to access",
	})
}
