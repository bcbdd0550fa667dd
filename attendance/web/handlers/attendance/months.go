package attendance

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	engine "gymdesk.io/backoffice/attendance/core"
	"gymdesk.io/backoffice/security"
	web "gymdesk.io/backoffice/web/common"
	"gymdesk.io/backoffice/web/middlewares"
)

func (ep *Endpoint) Months(c *gin.Context) {
	rc, ok := ep.reconstructor(c)
	if !ok {
		return
	}

	now := rc.Clock()
	c.JSON(http.StatusOK, web.NewSuccessResponse(MonthsDTO{
		Current: now.Format(engine.MonthLayout),
		Options: engine.MonthOptions(now, 12),
	}))
}

func (ep *Endpoint) WhoAmI(c *gin.Context) {
	session, ok := security.FromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, web.NewErrorResponse("no session"))
		return
	}
	c.JSON(http.StatusOK, web.NewSuccessResponse(session))
}

// RefreshSession re-issues the caller's token with the expiry stamped from now.
func (ep *Endpoint) RefreshSession(c *gin.Context) {
	session, ok := security.FromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, web.NewErrorResponse("no session"))
		return
	}
	if len(ep.base.SigningKey) == 0 {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse("session signing is not configured"))
		return
	}

	refreshed := security.Refresh(session, ep.base.Reconstructor.Clock())
	token, err := security.IssueToken(refreshed, ep.base.SigningKey)
	if err != nil {
		fmt.Printf("[ERROR] %v\n", err)
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}

	c.SetCookie(middlewares.SessionCookie, token, int(security.SessionTTL.Seconds()), "/", "", true, true)
	c.JSON(http.StatusOK, web.NewSuccessResponse(SessionTokenDTO{
		Token:     token,
		ExpiresAt: refreshed.ExpiresAt,
	}))
}
