package attendance

import (
	"net/http"

	"github.com/gin-gonic/gin"

	web "gymdesk.io/backoffice/web/common"
)

func (ep *Endpoint) Presence(c *gin.Context) {
	rc, ok := ep.reconstructor(c)
	if !ok {
		return
	}

	src, release, err := ep.base.GetStore(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}
	defer release()

	presence, err := rc.LivePresence(c.Request.Context(), src)
	if err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, web.NewSuccessResponse(toPresenceDTO(presence)))
}
