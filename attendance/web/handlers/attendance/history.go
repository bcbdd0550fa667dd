package attendance

import (
	"net/http"

	"github.com/gin-gonic/gin"

	engine "gymdesk.io/backoffice/attendance/core"
	"gymdesk.io/backoffice/utils"
	web "gymdesk.io/backoffice/web/common"
)

// History serves the per-person punch list of one month, the current month by default.
func (ep *Endpoint) History(c *gin.Context) {
	rc, ok := ep.reconstructor(c)
	if !ok {
		return
	}

	id := c.Param("id")
	month := c.DefaultQuery("month", rc.Clock().Format(engine.MonthLayout))

	rng, err := engine.ParseMonth(month, rc.Zone())
	if err != nil {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse(err.Error()))
		return
	}

	src, release, err := ep.base.GetStore(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}
	defer release()

	person, days, err := rc.PersonHistory(c.Request.Context(), src, id, rng)
	if err != nil {
		c.JSON(statusFor(err), web.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, web.NewSuccessResponse(HistoryDTO{
		PersonID: person.ID,
		Name:     person.DisplayName,
		Role:     person.Role,
		Month:    month,
		Days:     utils.Map(days, toDayHistoryDTO),
	}))
}
