package attendance

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gymdesk.io/backoffice/utils"
	web "gymdesk.io/backoffice/web/common"
)

func (ep *Endpoint) Search(c *gin.Context) {
	limit, offset := pageParams(c)

	report := ep.buildReport(c)
	if report == nil {
		return
	}

	page := web.Page(report.Days, limit, offset)
	c.JSON(http.StatusOK, web.NewPagedResponse(utils.Map(page, toDayRecordDTO), int64(len(report.Days)), limit, offset))
}

func (ep *Endpoint) Summary(c *gin.Context) {
	report := ep.buildReport(c)
	if report == nil {
		return
	}

	c.JSON(http.StatusOK, web.NewSuccessResponse(toSummaryDTO(report)))
}
