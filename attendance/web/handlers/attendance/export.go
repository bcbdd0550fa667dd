package attendance

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	engine "gymdesk.io/backoffice/attendance/core"
	"gymdesk.io/backoffice/attendance/export"
	"gymdesk.io/backoffice/infrastructure/filesystem"
	web "gymdesk.io/backoffice/web/common"
)

func (ep *Endpoint) Export(c *gin.Context) {
	report := ep.buildReport(c)
	if report == nil {
		return
	}

	var buf bytes.Buffer
	if err := export.WriteWorkbook(&buf, report); err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}

	filename := fmt.Sprintf("attendance-%s-%s.xlsx",
		report.Range.Start.Format(engine.DateLayout),
		report.Range.End.Format(engine.DateLayout))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, filesystem.XlsxContentType, buf.Bytes())
}
