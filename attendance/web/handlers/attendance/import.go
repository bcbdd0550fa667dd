package attendance

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"gymdesk.io/backoffice/attendance/importer"
	"gymdesk.io/backoffice/attendance/model"
	web "gymdesk.io/backoffice/web/common"
)

// Import accepts punch files as multipart "files" and upserts every row.
// Nothing is saved when any file fails to parse.
func (ep *Endpoint) Import(c *gin.Context) {
	// Parse multipart form (max 50 MB)
	if err := c.Request.ParseMultipartForm(50 << 20); err != nil {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse(err.Error()))
		return
	}

	files := c.Request.MultipartForm.File["files"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse("no files uploaded"))
		return
	}

	rc, ok := ep.reconstructor(c)
	if !ok {
		return
	}

	var logs []model.AccessLog
	result := ImportResultDTO{Files: []string{}}
	for _, file := range files {
		f, err := file.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, web.NewErrorResponse(err.Error()))
			return
		}
		parsed, err := importer.Parse(file.Filename, f, rc.Zone())
		f.Close()
		if err != nil {
			c.JSON(http.StatusBadRequest, web.NewErrorResponse(fmt.Sprintf("%s: %v", file.Filename, err)))
			return
		}
		logs = append(logs, parsed...)
		result.Files = append(result.Files, file.Filename)
	}

	src, release, err := ep.base.GetStore(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}
	defer release()

	if err := src.SaveAccessLogs(c.Request.Context(), logs); err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}

	result.Imported = len(logs)
	c.JSON(http.StatusOK, web.NewSuccessResponse(result))
}
