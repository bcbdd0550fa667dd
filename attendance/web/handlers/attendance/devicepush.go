package attendance

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"gymdesk.io/backoffice/attendance/importer"
	"gymdesk.io/backoffice/attendance/model"
	web "gymdesk.io/backoffice/web/common"
)

// DevicePush is the sync payload of an offline door kiosk: the scans it
// recorded since its last pull.
type DevicePush struct {
	Changes      DeviceChanges `json:"changes"`
	LastPulledAt int64         `json:"lastPulledAt"`
}

type DeviceChanges struct {
	Records DeviceRecords `json:"records"`
}

type DeviceRecords struct {
	Created []DeviceScan `json:"created"`
	Updated []DeviceScan `json:"updated"`
}

type DeviceScan struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Punch     *int      `json:"punch"`
	Timestamp time.Time `json:"timestamp"`
	DeviceID  string    `json:"deviceId"`
}

func (s DeviceScan) toAccessLog() model.AccessLog {
	id := s.ID
	if id == "" {
		id = importer.LogID(s.UserID, s.Timestamp, s.DeviceID)
	}
	return model.AccessLog{
		ID:        id,
		UserID:    s.UserID,
		Timestamp: s.Timestamp,
		Punch:     s.Punch,
		DeviceID:  s.DeviceID,
		Source:    "device",
	}
}

func (ep *Endpoint) DevicePush(c *gin.Context) {
	var push DevicePush
	if err := c.ShouldBindJSON(&push); err != nil {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse(web.FormatBindingError(err)))
		return
	}

	scans := append(push.Changes.Records.Created, push.Changes.Records.Updated...)
	logs := make([]model.AccessLog, 0, len(scans))
	for _, s := range scans {
		if s.UserID == "" || s.Timestamp.IsZero() {
			c.JSON(http.StatusBadRequest, web.NewErrorResponse("every scan needs userId and timestamp"))
			return
		}
		logs = append(logs, s.toAccessLog())
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

	c.JSON(http.StatusOK, web.NewSuccessResponse(gin.H{"accepted": len(logs)}))
}
