package attendance

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	engine "gymdesk.io/backoffice/attendance/core"
	common "gymdesk.io/backoffice/attendance/web/common"
	web "gymdesk.io/backoffice/web/common"
)

type Endpoint struct {
	base common.Handler
}

func RegisterHandler(r *gin.RouterGroup, base common.Handler) {
	endpoint := &Endpoint{base: base}
	r.GET("/whoami", endpoint.WhoAmI)
	r.POST("/session/refresh", endpoint.RefreshSession)
	r.GET("/attendance/months", endpoint.Months)
	r.POST("/attendance/search", endpoint.Search)
	r.POST("/attendance/summary", endpoint.Summary)
	r.POST("/attendance/export", endpoint.Export)
	r.GET("/attendance/presence", endpoint.Presence)
	r.GET("/people/:id/history", endpoint.History)
	r.POST("/access-logs/import", endpoint.Import)
	r.POST("/devices/push", endpoint.DevicePush)
}

// SearchParams selects a window either by month label or by an explicit date range.
type SearchParams struct {
	Month     string        `json:"month" binding:"required_without=StartDate"`
	StartDate *web.DateOnly `json:"startDate" binding:"required_with=EndDate"`
	EndDate   *web.DateOnly `json:"endDate" binding:"required_with=StartDate"`
	Scope     string        `json:"scope" binding:"omitempty,oneof=all staff"`
	Role      string        `json:"role"`
	Search    string        `json:"search"`
}

func (p SearchParams) options(loc *time.Location) (engine.ReportOptions, error) {
	var rng engine.DateRange
	if p.StartDate != nil && !p.StartDate.IsZero() {
		if p.EndDate == nil || p.EndDate.IsZero() {
			return engine.ReportOptions{}, fmt.Errorf("%w: endDate is required", engine.ErrInvalidRange)
		}
		rng = engine.DateRange{Start: p.StartDate.In(loc), End: p.EndDate.In(loc)}
		if rng.Start.After(rng.End) {
			return engine.ReportOptions{}, fmt.Errorf("%w: %s", engine.ErrInvalidRange, rng)
		}
	} else {
		var err error
		if rng, err = engine.ParseMonth(p.Month, loc); err != nil {
			return engine.ReportOptions{}, err
		}
	}

	population, err := engine.ParsePopulation(p.Scope)
	if err != nil {
		return engine.ReportOptions{}, err
	}

	return engine.ReportOptions{
		Range:  rng,
		Scope:  engine.RosterScope{Population: population, Role: strings.TrimSpace(p.Role)},
		Search: p.Search,
	}, nil
}

// reconstructor resolves the studio of the request. It writes the error response
// itself and returns false in that case.
func (ep *Endpoint) reconstructor(c *gin.Context) (*engine.Reconstructor, bool) {
	rc, err := ep.base.GetReconstructor(c)
	if err != nil {
		fmt.Printf("[ERROR] %v\n", err)
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return nil, false
	}
	return rc, true
}

// buildReport binds the request, opens the studio store and runs the report.
// It writes the error response itself and returns nil in that case.
func (ep *Endpoint) buildReport(c *gin.Context) *engine.Report {
	var params SearchParams
	if err := c.ShouldBindJSON(&params); err != nil {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse(web.FormatBindingError(err)))
		return nil
	}

	rc, ok := ep.reconstructor(c)
	if !ok {
		return nil
	}

	opts, err := params.options(rc.Zone())
	if err != nil {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse(err.Error()))
		return nil
	}

	src, release, err := ep.base.GetStore(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return nil
	}
	defer release()

	report, err := rc.BuildReport(c.Request.Context(), src, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return nil
	}
	return report
}

func pageParams(c *gin.Context) (int, int) {
	limit := 1000
	offset := 0
	if val, err := strconv.Atoi(c.Query("limit")); err == nil && val >= 0 {
		limit = val
	}
	if val, err := strconv.Atoi(c.Query("offset")); err == nil && val > 0 {
		offset = val
	}
	return limit, offset
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, engine.ErrPersonNotFound):
		return http.StatusNotFound
	case errors.Is(err, engine.ErrInvalidRange), errors.Is(err, engine.ErrInvalidMonth):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
