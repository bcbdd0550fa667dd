package v1

import (
	"context"
	"strconv"

	api "gymdesk.io/backoffice/attendance/web/handlers/attendance"
	web "gymdesk.io/backoffice/web/common"
)

const basePath = "/api/attendance/v1.0"

type Envelope[T any] struct {
	Data T `json:"data"`
}

type Page[T any] struct {
	Data       []T            `json:"data"`
	Pagination web.Pagination `json:"pagination"`
}

type AttendanceEndpoint struct {
	transport *Transport
}

func (e *AttendanceEndpoint) Search(ctx context.Context, params api.SearchParams, limit, offset int) (*Page[api.DayRecordDTO], error) {
	query := map[string]string{
		"limit":  strconv.Itoa(limit),
		"offset": strconv.Itoa(offset),
	}
	resp, err := e.transport.Post(ctx, basePath+"/attendance/search", params, query)
	if err != nil {
		return nil, err
	}

	var page Page[api.DayRecordDTO]
	if err := resp.Decode(&page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (e *AttendanceEndpoint) Summary(ctx context.Context, params api.SearchParams) (*api.SummaryDTO, error) {
	resp, err := e.transport.Post(ctx, basePath+"/attendance/summary", params, nil)
	if err != nil {
		return nil, err
	}

	var res Envelope[api.SummaryDTO]
	if err := resp.Decode(&res); err != nil {
		return nil, err
	}
	return &res.Data, nil
}

func (e *AttendanceEndpoint) Presence(ctx context.Context) (*api.PresenceDTO, error) {
	resp, err := e.transport.Get(ctx, basePath+"/attendance/presence", nil)
	if err != nil {
		return nil, err
	}

	var res Envelope[api.PresenceDTO]
	if err := resp.Decode(&res); err != nil {
		return nil, err
	}
	return &res.Data, nil
}

func (e *AttendanceEndpoint) Months(ctx context.Context) (*api.MonthsDTO, error) {
	resp, err := e.transport.Get(ctx, basePath+"/attendance/months", nil)
	if err != nil {
		return nil, err
	}

	var res Envelope[api.MonthsDTO]
	if err := resp.Decode(&res); err != nil {
		return nil, err
	}
	return &res.Data, nil
}

// Export downloads the xlsx workbook of the selected window.
func (e *AttendanceEndpoint) Export(ctx context.Context, params api.SearchParams) ([]byte, error) {
	resp, err := e.transport.Post(ctx, basePath+"/attendance/export", params, nil)
	if err != nil {
		return nil, err
	}
	return resp.Data, nil
}
