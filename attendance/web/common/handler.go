package common

import (
	"context"
	"database/sql"
	"fmt"
	"net"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	attendance "gymdesk.io/backoffice/attendance/core"
	"gymdesk.io/backoffice/attendance/model"
	"gymdesk.io/backoffice/attendance/store"
	"gymdesk.io/backoffice/console"
	"gymdesk.io/backoffice/core"
)

// Store is what a request needs from its studio schema.
type Store interface {
	attendance.Source
	SaveAccessLogs(ctx context.Context, logs []model.AccessLog) error
}

// StudioFinder resolves the studio registered for a hostname. A nil studio means none is.
type StudioFinder func(ctx context.Context, domain string) (*console.Studio, error)

// ConsoleStudios looks studios up in the console database.
func ConsoleStudios(db *gorm.DB) StudioFinder {
	return func(ctx context.Context, domain string) (*console.Studio, error) {
		return console.FindStudioByDomain(db.WithContext(ctx), domain)
	}
}

type Handler struct {
	Dm *core.DatabaseManager
	// Reconstructor holds the process defaults. Studios override them per request.
	Reconstructor *attendance.Reconstructor
	Studios       StudioFinder
	// SigningKey signs refreshed session tokens.
	SigningKey []byte

	// OpenStore replaces the database-backed store when set.
	OpenStore func(c *gin.Context) (Store, func(), error)
}

func GetHostname(host string) string {
	if h, _, err := net.SplitHostPort(host); err == nil {
		return h
	}
	return host
}

func (h *Handler) GetDB(r *gin.Context) (*gorm.DB, *sql.Conn, error) {
	hostname := GetHostname(r.Request.Host)
	return h.Dm.GetDB(r.Request.Context(), hostname)
}

// GetStore opens the store of the studio addressed by the request host.
// The returned func releases it.
func (h *Handler) GetStore(c *gin.Context) (Store, func(), error) {
	if h.OpenStore != nil {
		return h.OpenStore(c)
	}

	db, conn, err := h.GetDB(c)
	if err != nil {
		return nil, nil, err
	}
	return store.New(db), func() { conn.Close() }, nil
}

// GetReconstructor returns the reconstructor of the studio addressed by the request host.
// Hosts without a registered studio use the defaults.
func (h *Handler) GetReconstructor(c *gin.Context) (*attendance.Reconstructor, error) {
	if h.Studios == nil {
		return h.Reconstructor, nil
	}

	hostname := GetHostname(c.Request.Host)
	studio, err := h.Studios(c.Request.Context(), hostname)
	if err != nil {
		return nil, fmt.Errorf("failed to find studio for %s: %w", hostname, err)
	}
	if studio == nil {
		return h.Reconstructor, nil
	}
	return studio.Reconstructor(h.Reconstructor)
}
