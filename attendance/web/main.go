package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	engine "gymdesk.io/backoffice/attendance/core"
	common "gymdesk.io/backoffice/attendance/web/common"
	"gymdesk.io/backoffice/attendance/web/handlers/attendance"
	"gymdesk.io/backoffice/console"
	"gymdesk.io/backoffice/core"
	"gymdesk.io/backoffice/infrastructure/devops"
	"gymdesk.io/backoffice/web/middlewares"
)

func main() {
	settings, err := devops.LoadSettings()
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("using driver: %s\n", settings.DBDriver)
	fmt.Printf("using timezone: %s, late after %s\n", settings.Timezone, settings.LateThreshold)

	dm, err := core.New(settings.DBDriver, settings.DSN, settings.DBMaxConnections)
	if err != nil {
		log.Fatal(err)
	}
	defer dm.Close()
	dm.LogLevel = core.ParseLogLevel(settings.LogLevel)

	rc, err := engine.ConfigureReconstructor(settings.LateThreshold, settings.Timezone)
	if err != nil {
		log.Fatal(err)
	}

	jwtSecret, err := settings.SigningKey()
	if err != nil {
		log.Fatal("Failed to decode signing secret:", err)
	}

	base := common.Handler{Dm: dm, Reconstructor: rc, SigningKey: jwtSecret}
	if consoleDB, err := console.Connect(context.Background()); err != nil {
		fmt.Printf("[ERROR] console unavailable, using default studio settings: %v\n", err)
	} else {
		base.Studios = common.ConsoleStudios(consoleDB)
	}

	r := gin.Default()
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	r.GET("/api/attendance/manifest", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"version":       "1.0.0",
			"lateThreshold": rc.LateThreshold.String(),
			"timezone":      rc.Location.String(),
		})
	})

	protected := r.Group("/api/attendance/v1.0")
	protected.Use(middlewares.Authentication(jwtSecret))
	{
		attendance.RegisterHandler(protected, base)
	}

	r.Run("0.0.0.0:" + settings.Port)
}
