package server

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/chrisissin/moodmap-journal/internal/config"
	"github.com/chrisissin/moodmap-journal/internal/journal"
	"github.com/chrisissin/moodmap-journal/internal/journal/codec"
	"github.com/chrisissin/moodmap-journal/internal/journal/logparse"
	"github.com/chrisissin/moodmap-journal/internal/journal/model"
	"github.com/chrisissin/moodmap-journal/internal/sheets"
	"github.com/chrisissin/moodmap-journal/internal/store"
)

type Server struct {
	Journal *journal.Journal
}

// NewServer wires the driver and sheet client from config plus env
// overrides. Without a store URI it runs on the in-memory driver, which
// is enough for a single session but persists nothing.
func NewServer(cfg *config.Config) *Server {
	if uri := os.Getenv("STORE_URI"); uri != "" {
		cfg.Store.URI = uri
	}
	if user := os.Getenv("STORE_USER"); user != "" {
		cfg.Store.User = user
	}
	if pass := os.Getenv("STORE_PASSWORD"); pass != "" {
		cfg.Store.Password = pass
	}
	if sheetURL := os.Getenv("SHEETS_URL"); sheetURL != "" {
		cfg.Sheets.URL = sheetURL
	}
	if secret := os.Getenv("SHEETS_SECRET"); secret != "" {
		cfg.Sheets.Secret = secret
	}

	var driver store.Driver
	if cfg.Store.URI != "" {
		d, err := store.NewBoltDriver(cfg.Store.URI, cfg.Store.User, cfg.Store.Password)
		if err != nil {
			log.Fatalf("Failed to connect to store: %v", err)
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := d.EnsureSchema(ctx); err != nil {
			log.Printf("Warning: schema setup failed: %v", err)
		}
		driver = d
	} else {
		log.Println("No STORE_URI configured, using in-memory store")
		driver = store.NewMemoryDriver()
	}

	var sync journal.Syncer
	if cfg.Sheets.URL != "" {
		sync = sheets.NewClient(cfg.Sheets.URL, cfg.Sheets.Secret)
	}

	return &Server{Journal: journal.New(driver, sync, cfg)}
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.Default()

	r.GET("/catalog", s.GetCatalog)
	r.GET("/days/:date", s.GetDay)
	r.POST("/days/:date/events", s.UpsertEvent)
	r.DELETE("/days/:date/events/:id", s.DeleteEvent)
	r.GET("/dashboard", s.Dashboard)
	r.POST("/import/text", s.ImportText)
	r.POST("/import/csv", s.ImportCSV)
	r.POST("/import/json", s.ImportJSON)
	r.GET("/export/json", s.ExportJSON)
	r.GET("/export/csv", s.ExportCSV)
	r.GET("/export/metrics.csv", s.ExportMetricsCSV)
	r.POST("/metrics/override", s.OverrideMetric)
	r.POST("/sync/push", s.SyncPush)
	r.POST("/sync/pull", s.SyncPull)

	return r
}

func (s *Server) GetCatalog(c *gin.Context) {
	c.JSON(http.StatusOK, s.Journal.Catalog)
}

func (s *Server) GetDay(c *gin.Context) {
	date := c.Param("date")
	c.JSON(http.StatusOK, gin.H{
		"date":   date,
		"events": s.Journal.Day(c.Request.Context(), date),
	})
}

func (s *Server) UpsertEvent(c *gin.Context) {
	var ev model.Event
	if err := c.ShouldBindJSON(&ev); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	saved, err := s.Journal.UpsertEvent(c.Request.Context(), c.Param("date"), ev)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, saved)
}

func (s *Server) DeleteEvent(c *gin.Context) {
	err := s.Journal.DeleteEvent(c.Request.Context(), c.Param("date"), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (s *Server) Dashboard(c *gin.Context) {
	start := c.Query("start")
	end := c.Query("end")
	if start == "" || end == "" {
		// Default to the trailing week.
		now := time.Now()
		end = now.Format("2006-01-02")
		start = now.AddDate(0, 0, -6).Format("2006-01-02")
	}

	summary, err := s.Journal.Dashboard(c.Request.Context(), start, end)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, summary)
}

type importTextRequest struct {
	Text string `json:"text"`
}

func (s *Server) ImportText(c *gin.Context) {
	var req importTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	result, err := s.Journal.ImportText(c.Request.Context(), req.Text)
	if err != nil {
		c.JSON(importStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) ImportCSV(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	result, err := s.Journal.ImportCSV(c.Request.Context(), body)
	if err != nil {
		c.JSON(importStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) ImportJSON(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	result, err := s.Journal.ImportJSON(c.Request.Context(), body)
	if err != nil {
		c.JSON(importStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// importStatus maps import failures: every parse/codec error is the
// caller's input, anything else is ours.
func importStatus(err error) int {
	switch {
	case errors.Is(err, logparse.ErrNoEvents),
		errors.Is(err, codec.ErrInvalidShape),
		errors.Is(err, codec.ErrMissingColumns):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) ExportJSON(c *gin.Context) {
	data, err := s.Journal.ExportJSON(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Header("Content-Disposition", `attachment; filename="journal-export.json"`)
	c.Data(http.StatusOK, "application/json", data)
}

func (s *Server) ExportCSV(c *gin.Context) {
	csv := s.Journal.ExportEventsCSV(c.Request.Context())
	c.Header("Content-Disposition", `attachment; filename="journal-events.csv"`)
	c.Data(http.StatusOK, "text/csv", []byte(csv))
}

func (s *Server) ExportMetricsCSV(c *gin.Context) {
	csv := s.Journal.ExportMetricsCSV(c.Request.Context())
	c.Header("Content-Disposition", `attachment; filename="daily-metrics.csv"`)
	c.Data(http.StatusOK, "text/csv", []byte(csv))
}

type overrideRequest struct {
	Date     string `json:"date" binding:"required"`
	Category string `json:"category" binding:"required"`
	Count    int    `json:"count"`
}

func (s *Server) OverrideMetric(c *gin.Context) {
	var req overrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if err := s.Journal.OverrideMetricCell(c.Request.Context(), req.Date, req.Category, req.Count); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

func (s *Server) SyncPush(c *gin.Context) {
	if err := s.Journal.PushAll(c.Request.Context()); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "pushed"})
}

func (s *Server) SyncPull(c *gin.Context) {
	if err := s.Journal.PullAll(c.Request.Context()); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "pulled"})
}
