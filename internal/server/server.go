// Package server exposes the collector over HTTP.
package server

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/jask/tickerdeck/internal/catalog"
	"github.com/jask/tickerdeck/internal/dataset"
	"github.com/jask/tickerdeck/internal/market"
	"github.com/jask/tickerdeck/internal/service"
)

// Server routes HTTP requests to a collector.
type Server struct {
	Collector *service.Collector
}

// Handler builds the gin engine.
func (s *Server) Handler() http.Handler {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), cors.Default())

	api := r.Group("/api")
	api.GET("/health", s.HealthHandler)
	api.GET("/indicators", s.IndicatorsHandler)
	api.POST("/download", s.DownloadHandler)
	api.GET("/download-file/:filename", s.DownloadFileHandler)
	api.GET("/list-files", s.ListFilesHandler)
	api.POST("/delete-files", s.DeleteFilesHandler)

	r.GET("/exec", s.ExecHandler)
	r.POST("/exec", s.ExecHandler)
	return r
}

// Serve runs until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	log.Printf("Listening on %s", ln.Addr())
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) IndicatorsHandler(c *gin.Context) {
	l := s.Collector.Catalog.Listing()
	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"commodities": l.Commodities,
		"stocks":      l.Stocks,
		"exchange":    l.Exchange,
	})
}

// DownloadRequest is the JSON body of POST /api/download.
type DownloadRequest struct {
	Start       string   `json:"start_date"`
	End         string   `json:"end_date"`
	Commodities []string `json:"commodities"`
	Stocks      []string `json:"stocks"`
	Exchange    []string `json:"exchange"`
	Features    []string `json:"features"`
}

func (s *Server) DownloadHandler(c *gin.Context) {
	var req DownloadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	features := dataset.Features{Price: true}
	if req.Features != nil {
		features = dataset.ParseFeatures(req.Features)
	}

	res, err := s.Collector.Download(c.Request.Context(), service.Request{
		Start: req.Start,
		End:   req.End,
		Selections: map[catalog.Category][]string{
			catalog.Commodities: req.Commodities,
			catalog.Stocks:      req.Stocks,
			catalog.Exchange:    req.Exchange,
		},
		Features: features,
	})
	switch {
	case errors.Is(err, service.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	case errors.Is(err, service.ErrNoData):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error(), "errors": res.Errors})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, newDownloadResponse(res))
}

func (s *Server) DownloadFileHandler(c *gin.Context) {
	name := c.Param("filename")
	path, err := s.Collector.OpenExport(name)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "file not found"})
		return
	}
	c.Header("Content-Type", "text/csv")
	c.FileAttachment(path, name)
}

func (s *Server) ListFilesHandler(c *gin.Context) {
	files, err := s.Collector.Exports(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}
	type entry struct {
		Filename string `json:"filename"`
		Size     int64  `json:"size"`
		Modified string `json:"modified"`
	}
	out := make([]entry, len(files))
	for i, f := range files {
		out[i] = entry{Filename: f.Name, Size: f.Size, Modified: f.Modified.Format(time.DateTime)}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "files": out})
}

func (s *Server) DeleteFilesHandler(c *gin.Context) {
	res, err := s.Collector.DeleteExports(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}
	errs := res.Errors
	if errs == nil {
		errs = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "deleted_count": res.Deleted, "errors": errs})
}

// ExecHandler answers the spreadsheet proxy protocol so clients written
// against it can point at this server instead. Every reply is 200.
func (s *Server) ExecHandler(c *gin.Context) {
	switch param(c, "action") {
	case "test":
		c.JSON(http.StatusOK, market.SheetResponse{Status: "ok", Message: "tickerdeck is running"})
	case "fetch_stock":
		ticker, start, end := param(c, "ticker"), param(c, "start_date"), param(c, "end_date")
		if ticker == "" || start == "" || end == "" {
			c.JSON(http.StatusOK, market.SheetResponse{Error: "Missing parameters: ticker, start_date, end_date"})
			return
		}
		pts, err := s.Collector.Quote(c.Request.Context(), ticker, start, end)
		if err != nil && !errors.Is(err, market.ErrNoData) {
			c.JSON(http.StatusOK, market.SheetResponse{Error: err.Error()})
			return
		}
		if pts == nil {
			pts = []market.PricePoint{}
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "ticker": ticker, "data": pts})
	default:
		c.JSON(http.StatusOK, market.SheetResponse{Error: "Invalid action"})
	}
}

func param(c *gin.Context, key string) string {
	if v := c.Query(key); v != "" {
		return v
	}
	return c.PostForm(key)
}
