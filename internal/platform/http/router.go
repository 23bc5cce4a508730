package http

import (
	"bytes"
	"encoding/csv"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/incomemap/dashboard/apps/api/internal/business/income"
	"github.com/incomemap/dashboard/apps/api/internal/platform/chart"
	"github.com/incomemap/dashboard/apps/api/pkg/model"
)

// Router wires HTTP handlers.
type Router struct {
	dataset *income.Dataset
	origins string
}

func NewRouter(dataset *income.Dataset, allowedOrigins string) *gin.Engine {
	r := &Router{
		dataset: dataset,
		origins: allowedOrigins,
	}

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery(), r.corsMiddleware())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "records": r.dataset.Len()})
	})

	api := router.Group("/api")
	{
		api.GET("/states", r.listStates)
		api.GET("/bins", r.listBins)
		api.GET("/stats", r.getStats)
		api.GET("/map", r.getMap)
		api.GET("/chart", r.getChart)
		api.GET("/chart.png", r.getChartPNG)
		api.GET("/records", r.exportRecords)
	}

	return router
}

func (r *Router) corsMiddleware() gin.HandlerFunc {
	origins := strings.Split(r.origins, ",")
	trimmed := make([]string, 0, len(origins))
	for _, o := range origins {
		if t := strings.TrimSpace(o); t != "" {
			trimmed = append(trimmed, t)
		}
	}
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		allowed := "*"
		for _, o := range trimmed {
			if o == "*" || o == origin {
				allowed = origin
				break
			}
		}
		c.Header("Access-Control-Allow-Origin", allowed)
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		c.Header("Access-Control-Allow-Methods", "GET, OPTIONS")
		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			c.Abort()
			return
		}
		c.Next()
	}
}

func (r *Router) listStates(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"items": r.dataset.States()})
}

func (r *Router) listBins(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"items": r.dataset.Table().Legend()})
}

func (r *Router) getStats(c *gin.Context) {
	c.JSON(http.StatusOK, r.dataset.Summary())
}

func (r *Router) getMap(c *gin.Context) {
	viewport, err := parseViewport(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, r.dataset.MapView(income.StatePtr(c.Query("state")), viewport))
}

// chartSeries answers the chart dropdown. With no state selected the chart stays empty.
func (r *Router) chartSeries(c *gin.Context) (string, income.Metric, []model.SeriesPoint, bool) {
	metric, err := income.ParseMetric(c.Query("metric"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return "", "", nil, false
	}
	state := c.Query("state")
	if state == "" {
		return state, metric, []model.SeriesPoint{}, true
	}
	return state, metric, r.dataset.Series(&state, metric), true
}

func (r *Router) getChart(c *gin.Context) {
	state, metric, series, ok := r.chartSeries(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"state":  state,
		"metric": metric,
		"title":  metric.Label(),
		"items":  series,
	})
}

func (r *Router) getChartPNG(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "0"))
	if err != nil || limit < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
		return
	}
	state, metric, series, ok := r.chartSeries(c)
	if !ok {
		return
	}

	title := metric.Label()
	if state != "" {
		title += " in " + state
	}
	var buf bytes.Buffer
	err = chart.RenderBarChart(&buf, series, chart.Options{Title: title, Limit: limit})
	if errors.Is(err, chart.ErrNoData) {
		c.Status(http.StatusNoContent)
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

func (r *Router) exportRecords(c *gin.Context) {
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", "attachment; filename=income_records.csv")

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	if err := writer.Write([]string{"state", "county", "city", "zip", "lat", "lon", "mean", "median", "stdev", "color"}); err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	for _, rec := range r.dataset.Records(income.StatePtr(c.Query("state"))) {
		row := []string{
			rec.State,
			rec.County,
			rec.City,
			rec.ZipCode,
			formatFloat(rec.Latitude),
			formatFloat(rec.Longitude),
			formatFloat(rec.Mean),
			formatFloat(rec.Median),
			formatFloat(rec.Stdev),
			rec.Color,
		}
		if err := writer.Write(row); err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
	}
}

// parseViewport reads the caller's current map center and zoom. All three must be given
// together; none at all keeps the default framing.
func parseViewport(c *gin.Context) (*income.Viewport, error) {
	lat, lon, zoom := c.Query("lat"), c.Query("lon"), c.Query("zoom")
	if lat == "" && lon == "" && zoom == "" {
		return nil, nil
	}
	if lat == "" || lon == "" || zoom == "" {
		return nil, errors.New("lat, lon and zoom must be given together")
	}
	var vp income.Viewport
	var err error
	if vp.Lat, err = strconv.ParseFloat(lat, 64); err != nil || !(vp.Lat >= -90 && vp.Lat <= 90) {
		return nil, errors.New("lat must be a number between -90 and 90")
	}
	if vp.Lon, err = strconv.ParseFloat(lon, 64); err != nil || !(vp.Lon >= -180 && vp.Lon <= 180) {
		return nil, errors.New("lon must be a number between -180 and 180")
	}
	if vp.Zoom, err = strconv.ParseFloat(zoom, 64); err != nil || !(vp.Zoom >= 0 && vp.Zoom <= 22) {
		return nil, errors.New("zoom must be a number between 0 and 22")
	}
	return &vp, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
