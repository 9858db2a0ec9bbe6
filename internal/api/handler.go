package api

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/shambhavi-kumar59/safenet/internal/config"
	"github.com/shambhavi-kumar59/safenet/internal/models"
	"github.com/shambhavi-kumar59/safenet/internal/repository"
	"github.com/shambhavi-kumar59/safenet/internal/safety"
	"github.com/shambhavi-kumar59/safenet/internal/scoring"
	"github.com/shambhavi-kumar59/safenet/internal/stream"
	"github.com/shambhavi-kumar59/safenet/internal/zones"
)

type Handler struct {
	routes      repository.RouteRepository
	disasters   repository.DisasterRepository
	engine      *scoring.Engine
	broadcaster *stream.Broadcaster
	search      config.SearchConfig
	now         func() time.Time
}

func NewHandler(routes repository.RouteRepository, disasters repository.DisasterRepository, engine *scoring.Engine, broadcaster *stream.Broadcaster, search config.SearchConfig) *Handler {
	return &Handler{
		routes:      routes,
		disasters:   disasters,
		engine:      engine,
		broadcaster: broadcaster,
		search:      search,
		now:         time.Now,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")
	api.GET("/routes", h.getRoutes)
	api.POST("/routes", h.createRoute)
	api.GET("/routes/stream", h.streamRouteStatus)
	api.GET("/routes/:id", h.getRoute)
	api.PUT("/routes/:id/status", h.updateRouteStatus)
	api.GET("/routes/:id/history", h.getRouteHistory)
	api.GET("/zones", h.getZones)
	api.POST("/disasters", h.createDisaster)
	api.GET("/disasters/:id", h.getDisaster)
	api.GET("/disasters/:id/zones", h.getDisasterZones)
	api.GET("/safety/:type", h.getSafetyInstructions)

	r.GET("/health", h.health)
}

// getRoutes recommends evacuation routes for a user near an active disaster.
func (h *Handler) getRoutes(c *gin.Context) {
	var q RoutesQuery
	if !bindQuery(c, &q) {
		return
	}
	user := q.Location()
	if err := user.Validate(); err != nil {
		badRequest(c, err)
		return
	}
	disasterType := models.DisasterType(q.DisasterType)
	ctx := c.Request.Context()

	nearby, err := h.disasters.ListActiveDisastersNear(ctx, repository.DisasterFilter{
		Center:        user,
		MaxDistanceKm: h.search.DisasterRadiusKm,
		Type:          &disasterType,
	})
	if err != nil {
		h.fail(c, err, "failed to fetch disasters")
		return
	}
	if len(nearby) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "No active disasters in your area"})
		return
	}

	open := models.RouteStatusOpen
	available, err := h.routes.ListRoutesNear(ctx, repository.RouteFilter{
		Center:        user,
		MaxDistanceKm: h.search.RouteRadiusKm,
		Type:          &disasterType,
		Status:        &open,
	})
	if err != nil {
		h.fail(c, err, "failed to fetch routes")
		return
	}

	ranked := h.engine.Rank(user, available, h.now())
	slog.Debug("ranked routes", "candidates", len(available), "disaster_type", disasterType)

	if q.Format == "geojson" {
		c.Header("Content-Type", "application/geo+json")
		c.JSON(http.StatusOK, routesToGeoJSON(ranked))
		return
	}

	var recommended *models.ScoredRoute
	if len(ranked) > 0 {
		recommended = &ranked[0]
	}
	c.JSON(http.StatusOK, gin.H{
		"user_location":       user.Pair(),
		"nearby_disasters":    nonNil(nearby),
		"available_routes":    nonNil(available),
		"ranked_routes":       nonNil(ranked),
		"recommended_route":   recommended,
		"safety_instructions": safety.InstructionsFor(disasterType),
	})
}

func (h *Handler) createRoute(c *gin.Context) {
	var req CreateRouteRequest
	if !bindJSON(c, &req) {
		return
	}

	route := req.Route()
	route.LastUpdated = h.now().UTC()
	if err := h.routes.AddRoute(c.Request.Context(), &route); err != nil {
		h.fail(c, err, "failed to create route")
		return
	}

	slog.Info("route created", "id", route.ID, "disaster_type", route.DisasterType)
	c.JSON(http.StatusCreated, route)
}

func (h *Handler) getRoute(c *gin.Context) {
	route, err := h.routes.GetRoute(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err, "failed to fetch route")
		return
	}
	c.JSON(http.StatusOK, route)
}

func (h *Handler) updateRouteStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	id := c.Param("id")
	route, err := h.routes.UpdateRouteStatus(c.Request.Context(), id, models.RouteStatus(req.Status), req.UserID, h.now().UTC())
	if err != nil {
		h.fail(c, err, "failed to update route status")
		return
	}

	if h.broadcaster != nil {
		h.broadcaster.Broadcast(stream.NewEvent(route, req.UserID))
	}

	slog.Info("route status updated", "id", id, "status", route.Status, "reported_by", req.UserID)
	c.JSON(http.StatusOK, route)
}

func (h *Handler) getRouteHistory(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	if _, err := h.routes.GetRoute(ctx, id); err != nil {
		h.fail(c, err, "failed to fetch route")
		return
	}
	updates, err := h.routes.ListStatusUpdates(ctx, id)
	if err != nil {
		h.fail(c, err, "failed to fetch status history")
		return
	}
	c.JSON(http.StatusOK, gin.H{"route_id": id, "status_updates": nonNil(updates)})
}

// streamRouteStatus pushes route status changes as server-sent events until
// the client disconnects or the server shuts the broadcaster down.
func (h *Handler) streamRouteStatus(c *gin.Context) {
	if h.broadcaster == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "streaming disabled"})
		return
	}

	var filter *models.DisasterType
	if t := c.Query("disaster_type"); t != "" {
		dt, ok := models.ParseDisasterType(t)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown disaster_type"})
			return
		}
		filter = &dt
	}

	id, ch := h.broadcaster.Subscribe()
	defer h.broadcaster.Unsubscribe(id)
	slog.Info("client subscribed to route stream", "subscriber_id", id)

	ctx := c.Request.Context()
	c.Stream(func(w io.Writer) bool {
		for {
			select {
			case <-ctx.Done():
				slog.Info("client disconnected from route stream", "subscriber_id", id)
				return false
			case e, ok := <-ch:
				if !ok {
					return false
				}
				if filter != nil && e.DisasterType != *filter {
					continue
				}
				c.SSEvent("route_status", e)
				return true
			}
		}
	})
}

func (h *Handler) getZones(c *gin.Context) {
	var q ZonesQuery
	if !bindQuery(c, &q) {
		return
	}
	epicenter := models.Coordinate{Longitude: *q.Lng, Latitude: *q.Lat}
	if err := epicenter.Validate(); err != nil {
		badRequest(c, err)
		return
	}

	h.writeZones(c, epicenter, q.RadiusKm)
}

// createDisaster records an operator-declared incident so routes of its type
// become eligible for recommendation near it.
func (h *Handler) createDisaster(c *gin.Context) {
	var req CreateDisasterRequest
	if !bindJSON(c, &req) {
		return
	}

	d := req.Disaster("operator_"+uuid.NewString(), h.now().UTC())
	if err := h.disasters.AddDisaster(c.Request.Context(), &d); err != nil {
		h.fail(c, err, "failed to create disaster")
		return
	}

	slog.Info("disaster declared", "id", d.ID, "type", d.Type, "lat", d.Epicenter.Latitude, "lon", d.Epicenter.Longitude)
	c.JSON(http.StatusCreated, d)
}

func (h *Handler) getDisaster(c *gin.Context) {
	d, err := h.disasters.GetDisaster(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err, "failed to fetch disaster")
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h *Handler) getDisasterZones(c *gin.Context) {
	d, err := h.disasters.GetDisaster(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err, "failed to fetch disaster")
		return
	}

	radius := d.RadiusKm
	if radius <= 0 {
		radius = h.search.DefaultZoneRadiusKm
	}
	h.writeZones(c, d.Epicenter, radius)
}

func (h *Handler) writeZones(c *gin.Context, epicenter models.Coordinate, radiusKm float64) {
	z, err := zones.Generate(epicenter, radiusKm)
	if err != nil {
		h.fail(c, err, "failed to generate zones")
		return
	}
	c.Header("Content-Type", "application/geo+json")
	c.JSON(http.StatusOK, zones.FeatureCollection(z))
}

// getSafetyInstructions never fails: unknown types get the generic guidance.
func (h *Handler) getSafetyInstructions(c *gin.Context) {
	dt, _ := models.ParseDisasterType(c.Param("type"))
	c.JSON(http.StatusOK, gin.H{
		"disaster_type": dt,
		"instructions":  safety.InstructionsFor(dt),
	})
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) fail(c *gin.Context, err error, msg string) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, zones.ErrInvalidRadius), errors.Is(err, models.ErrInvalidCoordinate):
		badRequest(c, err)
	default:
		slog.Error(msg, "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
	}
}

func bindQuery(c *gin.Context, dst any) bool {
	if err := c.ShouldBindQuery(dst); err != nil {
		badRequest(c, err)
		return false
	}
	return validated(c, dst)
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		badRequest(c, err)
		return false
	}
	return validated(c, dst)
}

func validated(c *gin.Context, dst any) bool {
	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make(map[string]string, len(verrs))
			for _, fe := range verrs {
				fields[fe.Field()] = fe.Tag()
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": fields})
			return false
		}
		badRequest(c, err)
		return false
	}
	return true
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
