package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/cosmicgardener/gardener-server-go/internal/config"
	"github.com/cosmicgardener/gardener-server-go/internal/game"
	"github.com/cosmicgardener/gardener-server-go/internal/game/catalog"
	"github.com/cosmicgardener/gardener-server-go/internal/game/gesture"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// API serves games to browsers over REST and WebSocket.
type API struct {
	games    *game.Manager
	logger   *zap.Logger
	upgrader websocket.Upgrader
}

// NewAPI creates the browser API.
func NewAPI(games *game.Manager, logger *zap.Logger) *API {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &API{
		games:  games,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Origins are enforced by the CORS middleware.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// NewRouter builds the gin engine with every route of the API.
func NewRouter(api *API, cfg config.ServerConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(api.logger))
	r.Use(cors.New(corsConfig(cfg.AllowedOrigins)))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "games": api.games.Count()})
	})

	v1 := r.Group("/api")
	{
		v1.GET("/cards", api.listCards)
		v1.POST("/games", api.createGame)

		g := v1.Group("/games/:gameID")
		g.GET("", api.getView)
		g.DELETE("", api.removeGame)
		g.POST("/begin", api.begin)
		g.GET("/cards", api.browse)
		g.POST("/cards/:cardID/select", api.selectCard)
		g.POST("/cards/:cardID/deselect", api.deselectCard)
		g.POST("/cards/:cardID/toggle", api.toggleCard)
		g.POST("/cards/:cardID/gesture", api.gesture)
		g.POST("/deploy", api.deploy)
		g.POST("/reset", api.reset)
		g.GET("/report", api.getReport)
		g.GET("/replay", api.getReplay)
		g.GET("/checksum", api.getChecksum)
	}

	r.GET("/ws/games/:gameID", api.stream)
	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	cfg.AllowOrigins = origins
	return cfg
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client", c.ClientIP()),
		)
	}
}

func (api *API) fail(c *gin.Context, err error) {
	code := httpStatus(err)
	if code == http.StatusInternalServerError {
		api.logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(code, gin.H{"error": "internal error"})
		return
	}
	c.JSON(code, gin.H{"error": err.Error()})
}

func (api *API) lookup(c *gin.Context) (*game.Game, bool) {
	g, err := api.games.GetGame(c.Param("gameID"))
	if err != nil {
		api.fail(c, err)
		return nil, false
	}
	return g, true
}

func cardParam(c *gin.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("cardID"))
	if err != nil {
		return 0, fmt.Errorf("%w: card id %q", errBadRequest, c.Param("cardID"))
	}
	return id, nil
}

func (api *API) listCards(c *gin.Context) {
	cards := api.games.Catalog().All()
	if name := c.Query("category"); name != "" {
		category, err := catalog.ParseCategory(name)
		if err != nil {
			api.fail(c, fmt.Errorf("%w: %v", errBadRequest, err))
			return
		}
		cards = api.games.Catalog().ByCategory(category)
	}
	out := make([]game.CardView, 0, len(cards))
	for _, card := range cards {
		out = append(out, game.NewCardView(card, false, true))
	}
	c.JSON(http.StatusOK, gin.H{"data": out})
}

type createGameRequest struct {
	Seed *uint64 `json:"seed"`
}

func (api *API) createGame(c *gin.Context) {
	var req createGameRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			api.fail(c, fmt.Errorf("%w: %v", errBadRequest, err))
			return
		}
	}

	var (
		g   *game.Game
		err error
	)
	if req.Seed != nil {
		g, err = api.games.CreateGameWithSeed(*req.Seed)
	} else {
		g, err = api.games.CreateGame()
	}
	if err != nil {
		api.fail(c, err)
		return
	}
	seed, _ := api.games.Seed(g.ID())
	c.JSON(http.StatusCreated, gin.H{"data": gin.H{"game_id": g.ID(), "seed": seed, "view": g.View()}})
}

func (api *API) getView(c *gin.Context) {
	g, ok := api.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": g.View()})
}

func (api *API) removeGame(c *gin.Context) {
	if _, ok := api.lookup(c); !ok {
		return
	}
	api.games.RemoveGame(c.Param("gameID"))
	c.Status(http.StatusNoContent)
}

func (api *API) begin(c *gin.Context) {
	g, ok := api.lookup(c)
	if !ok {
		return
	}
	if err := g.Begin(); err != nil {
		api.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": g.View()})
}

func (api *API) browse(c *gin.Context) {
	g, ok := api.lookup(c)
	if !ok {
		return
	}
	category, err := catalog.ParseCategory(c.DefaultQuery("category", string(catalog.CategoryPhysical)))
	if err != nil {
		api.fail(c, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}
	offers := g.Browse(category)
	out := make([]game.CardView, 0, len(offers))
	for _, o := range offers {
		out = append(out, game.NewCardView(o.Card, o.Selected, o.Affordable))
	}
	c.JSON(http.StatusOK, gin.H{"data": out})
}

func (api *API) changeCard(c *gin.Context, op func(*game.Game, int) error) {
	g, ok := api.lookup(c)
	if !ok {
		return
	}
	cardID, err := cardParam(c)
	if err != nil {
		api.fail(c, err)
		return
	}
	if err := op(g, cardID); err != nil {
		api.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": g.View()})
}

func (api *API) selectCard(c *gin.Context)   { api.changeCard(c, (*game.Game).Select) }
func (api *API) deselectCard(c *gin.Context) { api.changeCard(c, (*game.Game).Deselect) }
func (api *API) toggleCard(c *gin.Context)   { api.changeCard(c, (*game.Game).Toggle) }

type gestureRequest struct {
	Diff float64 `json:"diff"`
}

// gesture commits a finished drag of diff pixels on a card.
func (api *API) gesture(c *gin.Context) {
	var req gestureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.fail(c, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}
	action := gesture.ActionFor(req.Diff)
	api.changeCard(c, func(g *game.Game, cardID int) error {
		return g.ApplyGesture(cardID, action)
	})
}

func (api *API) deploy(c *gin.Context) {
	g, ok := api.lookup(c)
	if !ok {
		return
	}
	if err := api.games.Deploy(g.ID()); err != nil {
		api.fail(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"data": g.View()})
}

type resetRequest struct {
	SkipIntro bool `json:"skip_intro"`
}

func (api *API) reset(c *gin.Context) {
	var req resetRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			api.fail(c, fmt.Errorf("%w: %v", errBadRequest, err))
			return
		}
	}
	g, ok := api.lookup(c)
	if !ok {
		return
	}
	if err := api.games.Reset(g.ID(), req.SkipIntro); err != nil {
		api.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": g.View()})
}

func (api *API) getReport(c *gin.Context) {
	g, ok := api.lookup(c)
	if !ok {
		return
	}
	r, ready := g.Report()
	if !ready {
		api.fail(c, fmt.Errorf("%w: report not ready", game.ErrWrongPhase))
		return
	}
	if c.Query("format") == "text" {
		c.String(http.StatusOK, r.Text())
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": r})
}

func (api *API) getReplay(c *gin.Context) {
	g, ok := api.lookup(c)
	if !ok {
		return
	}
	replay := g.Replay()
	if raw := c.Query("index"); raw != "" {
		index, err := strconv.Atoi(raw)
		if err != nil {
			api.fail(c, fmt.Errorf("%w: index %q", errBadRequest, raw))
			return
		}
		snapshot := replay.GetStateAt(index)
		if snapshot == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("no snapshot at index %d", index)})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": snapshot})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"size": replay.Size(), "snapshots": replay.Snapshots()}})
}

func (api *API) getChecksum(c *gin.Context) {
	g, ok := api.lookup(c)
	if !ok {
		return
	}
	if g.Replay().Size() == 0 {
		api.fail(c, fmt.Errorf("%w: nothing recorded yet", game.ErrWrongPhase))
		return
	}
	sum, err := g.Replay().Checksum()
	if err != nil {
		api.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": sum})
}

// isClosed reports whether err is a normal websocket close.
func isClosed(err error) bool {
	var ce *websocket.CloseError
	if errors.As(err, &ce) {
		return ce.Code == websocket.CloseNormalClosure || ce.Code == websocket.CloseGoingAway
	}
	return false
}
