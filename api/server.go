package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/MixinNetwork/launchpad/chain"
	"github.com/MixinNetwork/launchpad/runtime"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// EventArchive searches events across blocks.
type EventArchive interface {
	ListEvents(ctx context.Context, module, name, account string, limit int) ([]*chain.Event, error)
}

type Server struct {
	rt      *runtime.Runtime
	archive EventArchive
	log     *zap.Logger
}

// New builds the router. The /events search is only served when arc is
// not nil.
func New(rt *runtime.Runtime, arc EventArchive, gatherer prometheus.Gatherer, log *zap.Logger) *gin.Engine {
	s := &Server{rt: rt, archive: arc, log: log.With(zap.String("service", "api"))}

	g := gin.New()
	g.Use(gin.Recovery())
	g.GET("/launchpad/collections", s.launchpadCollections)
	g.GET("/collections/:id", s.collection)
	g.GET("/collections/:id/items", s.items)
	g.GET("/funds/:index", s.fund)
	g.GET("/accounts/:id/balance", s.balance)
	g.GET("/proposals", s.proposalIDs)
	g.GET("/proposals/:id", s.proposal)
	g.GET("/blocks/:number/events", s.events)
	if arc != nil {
		g.GET("/events", s.searchEvents)
	}
	g.POST("/extrinsics/:call", s.submit)
	g.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	return g
}

func (s *Server) render(c *gin.Context, data any, err error) {
	if err != nil {
		status := statusOf(err)
		if status == http.StatusInternalServerError {
			s.log.Error("Request failed", zap.String("path", c.FullPath()), zap.Error(err))
		}
		c.JSON(status, gin.H{"err": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": data})
}

func statusOf(err error) int {
	switch kind := chain.KindOf(err); {
	case errors.Is(kind, chain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(kind, chain.ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(kind, chain.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(kind, chain.ErrCapacityExceeded), errors.Is(kind, chain.ErrOverflow):
		return http.StatusUnprocessableEntity
	case errors.Is(kind, chain.ErrInsufficientFunds):
		return http.StatusPaymentRequired
	case errors.Is(kind, chain.ErrThresholdNotMet):
		return http.StatusPreconditionFailed
	case errors.Is(kind, chain.ErrInvalidArgument):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func paramUint32(c *gin.Context, name string) (uint32, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": "bad " + name})
		return 0, false
	}
	return uint32(v), true
}
