package router

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lotoplay/backend/config"
	"github.com/lotoplay/backend/pkg/logger"
	"gorm.io/gorm"
)

type HandlerFunc[Request, Response any] func(ctx context.Context, req *Request) (*Response, error)

type Router struct {
	Inner gin.IRouter

	db     *gorm.DB
	cfg    config.Configs
	logger logger.Logger
}

func New(db *gorm.DB, cfg config.Configs, logger logger.Logger) *Router {
	return &Router{
		Inner:  gin.New(),
		db:     db,
		cfg:    cfg,
		logger: logger,
	}
}

func GET[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.Inner.GET(pattern, wrapHandler(r, http.MethodGet, handler))
}

func POST[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.Inner.POST(pattern, wrapHandler(r, http.MethodPost, handler))
}

func (r *Router) Group(pattern string) *Router {
	return &Router{
		Inner:  r.Inner.Group(pattern),
		db:     r.db,
		cfg:    r.cfg,
		logger: r.logger,
	}
}

func (r *Router) Handler() http.Handler {
	return r.Inner.(*gin.Engine)
}
