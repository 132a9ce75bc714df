package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lotoplay/backend/pkg/xcontext"
)

// userIDHeader carries the already-authenticated caller identity. The
// authentication layer in front of this service fills it in.
const userIDHeader = "X-User-Id"

func wrapHandler[Request, Response any](
	router *Router,
	method string,
	handler HandlerFunc[Request, Response],
) gin.HandlerFunc {
	return func(gctx *gin.Context) {
		var req Request
		var err error
		switch method {
		case http.MethodGet:
			err = gctx.BindQuery(&req)
		case http.MethodPost:
			err = gctx.BindJSON(&req)
		}
		if err != nil {
			gctx.JSON(http.StatusBadRequest, newErrorResponse(err))
			return
		}

		ctx := xcontext.WithDB(gctx.Request.Context(), router.db)
		ctx = xcontext.WithConfigs(ctx, router.cfg)
		ctx = xcontext.WithLogger(ctx, router.logger)
		if userID := gctx.GetHeader(userIDHeader); userID != "" {
			ctx = xcontext.WithRequestUserID(ctx, userID)
		}

		resp, err := handler(ctx, &req)
		if err != nil {
			gctx.JSON(http.StatusOK, newErrorResponse(err))
			return
		}

		gctx.JSON(http.StatusOK, newResponse(resp))
	}
}
