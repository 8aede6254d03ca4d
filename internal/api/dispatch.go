package api

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/kindredgraph/kindred/internal/domain"
	"github.com/kindredgraph/kindred/internal/httputil"
	"github.com/kindredgraph/kindred/internal/metrics"
	"github.com/kindredgraph/kindred/internal/models"
	"github.com/kindredgraph/kindred/internal/ws"
)

// Compile-time check.
var _ ws.Dispatcher = (*Dispatcher)(nil)

// Dispatcher answers WebSocket queries with the same services, validation and
// error mapping as the REST handlers.
type Dispatcher struct {
	family       domain.FamilyService
	path         domain.PathService
	match        domain.MatchService
	defaultDepth int
	log          *logrus.Logger
}

// NewDispatcher creates a Dispatcher.
func NewDispatcher(family domain.FamilyService, path domain.PathService, match domain.MatchService, defaultDepth int, log *logrus.Logger) *Dispatcher {
	return &Dispatcher{family: family, path: path, match: match, defaultDepth: defaultDepth, log: log}
}

// Dispatch implements ws.Dispatcher.
func (d *Dispatcher) Dispatch(ctx context.Context, req ws.Request) ws.Response {
	var (
		data any
		err  error
	)

	switch req.Type {
	case ws.TypeFamily:
		if err = models.ValidatePersonID("person_id", req.PersonID); err == nil {
			data, err = d.family.FamilyView(ctx, req.PersonID)
		}
	case ws.TypePath:
		var depth int
		if depth, err = validatePathQuery(req.From, req.To, "", d.defaultDepth); err == nil {
			if req.Depth != 0 {
				depth = req.Depth
				err = models.ValidateDepth(depth)
			}
		}

		if err == nil {
			data, err = d.path.FindPath(ctx, req.From, req.To, depth)
		}
	case ws.TypeSearch:
		search := models.MatchSearchRequest{}
		if req.Search != nil {
			search = *req.Search
		}

		if err = search.Validate(d.defaultDepth); err == nil {
			data, err = d.match.Search(ctx, search)
		}
	default:
		return errorResponse(models.ErrValidation)
	}

	if err != nil {
		if ctx.Err() != nil {
			// Superseded; the session drops this result.
			return ws.Response{Type: ws.TypeError}
		}

		resp := errorResponse(err)
		if resp.Error.Code == ErrCodeInternalError {
			d.log.WithError(err).WithField("type", req.Type).Error("websocket request failed")
		}

		return resp
	}

	return ws.Response{Type: req.Type, Data: data}
}

func errorResponse(err error) ws.Response {
	_, code, message := classifyError(err)
	metrics.ErrorsTotal.WithLabelValues(code).Inc()

	return ws.Response{
		Type:  ws.TypeError,
		Error: &httputil.ErrorResponse{Code: code, Message: message},
	}
}
