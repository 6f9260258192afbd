package api

import (
	"context"
	"errors"

	"github.com/go-kit/kit/endpoint"

	"github.com/absmach/fedwatch/pkg/api"
	pkgerrors "github.com/absmach/fedwatch/pkg/errors"
	"github.com/absmach/fedwatch/watcher"
)

func viewEndpoint(svc watcher.Service) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req, ok := request.(viewReq)
		if !ok {
			return viewResponse{}, errors.Join(api.ErrValidation, pkgerrors.ErrInvalidData)
		}
		if err := req.validate(); err != nil {
			return viewResponse{}, errors.Join(api.ErrValidation, err)
		}

		view, err := svc.View(ctx)
		if err != nil {
			return viewResponse{}, err
		}

		return viewResponse{View: view}, nil
	}
}

func refreshEndpoint(svc watcher.Service) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req, ok := request.(viewReq)
		if !ok {
			return viewResponse{}, errors.Join(api.ErrValidation, pkgerrors.ErrInvalidData)
		}
		if err := req.validate(); err != nil {
			return viewResponse{}, errors.Join(api.ErrValidation, err)
		}

		view, err := svc.Refresh(ctx)
		if err != nil {
			return viewResponse{}, err
		}

		return viewResponse{View: view}, nil
	}
}

func listHistoryEndpoint(svc watcher.Service) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req, ok := request.(listHistoryReq)
		if !ok {
			return historyResponse{}, errors.Join(api.ErrValidation, pkgerrors.ErrInvalidData)
		}
		if err := req.validate(); err != nil {
			return historyResponse{}, errors.Join(api.ErrValidation, err)
		}

		page, err := svc.ListHistory(ctx, req.offset, req.limit)
		if err != nil {
			return historyResponse{}, err
		}

		return historyResponse{HistoryPage: page}, nil
	}
}
