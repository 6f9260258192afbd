package api

import (
	"github.com/absmach/fedwatch/pkg/api"
)

type viewReq struct{}

func (v viewReq) validate() error {
	return nil
}

type listHistoryReq struct {
	offset, limit uint64
}

func (l listHistoryReq) validate() error {
	if l.limit > api.MaxLimitSize {
		return api.ErrLimitSize
	}

	return nil
}
