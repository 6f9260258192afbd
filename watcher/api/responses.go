package api

import (
	"net/http"

	"github.com/absmach/fedwatch/pkg/api"
	"github.com/absmach/fedwatch/snapshot"
)

var (
	_ api.Response = (*viewResponse)(nil)
	_ api.Response = (*historyResponse)(nil)
)

type viewResponse struct {
	snapshot.View
}

func (v viewResponse) Code() int {
	return http.StatusOK
}

func (v viewResponse) Headers() map[string]string {
	return map[string]string{}
}

func (v viewResponse) Empty() bool {
	return false
}

type historyResponse struct {
	snapshot.HistoryPage
}

func (h historyResponse) Code() int {
	return http.StatusOK
}

func (h historyResponse) Headers() map[string]string {
	return map[string]string{}
}

func (h historyResponse) Empty() bool {
	return false
}
