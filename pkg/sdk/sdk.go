package sdk

import (
	"bytes"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/absmach/fedwatch/snapshot"
)

const CTJSON string = "application/json"

const (
	viewEndpoint    = "/view"
	refreshEndpoint = "/refresh"
	historyEndpoint = "/history"
)

type SDK interface {
	// View returns the watcher's current reconciled view.
	//
	// example:
	//  view, _ := sdk.View()
	//  fmt.Println(view)
	View() (snapshot.View, error)

	// Refresh forces one fetch cycle and returns the resulting view.
	//
	// example:
	//  view, _ := sdk.Refresh()
	//  fmt.Println(view)
	Refresh() (snapshot.View, error)

	// ListHistory lists past cycle outcomes, newest first.
	//
	// example:
	//  page, _ := sdk.ListHistory(0, 10)
	//  fmt.Println(page)
	ListHistory(offset uint64, limit uint64) (snapshot.HistoryPage, error)
}

type watchSDK struct {
	watcherURL string
	client     *http.Client
}

type Config struct {
	WatcherURL      string
	TLSVerification bool
}

func NewSDK(cfg Config) SDK {
	return &watchSDK{
		watcherURL: cfg.WatcherURL,
		client: &http.Client{
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{
					InsecureSkipVerify: !cfg.TLSVerification,
				},
			},
		},
	}
}

func (sdk *watchSDK) View() (snapshot.View, error) {
	body, err := sdk.processRequest(http.MethodGet, sdk.watcherURL+viewEndpoint, nil, http.StatusOK)
	if err != nil {
		return snapshot.View{}, err
	}

	var v snapshot.View
	if err := json.Unmarshal(body, &v); err != nil {
		return snapshot.View{}, err
	}

	return v, nil
}

func (sdk *watchSDK) Refresh() (snapshot.View, error) {
	body, err := sdk.processRequest(http.MethodPost, sdk.watcherURL+refreshEndpoint, nil, http.StatusOK)
	if err != nil {
		return snapshot.View{}, err
	}

	var v snapshot.View
	if err := json.Unmarshal(body, &v); err != nil {
		return snapshot.View{}, err
	}

	return v, nil
}

func (sdk *watchSDK) ListHistory(offset, limit uint64) (snapshot.HistoryPage, error) {
	queries := make([]string, 0)
	if offset > 0 {
		queries = append(queries, fmt.Sprintf("offset=%d", offset))
	}
	if limit > 0 {
		queries = append(queries, fmt.Sprintf("limit=%d", limit))
	}
	query := ""
	if len(queries) > 0 {
		query = "?" + strings.Join(queries, "&")
	}

	body, err := sdk.processRequest(http.MethodGet, sdk.watcherURL+historyEndpoint+query, nil, http.StatusOK)
	if err != nil {
		return snapshot.HistoryPage{}, err
	}

	var page snapshot.HistoryPage
	if err := json.Unmarshal(body, &page); err != nil {
		return snapshot.HistoryPage{}, err
	}

	return page, nil
}

func (sdk *watchSDK) processRequest(method, reqURL string, data []byte, expectedRespCode int) ([]byte, error) {
	req, err := http.NewRequest(method, reqURL, bytes.NewReader(data))
	if err != nil {
		return []byte{}, err
	}

	req.Header.Add("Content-Type", CTJSON)

	resp, err := sdk.client.Do(req)
	if err != nil {
		return []byte{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return []byte{}, err
	}

	if resp.StatusCode != expectedRespCode {
		return []byte{}, fmt.Errorf("unexpected response code: %d", resp.StatusCode)
	}

	return body, nil
}
