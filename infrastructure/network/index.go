package network

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// NetworkController is a thin JSON HTTP client used to talk to external
// services such as the face detector.
type NetworkController struct {
	BaseUrl string
	Client  *http.Client
}

func (network *NetworkController) preRequest() {
	if network.Client == nil {
		network.Client = &http.Client{
			Timeout: 30 * time.Second,
		}
	}
}

func (network *NetworkController) Post(ctx context.Context, path string, headers *map[string]string, body any) (*[]byte, *int, error) {
	network.preRequest()

	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, nil, err
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fmt.Sprintf("%s%s", network.BaseUrl, path), reqBody)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if headers != nil {
		for key, value := range *headers {
			req.Header.Set(key, value)
		}
	}

	res, err := network.Client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, &res.StatusCode, err
	}
	return &resBody, &res.StatusCode, nil
}
