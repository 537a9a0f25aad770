package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"careline-backend/internal/domain"
)

// AddressCandidate is one postal address match.
type AddressCandidate struct {
	RoadAddress  string `json:"road_address"`
	JibunAddress string `json:"jibun_address"`
	ZipCode      string `json:"zip_code"`
	BuildingName string `json:"building_name,omitempty"`
}

// AddressClient proxies keyword search to a Juso-style address API.
// An empty result list is a valid "no match", not an error.
type AddressClient struct {
	BaseURL string
	APIKey  string
	HTTP    *http.Client
}

func NewAddressClient(baseURL, apiKey string) *AddressClient {
	return &AddressClient{
		BaseURL: baseURL,
		APIKey:  apiKey,
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

type jusoResponse struct {
	Results struct {
		Common struct {
			ErrorCode    string `json:"errorCode"`
			ErrorMessage string `json:"errorMessage"`
		} `json:"common"`
		Juso []struct {
			RoadAddr string `json:"roadAddr"`
			JibunAddr string `json:"jibunAddr"`
			ZipNo    string `json:"zipNo"`
			BdNm     string `json:"bdNm"`
		} `json:"juso"`
	} `json:"results"`
}

// Search returns at most 10 candidates for the keyword.
func (c *AddressClient) Search(ctx context.Context, keyword string) ([]AddressCandidate, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, domain.ValidationError{Field: "keyword", Msg: "keyword required"}
	}

	q := url.Values{}
	q.Set("confmKey", c.APIKey)
	q.Set("keyword", keyword)
	q.Set("currentPage", "1")
	q.Set("countPerPage", "10")
	q.Set("resultType", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.BaseURL+"/addrlink/addrLinkApi.do?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	res, err := c.HTTP.Do(req)
	if err != nil {
		return nil, domain.UpstreamError{Source: "address lookup", Msg: "address lookup unreachable", Err: err}
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}
	if res.StatusCode != http.StatusOK {
		return nil, domain.UpstreamError{
			Source: "address lookup",
			Msg:    fmt.Sprintf("address lookup returned status %d", res.StatusCode),
		}
	}

	var resp jusoResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("parse address response: %w", err)
	}
	if code := resp.Results.Common.ErrorCode; code != "" && code != "0" {
		return nil, domain.UpstreamError{Source: "address lookup", Code: code, Msg: resp.Results.Common.ErrorMessage}
	}

	out := []AddressCandidate{}
	for _, j := range resp.Results.Juso {
		out = append(out, AddressCandidate{
			RoadAddress:  j.RoadAddr,
			JibunAddress: j.JibunAddr,
			ZipCode:      j.ZipNo,
			BuildingName: j.BdNm,
		})
		if len(out) == 10 {
			break
		}
	}
	return out, nil
}
