package tiktok

import "fmt"

// envelope is shared by every Business API response; Code 0 is success.
type envelope[T any] struct {
	Code      int    `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id"`
	Data      T      `json:"data"`
}

func (e envelope[T]) err() error {
	if e.Code == 0 {
		return nil
	}
	return &APIError{Code: e.Code, Message: e.Message, RequestID: e.RequestID}
}

// APIError is a business-level failure reported inside a 200 response.
type APIError struct {
	Code      int
	Message   string
	RequestID string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("tiktok api error %d: %s (request %s)", e.Code, e.Message, e.RequestID)
}

type PageInfo struct {
	Page        int `json:"page"`
	PageSize    int `json:"page_size"`
	TotalNumber int `json:"total_number"`
	TotalPage   int `json:"total_page"`
}

type listData[T any] struct {
	List     []T      `json:"list"`
	PageInfo PageInfo `json:"page_info"`
}

type ReportRow struct {
	Dimensions map[string]any `json:"dimensions"`
	Metrics    map[string]any `json:"metrics"`
}

type Campaign struct {
	CampaignID    string `json:"campaign_id"`
	CampaignName  string `json:"campaign_name"`
	ObjectiveType string `json:"objective_type"`
}

type AdGroup struct {
	AdGroupID         string `json:"adgroup_id"`
	ScheduleStartTime string `json:"schedule_start_time"`
	ScheduleEndTime   string `json:"schedule_end_time"`
}

type Advertiser struct {
	AdvertiserID   string `json:"advertiser_id"`
	AdvertiserName string `json:"advertiser_name"`
}
