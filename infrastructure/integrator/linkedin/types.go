package linkedin

import (
	"strconv"
	"strings"
	"time"
)

type paging struct {
	Start int `json:"start"`
	Count int `json:"count"`
	Total int `json:"total"`
}

type collection[T any] struct {
	Elements []T    `json:"elements"`
	Paging   paging `json:"paging"`
}

// runSchedule bounds are epoch milliseconds.
type runSchedule struct {
	Start int64 `json:"start"`
	End   int64 `json:"end"`
}

type CampaignGroup struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	Status      string      `json:"status"`
	RunSchedule runSchedule `json:"runSchedule"`
}

type Campaign struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	CampaignGroup string `json:"campaignGroup"`
	ObjectiveType string `json:"objectiveType"`
	Status        string `json:"status"`
}

// GroupID extracts the id of the "urn:li:sponsoredCampaignGroup:123" reference.
func (c Campaign) GroupID() int64 {
	id, _ := strconv.ParseInt(urnID(c.CampaignGroup), 10, 64)
	return id
}

type AdAccount struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

type Creative struct {
	ID             string `json:"id"`
	IntendedStatus string `json:"intendedStatus"`
	Content        struct {
		Reference string `json:"reference"`
	} `json:"content"`
}

// campaignRef is one unit of an account's report: a campaign and its group.
type campaignRef struct {
	campaign Campaign
	group    CampaignGroup
}

func urnID(urn string) string {
	if i := strings.LastIndex(urn, ":"); i >= 0 {
		return urn[i+1:]
	}
	return urn
}

func msToDate(ms int64) string {
	if ms <= 0 {
		return ""
	}
	return time.UnixMilli(ms).UTC().Format(time.DateOnly)
}
