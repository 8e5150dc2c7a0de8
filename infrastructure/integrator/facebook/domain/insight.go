package fbdomain

type Cursors struct {
	Before string `json:"before"`
	After  string `json:"after"`
}

type Paging struct {
	Cursors Cursors `json:"cursors"`
	Next    string  `json:"next"`
}

// NextCursor is the "after" cursor, empty on the last page.
func (p Paging) NextCursor() string {
	if p.Next == "" {
		return ""
	}
	return p.Cursors.After
}

// InsightsResponse keeps each row as a generic map; the transformer reads the
// native field names.
type InsightsResponse struct {
	Data   []map[string]any `json:"data"`
	Paging Paging           `json:"paging"`
}

type AdSet struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Status    string `json:"status"`
}

type AdSetsResponse struct {
	Data   []AdSet `json:"data"`
	Paging Paging  `json:"paging"`
}

type AdAccount struct {
	ID        string `json:"id"`
	AccountID string `json:"account_id"`
	Name      string `json:"name"`
}

type MeResponse struct {
	AdAccounts struct {
		Data   []AdAccount `json:"data"`
		Paging Paging      `json:"paging"`
	} `json:"adaccounts"`
}
