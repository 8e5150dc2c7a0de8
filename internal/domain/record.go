package domain

// RawRecord is one platform report row as returned by the API. Fields keeps
// the platform's native names; only the transformer for Platform reads it.
type RawRecord struct {
	Platform    Platform
	AccountID   string
	AccountName string
	CampaignID  string
	AdID        string
	Date        string
	Fields      map[string]any
}

// Field returns the native field or nil.
func (r RawRecord) Field(name string) any {
	if r.Fields == nil {
		return nil
	}
	return r.Fields[name]
}

func (r RawRecord) Has(name string) bool {
	if r.Fields == nil {
		return false
	}
	_, ok := r.Fields[name]
	return ok
}

type RecordPage struct {
	Records    []RawRecord
	NextCursor string
	Bytes      int
}
