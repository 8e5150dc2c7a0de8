package transforming

import (
	"fmt"
	"time"

	"github.com/vfg2006/paid-media-etl/internal/domain"
)

// PlatformTransformer maps the raw records of one platform onto canonical rows.
type PlatformTransformer interface {
	Platform() domain.Platform
	Transform(records []domain.RawRecord) (domain.RowSet, error)
}

type Transformer interface {
	Transform(platform domain.Platform, records []domain.RawRecord) (domain.RowSet, error)
}

type service struct {
	platforms map[domain.Platform]PlatformTransformer
}

// NewTransformer registers the transformer of every supported platform. clock
// supplies "today" for rows without an end date; nil means time.Now.
func NewTransformer(clock func() time.Time) Transformer {
	if clock == nil {
		clock = time.Now
	}

	return NewTransformerWith(
		facebookTransformer{},
		tiktokTransformer{},
		linkedInTransformer{clock: clock},
		youTubeTransformer{},
	)
}

func NewTransformerWith(transformers ...PlatformTransformer) Transformer {
	s := &service{platforms: make(map[domain.Platform]PlatformTransformer, len(transformers))}
	for _, t := range transformers {
		s.platforms[t.Platform()] = t
	}
	return s
}

// Transform never returns partial output: on error the row set is empty.
func (s *service) Transform(platform domain.Platform, records []domain.RawRecord) (domain.RowSet, error) {
	t, ok := s.platforms[platform]
	if !ok {
		return domain.RowSet{Platform: platform}, fmt.Errorf("no transformer registered for platform %q", platform)
	}

	rows, err := t.Transform(records)
	if err != nil {
		return domain.RowSet{Platform: platform}, err
	}
	return rows, nil
}

func withContent(columns []string) []string {
	out := make([]string, 0, len(columns)+1)
	out = append(out, columns...)
	return append(out, domain.ColContentName)
}
