package pipeline

import "github.com/dk-github-acc/metastats-go/dto"

// CollectingSink accumulates every record it's handed. Useful in tests and as a
// minimal Sink implementation for callers that batch records themselves before
// handing them to a real serializer.
type CollectingSink struct {
	Records []*dto.Record
}

// Emit implements Sink.
func (s *CollectingSink) Emit(records []*dto.Record) {
	s.Records = append(s.Records, records...)
}
