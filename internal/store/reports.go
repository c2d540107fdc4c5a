// internal/store/reports.go
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"

	commonerrors "venture-agents/internal/common/errors"
	"venture-agents/internal/common/logger"
)

// ReportDoc is a research report as indexed for full-text lookup.
type ReportDoc struct {
	ID        string                 `json:"id"`
	Idea      string                 `json:"idea"`
	Report    map[string]interface{} `json:"report"`
	CreatedAt time.Time              `json:"created_at"`
}

// ReportStore indexes research reports in Elasticsearch so earlier
// research for similar ideas can be found again.
type ReportStore struct {
	client *elasticsearch.Client
	index  string
	logger logger.Logger
}

func NewReportStore(client *elasticsearch.Client, index string, log logger.Logger) *ReportStore {
	return &ReportStore{
		client: client,
		index:  index,
		logger: log.With(map[string]interface{}{"store": "reports"}),
	}
}

// Index stores one report document and returns its id.
func (s *ReportStore) Index(ctx context.Context, idea string, report interface{}) (string, error) {
	reportMap, err := toMap(report)
	if err != nil {
		return "", commonerrors.NewReportIndexFailedError(err)
	}

	doc := ReportDoc{
		ID:        uuid.New().String(),
		Idea:      idea,
		Report:    reportMap,
		CreatedAt: time.Now().UTC(),
	}

	body, err := json.Marshal(doc)
	if err != nil {
		return "", commonerrors.NewReportIndexFailedError(err)
	}

	req := esapi.IndexRequest{
		Index:      s.index,
		DocumentID: doc.ID,
		Body:       bytes.NewReader(body),
	}

	res, err := req.Do(ctx, s.client)
	if err != nil {
		return "", commonerrors.NewReportIndexFailedError(err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return "", commonerrors.NewReportIndexFailedError(fmt.Errorf("index returned %s", res.Status()))
	}

	s.logger.Info("report indexed", map[string]interface{}{
		"reportId": doc.ID,
	})
	return doc.ID, nil
}

// Search finds reports whose idea matches the query text.
func (s *ReportStore) Search(ctx context.Context, query string, size int) ([]ReportDoc, error) {
	searchBody := map[string]interface{}{
		"query": map[string]interface{}{
			"match": map[string]interface{}{
				"idea": query,
			},
		},
		"size": size,
		"sort": []map[string]interface{}{
			{"created_at": map[string]interface{}{"order": "desc", "unmapped_type": "date"}},
		},
	}

	body, err := json.Marshal(searchBody)
	if err != nil {
		return nil, err
	}

	res, err := s.client.Search(
		s.client.Search.WithContext(ctx),
		s.client.Search.WithIndex(s.index),
		s.client.Search.WithBody(strings.NewReader(string(body))),
	)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("search returned %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source ReportDoc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	docs := make([]ReportDoc, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		docs = append(docs, hit.Source)
	}
	return docs, nil
}

func toMap(v interface{}) (map[string]interface{}, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return m, nil
}
