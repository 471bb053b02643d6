package notion

import (
	"context"
	"testing"

	"github.com/jomei/notionapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockClient returns canned query responses in order and records updates.
type mockClient struct {
	responses []*notionapi.DatabaseQueryResponse
	queryErr  error
	calls     int
	updates   map[string]*notionapi.PageUpdateRequest
}

func (m *mockClient) QueryDatabase(_ context.Context, _ string, _ *notionapi.DatabaseQueryRequest) (*notionapi.DatabaseQueryResponse, error) {
	if m.queryErr != nil {
		return nil, m.queryErr
	}
	resp := m.responses[m.calls]
	m.calls++
	return resp, nil
}

func (m *mockClient) UpdatePage(_ context.Context, pageID string, req *notionapi.PageUpdateRequest) (*notionapi.Page, error) {
	if m.updates == nil {
		m.updates = make(map[string]*notionapi.PageUpdateRequest)
	}
	m.updates[pageID] = req
	return &notionapi.Page{ID: notionapi.ObjectID(pageID)}, nil
}

func leadPage(id, name, url string) notionapi.Page {
	return notionapi.Page{
		ID: notionapi.ObjectID(id),
		Properties: notionapi.Properties{
			"Name": &notionapi.TitleProperty{
				Title: []notionapi.RichText{{PlainText: name}},
			},
			"URL": &notionapi.URLProperty{URL: url},
		},
	}
}

func TestQueryAll_Paginates(t *testing.T) {
	mock := &mockClient{
		responses: []*notionapi.DatabaseQueryResponse{
			{
				Results:    []notionapi.Page{leadPage("p1", "Field Service USA", "https://a.com")},
				HasMore:    true,
				NextCursor: "cursor-1",
			},
			{
				Results: []notionapi.Page{leadPage("p2", "Service Expo", "https://b.com")},
			},
		},
	}

	pages, err := QueryAll(context.Background(), mock, "db-id", nil)
	require.NoError(t, err)
	assert.Len(t, pages, 2)
	assert.Equal(t, 2, mock.calls)
}

func TestQueryQueuedConferences(t *testing.T) {
	mock := &mockClient{
		responses: []*notionapi.DatabaseQueryResponse{
			{Results: []notionapi.Page{
				leadPage("p1", "Field Service USA", "https://fieldserviceusa.wbresearch.com"),
			}},
		},
	}

	leads, err := QueryQueuedConferences(context.Background(), mock, "db-id")
	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.Equal(t, "p1", leads[0].PageID)
	assert.Equal(t, "Field Service USA", leads[0].Name)
	assert.Equal(t, "https://fieldserviceusa.wbresearch.com", leads[0].URL)
}

func TestLeadFromPage_MissingProperties(t *testing.T) {
	lead := LeadFromPage(notionapi.Page{ID: "p9"})
	assert.Equal(t, "p9", lead.PageID)
	assert.Empty(t, lead.Name)
	assert.Empty(t, lead.URL)
}

func TestMarkLeadStatus(t *testing.T) {
	mock := &mockClient{}

	err := MarkLeadStatus(context.Background(), mock, "p1", "Complete")
	require.NoError(t, err)

	req := mock.updates["p1"]
	require.NotNil(t, req)
	status, ok := req.Properties["Status"].(notionapi.StatusProperty)
	require.True(t, ok)
	assert.Equal(t, "Complete", status.Status.Name)
	assert.Contains(t, req.Properties, "Last Qualified")
}
