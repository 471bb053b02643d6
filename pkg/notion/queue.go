package notion

import (
	"context"
	"time"

	"github.com/jomei/notionapi"
	"github.com/rotisserie/eris"
)

// ConferenceLead is one queued conference pulled from the Notion lead
// database.
type ConferenceLead struct {
	PageID string
	Name   string
	URL    string
}

// QueryAll fetches all pages from a Notion database, handling pagination.
// Rate limiting is enforced by the Client (3 req/s by default).
func QueryAll(ctx context.Context, c Client, dbID string, filter *notionapi.DatabaseQueryRequest) ([]notionapi.Page, error) {
	var all []notionapi.Page

	req := &notionapi.DatabaseQueryRequest{}
	if filter != nil {
		req.Filter = filter.Filter
		req.Sorts = filter.Sorts
		req.PageSize = filter.PageSize
	}

	for {
		resp, err := c.QueryDatabase(ctx, dbID, req)
		if err != nil {
			return nil, eris.Wrap(err, "notion: query all page")
		}

		all = append(all, resp.Results...)

		if !resp.HasMore {
			break
		}
		req = &notionapi.DatabaseQueryRequest{StartCursor: resp.NextCursor}
		if filter != nil {
			req.Filter = filter.Filter
			req.Sorts = filter.Sorts
			req.PageSize = filter.PageSize
		}
	}

	return all, nil
}

// QueryQueuedConferences fetches all leads with Status = "Queued" from the
// given database.
func QueryQueuedConferences(ctx context.Context, c Client, dbID string) ([]ConferenceLead, error) {
	filter := &notionapi.DatabaseQueryRequest{
		Filter: notionapi.PropertyFilter{
			Property: "Status",
			Status: &notionapi.StatusFilterCondition{
				Equals: "Queued",
			},
		},
	}
	pages, err := QueryAll(ctx, c, dbID, filter)
	if err != nil {
		return nil, eris.Wrap(err, "notion: query queued conferences")
	}

	leads := make([]ConferenceLead, 0, len(pages))
	for _, page := range pages {
		leads = append(leads, LeadFromPage(page))
	}
	return leads, nil
}

// LeadFromPage extracts the lead fields from a Notion page. Missing or
// differently-typed properties leave the field empty.
func LeadFromPage(page notionapi.Page) ConferenceLead {
	lead := ConferenceLead{PageID: string(page.ID)}

	if prop, ok := page.Properties["Name"]; ok {
		if tp, ok := prop.(*notionapi.TitleProperty); ok {
			for _, rt := range tp.Title {
				lead.Name += rt.PlainText
			}
		}
	}
	if prop, ok := page.Properties["URL"]; ok {
		if up, ok := prop.(*notionapi.URLProperty); ok {
			lead.URL = up.URL
		}
	}
	return lead
}

// MarkLeadStatus sets a lead's Status and stamps Last Qualified.
func MarkLeadStatus(ctx context.Context, c Client, pageID, status string) error {
	now := notionapi.Date(time.Now().UTC())
	_, err := c.UpdatePage(ctx, pageID, &notionapi.PageUpdateRequest{
		Properties: notionapi.Properties{
			"Status": notionapi.StatusProperty{
				Status: notionapi.Status{Name: status},
			},
			"Last Qualified": notionapi.DateProperty{
				Date: &notionapi.DateObject{Start: &now},
			},
		},
	})
	return eris.Wrapf(err, "notion: mark lead %s %s", pageID, status)
}
