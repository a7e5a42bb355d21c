package api

import (
	"context"
	"net/url"
	"strconv"

	"github.com/Mrfarooqui038501/SalesChatBot/internal/bot/catalog"
)

// Search runs a free-text catalog query. Records come back normalized and
// in the server's order (ascending by name). A limit <= 0 leaves the
// server default in place. Any non-array data payload yields an empty,
// non-nil result.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]catalog.Product, error) {
	q := url.Values{}
	q.Set("query", query)
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	body, err := c.do(ctx, "GET", "/api/products/search", q, nil)
	if err != nil {
		return nil, err
	}

	data := unwrapData(body)
	products, err := catalog.DecodeList(data)
	if err != nil {
		// Non-array data is treated as empty, not as a failure.
		return []catalog.Product{}, nil
	}
	return products, nil
}

// GetProduct fetches a single product by ID, normalized like every other
// read path.
func (c *Client) GetProduct(ctx context.Context, id string) (catalog.Product, error) {
	body, err := c.do(ctx, "GET", "/api/products/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return catalog.Product{}, err
	}
	p, err := catalog.Decode(unwrapData(body))
	if err != nil {
		return catalog.Product{}, &CallError{Kind: FailureUnknown, Message: MsgUnknown, Err: err}
	}
	return p, nil
}
