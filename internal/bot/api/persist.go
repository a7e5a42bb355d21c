package api

import "context"

// AddToCart mirrors one local cart merge to the server. Quantity is always
// 1 per call; the server owns increment semantics. Callers treat failures
// as log-and-drop.
func (c *Client) AddToCart(ctx context.Context, productID string, quantity int) error {
	payload := map[string]any{
		"productId": productID,
		"quantity":  quantity,
	}
	_, err := c.do(ctx, "POST", "/api/cart/add", nil, payload)
	return err
}

// SaveChat appends one user/bot exchange to the server chat log. Best
// effort only; callers never surface the failure.
func (c *Client) SaveChat(ctx context.Context, message, response string) error {
	payload := map[string]string{
		"message":  message,
		"response": response,
	}
	_, err := c.do(ctx, "POST", "/api/chat", nil, payload)
	return err
}
