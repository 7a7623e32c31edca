// api/cache/keys.go
package cache

import "fmt"

// Well-known cache keys for the REST resources. List keys share the detail
// prefix so InvalidatePrefix(ResourcePrefix(...)) drops both at once.

func ResourcePrefix(resource string) string {
	return fmt.Sprintf("GET /api/v1/%s", resource)
}

func ListKey(resource string, page, limit int) string {
	return fmt.Sprintf("GET /api/v1/%s?page=%d&limit=%d", resource, page, limit)
}

func DetailKey(resource, id string) string {
	return fmt.Sprintf("GET /api/v1/%s/%s", resource, id)
}

// MetricsKey is the dashboard aggregate derived from tickets, orders,
// customers and products; any change to those resources invalidates it.
func MetricsKey() string {
	return "GET /api/v1/dashboard/metrics"
}
