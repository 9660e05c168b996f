package domain

import (
	"sort"
	"strings"
	"time"
)

// CustomerGroup is the derived, non-persisted aggregate of all orders that
// share a customer name. Grouping is case-sensitive on the exact name; the
// phone and address shown come from the first order processed for that name.
type CustomerGroup struct {
	CustomerName    string  `json:"customerName"`
	CustomerPhone   string  `json:"customerPhone"`
	CustomerAddress string  `json:"customerAddress"`
	Orders          []Order `json:"orders"`
}

// OrderCount returns the number of orders in the group.
func (g CustomerGroup) OrderCount() int {
	return len(g.Orders)
}

// TotalSpend sums price*quantity over every line item of every order in the
// group. Missing quantity or price counts as zero.
func (g CustomerGroup) TotalSpend() float64 {
	var total float64
	for _, o := range g.Orders {
		total += o.Total()
	}
	return total
}

// RecentOrders returns up to n of the group's most recent orders plus the
// count of any remainder. Orders within a group are already newest-first.
func (g CustomerGroup) RecentOrders(n int) ([]Order, int) {
	if n <= 0 || len(g.Orders) <= n {
		return g.Orders, 0
	}
	return g.Orders[:n], len(g.Orders) - n
}

// GroupByCustomer buckets a flat order list into per-customer groups.
// Buckets appear in the order their customer was first seen. Within each
// bucket, orders are stable-sorted newest-first, so orders with equal
// timestamps keep their original relative order. Every input order lands in
// exactly one group.
func GroupByCustomer(orders []Order) []CustomerGroup {
	index := make(map[string]int, len(orders))
	groups := make([]CustomerGroup, 0, len(orders))

	for _, o := range orders {
		i, ok := index[o.CustomerName]
		if !ok {
			i = len(groups)
			index[o.CustomerName] = i
			groups = append(groups, CustomerGroup{
				CustomerName:    o.CustomerName,
				CustomerPhone:   o.CustomerPhone,
				CustomerAddress: o.CustomerAddress,
			})
		}
		groups[i].Orders = append(groups[i].Orders, o)
	}

	for i := range groups {
		bucket := groups[i].Orders
		sort.SliceStable(bucket, func(a, b int) bool {
			return bucket[a].OrderTime.After(bucket[b].OrderTime)
		})
	}

	return groups
}

// FilterGroups narrows a grouped view with a free-text query. A blank or
// whitespace-only query is the identity. Otherwise a group passes when the
// query is a case-insensitive substring of its customer name, phone, or
// address. Pure: same inputs always yield the same result.
func FilterGroups(groups []CustomerGroup, query string) []CustomerGroup {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return groups
	}

	filtered := make([]CustomerGroup, 0, len(groups))
	for _, g := range groups {
		if strings.Contains(strings.ToLower(g.CustomerName), q) ||
			strings.Contains(strings.ToLower(g.CustomerPhone), q) ||
			strings.Contains(strings.ToLower(g.CustomerAddress), q) {
			filtered = append(filtered, g)
		}
	}
	return filtered
}

// SuggestCustomers returns the groups whose customer name contains the query,
// case-insensitively. Used for order-form name autocompletion; a blank query
// suggests nothing.
func SuggestCustomers(groups []CustomerGroup, query string) []CustomerGroup {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	var matches []CustomerGroup
	for _, g := range groups {
		if strings.Contains(strings.ToLower(g.CustomerName), q) {
			matches = append(matches, g)
		}
	}
	return matches
}

// DashboardStats are the headline figures shown on the dashboard.
type DashboardStats struct {
	TotalCustomers int     `json:"totalCustomers"`
	TotalOrders    int     `json:"totalOrders"`
	TotalRevenue   float64 `json:"totalRevenue"`
	TodayOrders    int     `json:"todayOrders"`
}

// ComputeStats derives the dashboard figures from the full order list.
// "Today" is compared at local midnight in today's location.
func ComputeStats(orders []Order, today time.Time) DashboardStats {
	customers := make(map[string]struct{}, len(orders))
	stats := DashboardStats{TotalOrders: len(orders)}
	midnight := atMidnight(today, today.Location())

	for _, o := range orders {
		customers[o.CustomerName] = struct{}{}
		stats.TotalRevenue += o.Total()
		if atMidnight(o.OrderTime, today.Location()).Equal(midnight) {
			stats.TodayOrders++
		}
	}

	stats.TotalCustomers = len(customers)
	return stats
}
