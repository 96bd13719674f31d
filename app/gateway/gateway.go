package gateway

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/fedorhub/ms-go-notifications/app/entity"
	"github.com/fedorhub/ms-go-notifications/app/metrics"
)

// QuantityUnknown is the sentinel returned when the stock level cannot be
// determined. Notification copy renders it as "Unknown".
const QuantityUnknown = 0

type UserFinder interface {
	FindByID(ctx context.Context, id int64) (*entity.User, error)
}

type ProductIndex interface {
	ProductQuantity(ctx context.Context, title string) (int, error)
}

// Gateway performs the read-through enrichment lookups handlers need before
// composing a notification. It never mutates anything.
type Gateway struct {
	users   UserFinder
	index   ProductIndex
	metrics *metrics.Metrics
	log     *logrus.Logger
}

func New(users UserFinder, index ProductIndex, m *metrics.Metrics, log *logrus.Logger) *Gateway {
	return &Gateway{users: users, index: index, metrics: m, log: log}
}

// FetchUser resolves a user identifier to its record. Both a missing row and
// a store failure come back as not-found: skipping a recipient beats guessing
// at one.
func (g *Gateway) FetchUser(ctx context.Context, id int64) (*entity.User, bool) {
	u, err := g.users.FindByID(ctx, id)
	if err != nil {
		g.metrics.LookupFailures.WithLabelValues("users").Inc()
		g.log.WithError(err).WithField("user_id", id).Warn("user lookup failed, treating as not found")
		return nil, false
	}
	if u == nil {
		g.log.WithField("user_id", id).Info("user not found")
		return nil, false
	}
	return u, true
}

// FetchProductQuantity returns the current stock for a product title, or
// QuantityUnknown when the index has no hit or is unreachable. Titles are not
// guaranteed unique; the first hit the index returns wins.
func (g *Gateway) FetchProductQuantity(ctx context.Context, title string) int {
	quantity, err := g.index.ProductQuantity(ctx, title)
	if err != nil {
		g.metrics.LookupFailures.WithLabelValues("products").Inc()
		g.log.WithError(err).WithField("title", title).Warn("product quantity lookup failed")
		return QuantityUnknown
	}
	return quantity
}
