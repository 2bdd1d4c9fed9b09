package httpapi

import (
	"github.com/dmitrijs2005/shoppinglist/internal/server/models"
	"github.com/dmitrijs2005/shoppinglist/internal/server/validation"
)

type listView struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	NotifyDate   string `json:"notify date"`
	DateCreated  string `json:"date created"`
	DateModified string `json:"date modified"`
}

func newListView(l *models.ShoppingList) listView {
	return listView{
		ID:           l.ID,
		Name:         l.Name,
		NotifyDate:   validation.FormatDate(l.NotifyDate),
		DateCreated:  l.CreatedAt.UTC().Format(timestampLayout),
		DateModified: l.UpdatedAt.UTC().Format(timestampLayout),
	}
}

type itemView struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Price        string `json:"price"`
	Quantity     string `json:"quantity"`
	Bought       bool   `json:"has been bought"`
	DateAdded    string `json:"date added"`
	DateModified string `json:"date modified"`
}

func newItemView(i *models.Item) itemView {
	return itemView{
		ID:           i.ID,
		Name:         i.Name,
		Price:        i.Price,
		Quantity:     i.Quantity,
		Bought:       i.Purchased,
		DateAdded:    i.CreatedAt.UTC().Format(timestampLayout),
		DateModified: i.UpdatedAt.UTC().Format(timestampLayout),
	}
}

func mapViews[T, V any](rows []*T, view func(*T) V) []V {
	out := make([]V, 0, len(rows))
	for _, r := range rows {
		out = append(out, view(r))
	}
	return out
}
