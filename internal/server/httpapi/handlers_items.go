package httpapi

import (
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/shoppinglist/internal/server/services"
	"github.com/gin-gonic/gin"
)

const (
	MsgNoItems        = "no items on this list"
	MsgNoMatchedItems = "your query did not match any items"
	MsgItemUpdated    = "item has been updated successfully"
)

func itemInput(f fields) services.ItemInput {
	return services.ItemInput{
		Name:     f.get(fieldName),
		Price:    f.get(fieldPrice),
		Quantity: f.get(fieldQuantity),
		Status:   f.lookup(fieldStatus),
	}
}

func (a *API) createItem(c *gin.Context) {
	userID, _ := principal(c)
	f, err := readFields(c)
	if err != nil {
		a.fail(c, err)
		return
	}

	it, err := a.items.Create(c.Request.Context(), userID, c.Param("list_id"), itemInput(f))
	if err != nil {
		a.fail(c, err)
		return
	}
	success(c, http.StatusCreated, fmt.Sprintf("'%s' has been added", it.Name))
}

func (a *API) listItems(c *gin.Context) {
	userID, _ := principal(c)
	p := parsePageParams(c)

	page, err := a.items.List(c.Request.Context(), userID, c.Param("list_id"), p.query())
	if err != nil {
		a.fail(c, err)
		return
	}

	if len(page.Rows) == 0 {
		msg := MsgNoItems
		if p.hasQ {
			msg = MsgNoMatchedItems
		}
		p.empty(c, msg, page.Total)
		return
	}

	key := "items"
	if p.hasQ {
		key = "matched items"
	}
	body := gin.H{"status": statusSuccess, key: mapViews(page.Rows, newItemView)}
	p.paginate(body, c.Request.URL.Path, page.Total)
	c.JSON(http.StatusOK, body)
}

func (a *API) getItem(c *gin.Context) {
	userID, _ := principal(c)

	it, err := a.items.Get(c.Request.Context(), userID, c.Param("list_id"), c.Param("item_id"))
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusSuccess, "data": newItemView(it)})
}

func (a *API) updateItem(c *gin.Context) {
	userID, _ := principal(c)
	f, err := readFields(c)
	if err != nil {
		a.fail(c, err)
		return
	}

	it, err := a.items.Update(c.Request.Context(), userID, c.Param("list_id"), c.Param("item_id"), itemInput(f))
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusSuccess, "message": MsgItemUpdated, "data": newItemView(it)})
}

func (a *API) deleteItem(c *gin.Context) {
	userID, _ := principal(c)

	id, err := a.items.Delete(c.Request.Context(), userID, c.Param("list_id"), c.Param("item_id"))
	if err != nil {
		a.fail(c, err)
		return
	}
	success(c, http.StatusOK, fmt.Sprintf("an item with ID %d has been successfully deleted", id))
}
