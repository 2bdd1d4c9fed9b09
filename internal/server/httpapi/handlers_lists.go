package httpapi

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	MsgNoLists        = "No shoppinglists found!"
	MsgNoMatchedLists = "your query did not match any shopping lists"
	MsgListEdited     = "shoppinglist has been successfully edited!"
)

func (a *API) createList(c *gin.Context) {
	userID, _ := principal(c)
	f, err := readFields(c)
	if err != nil {
		a.fail(c, err)
		return
	}

	l, err := a.lists.Create(c.Request.Context(), userID, f.get(fieldName), f.get(fieldNotifyDate))
	if err != nil {
		a.fail(c, err)
		return
	}
	success(c, http.StatusCreated, fmt.Sprintf("'%s' successfully created", l.Name))
}

func (a *API) listLists(c *gin.Context) {
	userID, _ := principal(c)
	p := parsePageParams(c)

	page, err := a.lists.List(c.Request.Context(), userID, p.query())
	if err != nil {
		a.fail(c, err)
		return
	}

	if len(page.Rows) == 0 {
		msg := MsgNoLists
		if p.hasQ {
			msg = MsgNoMatchedLists
		}
		p.empty(c, msg, page.Total)
		return
	}

	key := "lists"
	if p.hasQ {
		key = "matched lists"
	}
	body := gin.H{"status": statusSuccess, key: mapViews(page.Rows, newListView)}
	p.paginate(body, c.Request.URL.Path, page.Total)
	c.JSON(http.StatusOK, body)
}

func (a *API) getList(c *gin.Context) {
	userID, _ := principal(c)

	l, err := a.lists.Get(c.Request.Context(), userID, c.Param("list_id"))
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusSuccess, "data": newListView(l)})
}

func (a *API) updateList(c *gin.Context) {
	userID, _ := principal(c)
	f, err := readFields(c)
	if err != nil {
		a.fail(c, err)
		return
	}

	l, err := a.lists.Update(c.Request.Context(), userID, c.Param("list_id"), f.get(fieldName), f.get(fieldNotifyDate))
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusSuccess, "message": MsgListEdited, "data": newListView(l)})
}

func (a *API) deleteList(c *gin.Context) {
	userID, _ := principal(c)

	id, err := a.lists.Delete(c.Request.Context(), userID, c.Param("list_id"))
	if err != nil {
		a.fail(c, err)
		return
	}
	success(c, http.StatusOK, fmt.Sprintf("shopping list with ID %d deleted successfully", id))
}
