package httpapi

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

func (a *API) register(c *gin.Context) {
	f, err := readFields(c)
	if err != nil {
		a.fail(c, err)
		return
	}

	u, err := a.users.Register(c.Request.Context(), f.get(fieldEmail), f.get(fieldPassword))
	if err != nil {
		a.fail(c, err)
		return
	}
	success(c, http.StatusCreated, fmt.Sprintf("user with email '%s' has been registered", u.Email))
}

func (a *API) login(c *gin.Context) {
	f, err := readFields(c)
	if err != nil {
		a.fail(c, err)
		return
	}

	token, u, err := a.users.Login(c.Request.Context(), f.get(fieldEmail), f.get(fieldPassword))
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  statusSuccess,
		"message": fmt.Sprintf("Login successful for '%s'", u.Email),
		"token":   token,
	})
}

func (a *API) logout(c *gin.Context) {
	userID, token := principal(c)

	u, err := a.users.Logout(c.Request.Context(), userID, token)
	if err != nil {
		a.fail(c, err)
		return
	}
	success(c, http.StatusOK, fmt.Sprintf("Successfully logged out '%s'", u.Email))
}

func (a *API) resetPassword(c *gin.Context) {
	userID, token := principal(c)
	f, err := readFields(c)
	if err != nil {
		a.fail(c, err)
		return
	}

	u, err := a.users.ResetPassword(c.Request.Context(), userID, token, f.get(fieldPassword), f.get(fieldConfirmPassword))
	if err != nil {
		a.fail(c, err)
		return
	}
	success(c, http.StatusOK, fmt.Sprintf("password reset successful for '%s'", u.Email))
}
