package handlers

import (
	"net/http"

	"github.com/elrathor/casting-api-go/pkg/loader"
	"github.com/elrathor/casting-api-go/pkg/models"
	"github.com/gin-gonic/gin"
)

// ValidateDocument checks a preference document without solving it: parse
// errors, duplicate names, and the player/character count balance.
func (h *Handler) ValidateDocument(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ValidateResponse{Valid: false, Error: "could not read request body"})
		return
	}

	doc, err := loader.ParseJSON(body)
	if err != nil {
		c.JSON(http.StatusOK, models.ValidateResponse{Valid: false, Error: err.Error()})
		return
	}

	if len(doc.Players) != len(doc.Characters) {
		c.JSON(http.StatusOK, models.ValidateResponse{
			Valid: false,
			Error: "player count must equal character count",
			Stats: &models.DocumentStats{
				CharacterCount: len(doc.Characters),
				PlayerCount:    len(doc.Players),
			},
		})
		return
	}

	c.JSON(http.StatusOK, models.ValidateResponse{
		Valid: true,
		Stats: &models.DocumentStats{
			CharacterCount: len(doc.Characters),
			PlayerCount:    len(doc.Players),
		},
	})
}
