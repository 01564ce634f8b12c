package server

import (
	"fmt"
	"net/http"
	"slices"

	"github.com/Veraticus/dex/internal/catalog"
	"github.com/Veraticus/dex/internal/common"
	"github.com/Veraticus/dex/internal/model"
	"github.com/gin-gonic/gin"
)

type pokemonQuery struct {
	Name      string `form:"name"`
	Type      string `form:"type"`
	MinWeight string `form:"min_weight"`
	Page      int    `form:"page" binding:"omitempty,min=1"`
}

type pokemonPage struct {
	Data       []model.Pokemon  `json:"data"`
	Pagination catalog.PageInfo `json:"pagination"`
}

// listPokemon filters the working set and returns one page of it.
func (s *Server) listPokemon(c *gin.Context) {
	var q pokemonQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, fmt.Errorf("%w: %w", common.ErrInvalidInput, err))
		return
	}
	if q.Page == 0 {
		q.Page = 1
	}

	working, types := s.snapshot()
	if q.Type != "" && !slices.Contains(types, q.Type) {
		writeError(c, fmt.Errorf("%w: %q", catalog.ErrUnknownType, q.Type))
		return
	}

	view := catalog.Filter(working, model.Criteria{Name: q.Name, Type: q.Type, MinWeight: q.MinWeight})
	items, info := catalog.PageAt(view, s.pageSize, q.Page)
	c.JSON(http.StatusOK, pokemonPage{Data: items, Pagination: info})
}

func (s *Server) getPokemon(c *gin.Context) {
	name := c.Param("name")
	working, _ := s.snapshot()
	for _, p := range working {
		if p.Name == name {
			c.JSON(http.StatusOK, p)
			return
		}
	}
	writeError(c, fmt.Errorf("pokemon %q: %w", name, common.ErrNotFound))
}

func (s *Server) listTypes(c *gin.Context) {
	_, types := s.snapshot()
	if types == nil {
		types = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"data": types})
}
