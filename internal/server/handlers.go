package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/goliatone/go-blog/images"
	"github.com/goliatone/go-blog/posts"
)

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleListPosts(c echo.Context) error {
	ctx := c.Request().Context()

	var (
		list []posts.Post
		err  error
	)
	switch {
	case c.QueryParam("tag") != "":
		list, err = s.posts.ListByTag(ctx, c.QueryParam("tag"))
	case c.QueryParam("category") != "":
		list, err = s.posts.ListByCategory(ctx, c.QueryParam("category"))
	default:
		list, err = s.posts.List(ctx)
	}
	if err != nil {
		s.logger.Error("server.posts.list_failed", "error", err)
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to list posts"})
	}
	if list == nil {
		list = []posts.Post{}
	}
	return c.JSON(http.StatusOK, list)
}

func (s *Server) handleGetPost(c echo.Context) error {
	post, err := s.posts.Get(c.Request().Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, posts.ErrPostNotFound) {
			return c.JSON(http.StatusNotFound, errorResponse{Error: "post not found"})
		}
		s.logger.Error("server.posts.get_failed", "slug", c.Param("slug"), "error", err)
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to load post"})
	}
	return c.JSON(http.StatusOK, post)
}

func (s *Server) handleListTags(c echo.Context) error {
	tags, err := s.posts.Tags(c.Request().Context())
	if err != nil {
		s.logger.Error("server.tags.list_failed", "error", err)
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to list tags"})
	}
	if tags == nil {
		tags = []string{}
	}
	return c.JSON(http.StatusOK, tags)
}

func (s *Server) handleListCategories(c echo.Context) error {
	return c.JSON(http.StatusOK, s.posts.Categories())
}

func (s *Server) handleArticleImage(c echo.Context) error {
	title := c.QueryParam("title")
	if strings.TrimSpace(title) == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "title is required"})
	}

	var tags []string
	if raw := c.QueryParam("tags"); raw != "" {
		for _, tag := range strings.Split(raw, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				tags = append(tags, tag)
			}
		}
	}

	source := images.Source(c.QueryParam("source"))
	if source == "" {
		source = images.SourceUnsplash
	}

	asset := s.images.ResolveArticleImage(c.Request().Context(), tags, title, source, images.Options{})
	if asset == nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "unknown image source"})
	}
	return c.JSON(http.StatusOK, asset)
}

func (s *Server) handleClearImageCache(c echo.Context) error {
	s.images.ClearCache()
	return c.NoContent(http.StatusNoContent)
}
