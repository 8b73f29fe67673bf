package server

import (
	"fmt"
	"net/http"
	"strconv"

	"lsmkv/internal/storage/tree"
	"lsmkv/pkg/errors"
	"lsmkv/pkg/logger"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleHealthCheck() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

func parseKey(c *gin.Context) (int64, error) {
	raw := c.Param("key")
	key, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", errors.ErrInvalidKey, raw)
	}
	return key, nil
}

func (s *Server) handleInsert() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req InsertRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}

		if err := s.storage.Insert(*req.Key, *req.Value); err != nil {
			logger.Error("insert failed", "key", *req.Key, "error", err)
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
			return
		}

		c.JSON(http.StatusCreated, KeyResponse{Key: *req.Key, Status: tree.Found.String(), Value: req.Value})
	}
}

func (s *Server) handleUpdate() gin.HandlerFunc {
	return func(c *gin.Context) {
		key, err := parseKey(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		var req UpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}

		if err := s.storage.Update(key, *req.Value); err != nil {
			logger.Error("update failed", "key", key, "error", err)
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
			return
		}

		c.JSON(http.StatusOK, KeyResponse{Key: key, Status: tree.Found.String(), Value: req.Value})
	}
}

func (s *Server) handleGet() gin.HandlerFunc {
	return func(c *gin.Context) {
		key, err := parseKey(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}

		res, err := s.storage.Get(key)
		if err != nil {
			logger.Error("lookup failed", "key", key, "error", err)
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
			return
		}

		resp := KeyResponse{Key: key, Status: res.Status.String()}
		switch res.Status {
		case tree.Absent:
			c.JSON(http.StatusNotFound, resp)
			return
		case tree.Found:
			value := res.Value
			resp.Value = &value
		}
		c.JSON(http.StatusOK, resp)
	}
}

func (s *Server) handleDelete() gin.HandlerFunc {
	return func(c *gin.Context) {
		key, err := parseKey(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}

		if err := s.storage.Delete(key); err != nil {
			logger.Error("delete failed", "key", key, "error", err)
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
			return
		}

		c.Status(http.StatusNoContent)
	}
}

func (s *Server) handleStats() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, s.storage.Stats())
	}
}
