// api/controller/upload_controller.go
package controller

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	fixhub_errors "github.com/fixhub-app/fixhub/api/errors"
	"github.com/fixhub-app/fixhub/api/storage"
	"github.com/fixhub-app/fixhub/api/util"
)

type UploadController struct {
	signer *storage.Signer
	store  *storage.DiskStore
}

func NewUploadController(signer *storage.Signer, store *storage.DiskStore) *UploadController {
	return &UploadController{
		signer: signer,
		store:  store,
	}
}

// RegisterRoutes registers the staff-facing signing route
func (uc *UploadController) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/uploads/sign", uc.SignUpload)
}

// RegisterPublicRoutes registers the token-authenticated upload sink
func (uc *UploadController) RegisterPublicRoutes(r *gin.RouterGroup) {
	r.PUT("/uploads/:bucket/*path", uc.ReceiveUpload)
}

type signRequest struct {
	Path string `json:"path" binding:"required"`
}

// SignUpload endpoint issues a short-lived signed upload URL.
func (uc *UploadController) SignUpload(c *gin.Context) {
	var req signRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid sign request", err)
		return
	}

	c.JSON(http.StatusOK, uc.signer.SignUpload(req.Path))
}

// ReceiveUpload endpoint accepts the body of a previously signed upload.
func (uc *UploadController) ReceiveUpload(c *gin.Context) {
	bucket := c.Param("bucket")
	// The wildcard param carries a leading slash the signature never saw.
	path := strings.TrimPrefix(c.Param("path"), "/")
	token := c.Query("token")

	expires, err := strconv.ParseInt(c.Query("expires"), 10, 64)
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid expiry", fixhub_errors.ErrInvalidUploadToken)
		return
	}

	if err := uc.signer.VerifyUpload(bucket, path, token, expires); err != nil {
		switch {
		case errors.Is(err, fixhub_errors.ErrUploadExpired):
			util.RespondWithError(c, http.StatusForbidden, "Upload URL expired", err)
		case errors.Is(err, fixhub_errors.ErrInvalidUploadToken):
			util.RespondWithError(c, http.StatusForbidden, "Invalid upload token", err)
		default:
			util.RespondWithError(c, http.StatusForbidden, "Upload rejected", err)
		}
		return
	}

	location, err := uc.store.Save(bucket, path, c.Request.Body)
	if err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to store upload", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"location": location})
}
